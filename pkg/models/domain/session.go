package domain

import "context"

// Session carries the caller's credentials for upstream requests. It travels in the request
// context instead of living in a global store.
type Session struct {
	Token string
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && s.Token != ""
}
