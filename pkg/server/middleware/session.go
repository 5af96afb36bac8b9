package middleware

import (
	"net/http"
	"strings"

	"github.com/de-tools/market-atlas/pkg/models/domain"
)

// Session forwards a bearer token from the Authorization header to upstream calls.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		header := req.Header.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "bearer") {
			if token = strings.TrimSpace(token); token != "" {
				req = req.WithContext(domain.WithSession(req.Context(), domain.Session{Token: token}))
			}
		}
		next.ServeHTTP(w, req)
	})
}
