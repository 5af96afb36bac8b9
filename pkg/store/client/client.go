package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/de-tools/market-atlas/pkg/models/store"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRowsPath  = "$"
	maxErrorBodySize = 512
)

var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("upstream request failed")
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrUpstream
}

// Client reads market data from the upstream REST data source.
type Client interface {
	GetStatementRows(ctx context.Context, kind domain.StatementKind, symbol string) ([]map[string]any, error)
	ListSymbols(ctx context.Context) ([]store.Symbol, error)
	GetProfile(ctx context.Context, symbol string) (*store.CompanyProfile, error)
}

type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// TokenSource authorizes requests made without a caller session. When nil, the source
	// profile token is used.
	TokenSource oauth2.TokenSource
}

type restClient struct {
	baseURL  string
	tokens   oauth2.TokenSource
	rowsPath string
	http     *retryablehttp.Client
}

func NewRESTClient(cfg domain.SourceConfig, opts Options) (Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("source %q has no host", cfg.Name)
	}
	base, err := url.Parse(cfg.Host)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("source %q has an invalid host %q", cfg.Name, cfg.Host)
	}

	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = opts.RetryMax
	rc.HTTPClient.Timeout = opts.Timeout
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		zerolog.Ctx(req.Context()).Debug().
			Str("url", req.URL.String()).
			Int("attempt", attempt).
			Msg("upstream request")
	}

	rowsPath := cfg.RowsPath
	if rowsPath == "" {
		rowsPath = defaultRowsPath
	}

	return &restClient{
		baseURL:  strings.TrimRight(cfg.Host, "/"),
		tokens:   profileTokens(cfg, opts),
		rowsPath: rowsPath,
		http:     rc,
	}, nil
}

func (c *restClient) GetStatementRows(
	ctx context.Context,
	kind domain.StatementKind,
	symbol string,
) ([]map[string]any, error) {
	payload, err := c.get(ctx, "financials", string(kind), symbol)
	if err != nil {
		return nil, err
	}

	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	case nil:
		return []map[string]any{}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected rows payload %T", ErrUpstream, payload)
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			rows = append(rows, record)
		}
	}
	return rows, nil
}

func (c *restClient) ListSymbols(ctx context.Context) ([]store.Symbol, error) {
	payload, err := c.get(ctx, "symbols")
	if err != nil {
		return nil, err
	}

	symbols := make([]store.Symbol, 0)
	if err := remarshal(payload, &symbols); err != nil {
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	return symbols, nil
}

func (c *restClient) GetProfile(ctx context.Context, symbol string) (*store.CompanyProfile, error) {
	payload, err := c.get(ctx, "companies", symbol)
	if err != nil {
		return nil, err
	}
	if list, ok := payload.([]any); ok {
		if len(list) == 0 {
			return nil, fmt.Errorf("profile %s: %w", symbol, ErrNotFound)
		}
		payload = list[0]
	}

	var profile store.CompanyProfile
	if err := remarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

// get fetches a resource and returns the payload selected by the source's rows path.
func (c *restClient) get(ctx context.Context, segments ...string) (any, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	endpoint := c.baseURL + "/" + strings.Join(escaped, "/")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	token, err := c.tokenFor(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: token: %w", ErrUpstream, err)
	}
	if token != nil {
		token.SetAuthHeader(req.Request)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data any
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	if c.rowsPath == defaultRowsPath {
		return data, nil
	}
	selected, err := jsonpath.Get(c.rowsPath, data)
	if err != nil {
		return nil, fmt.Errorf("%w: select %s: %w", ErrUpstream, c.rowsPath, err)
	}
	return selected, nil
}

func profileTokens(cfg domain.SourceConfig, opts Options) oauth2.TokenSource {
	if opts.TokenSource != nil {
		return oauth2.ReuseTokenSource(nil, opts.TokenSource)
	}
	if cfg.Token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
}

// tokenFor prefers the caller's session over the client's token source.
func (c *restClient) tokenFor(ctx context.Context) (*oauth2.Token, error) {
	if session, ok := domain.SessionFromContext(ctx); ok {
		return &oauth2.Token{AccessToken: session.Token, TokenType: "Bearer"}, nil
	}
	if c.tokens == nil {
		return nil, nil
	}
	return c.tokens.Token()
}

func remarshal(in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
