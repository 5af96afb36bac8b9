package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/market-atlas/pkg/adapters"
	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/de-tools/market-atlas/pkg/store/client"
	"github.com/de-tools/market-atlas/pkg/store/duckdb/symbols"
	"github.com/rs/zerolog"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

var ErrUnresolved = errors.New("symbol could not be resolved")

// UnresolvedError carries the closest directory matches for input that did not resolve.
type UnresolvedError struct {
	Input       string
	Suggestions []domain.Symbol
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnresolved, e.Input)
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolved
}

// Service answers symbol search and company profile questions from the symbol directory.
type Service interface {
	Suggest(ctx context.Context, query string, limit int) ([]domain.Symbol, error)
	Resolve(ctx context.Context, input string) (domain.CompanyProfile, error)
	Refresh(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	client client.Client
	store  symbols.Store
}

func NewService(c client.Client, store symbols.Store) Service {
	return &service{client: c, store: store}
}

// NormalizeQuery trims input and collapses inner whitespace.
func NormalizeQuery(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func (s *service) Suggest(ctx context.Context, query string, limit int) ([]domain.Symbol, error) {
	q := NormalizeQuery(query)
	if q == "" {
		return []domain.Symbol{}, nil
	}

	found, err := s.store.Search(ctx, q, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreSymbolsToDomain(found), nil
}

// Resolve turns user input into a company profile. A symbol match wins over a name match; a
// name only resolves when exactly one company carries it.
func (s *service) Resolve(ctx context.Context, input string) (domain.CompanyProfile, error) {
	q := NormalizeQuery(input)
	if q == "" {
		return domain.CompanyProfile{}, &UnresolvedError{Input: input, Suggestions: []domain.Symbol{}}
	}

	sym, err := s.store.Get(ctx, q)
	switch {
	case err == nil:
	case errors.Is(err, symbols.ErrNotFound):
		byName, err := s.store.FindByName(ctx, q)
		if err != nil {
			return domain.CompanyProfile{}, err
		}
		if len(byName) != 1 {
			suggestions, err := s.Suggest(ctx, q, DefaultLimit)
			if err != nil {
				return domain.CompanyProfile{}, err
			}
			return domain.CompanyProfile{}, &UnresolvedError{Input: input, Suggestions: suggestions}
		}
		sym = byName[0]
	default:
		return domain.CompanyProfile{}, err
	}

	profile := adapters.MapStoreSymbolToProfile(sym)
	remote, err := s.client.GetProfile(ctx, sym.Symbol)
	switch {
	case err == nil:
		profile = adapters.MergeProfile(adapters.MapStoreProfileToDomain(*remote), profile)
	case errors.Is(err, client.ErrNotFound):
		zerolog.Ctx(ctx).Debug().Str("symbol", sym.Symbol).Msg("no upstream profile, using directory entry")
	default:
		return domain.CompanyProfile{}, fmt.Errorf("fetch profile %s: %w", sym.Symbol, err)
	}

	return profile, nil
}

// Refresh reloads the symbol directory from the upstream source.
func (s *service) Refresh(ctx context.Context) (int, error) {
	listed, err := s.client.ListSymbols(ctx)
	if err != nil {
		return 0, fmt.Errorf("list symbols: %w", err)
	}
	if err := s.store.Replace(ctx, listed); err != nil {
		return 0, fmt.Errorf("store symbols: %w", err)
	}
	return s.store.Count(ctx)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
