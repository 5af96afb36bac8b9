package symbols

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/market-atlas/pkg/models/store"
	"github.com/de-tools/market-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("symbol not found")

const (
	insertQuery = `INSERT INTO symbols (symbol, name, exchange, industry) VALUES (?, ?, ?, ?)`

	getQuery = `
		SELECT symbol, COALESCE(name, ''), COALESCE(exchange, ''), COALESCE(industry, '')
		FROM symbols
		WHERE upper(symbol) = upper(?)`

	findByNameQuery = `
		SELECT symbol, COALESCE(name, ''), COALESCE(exchange, ''), COALESCE(industry, '')
		FROM symbols
		WHERE lower(name) = lower(?)
		ORDER BY symbol`

	// Exact symbol first, then symbol prefixes, then name matches.
	searchQuery = `
		SELECT symbol, COALESCE(name, ''), COALESCE(exchange, ''), COALESCE(industry, '')
		FROM symbols
		WHERE upper(symbol) LIKE ? ESCAPE '\' OR upper(name) LIKE ? ESCAPE '\'
		ORDER BY
			CASE
				WHEN upper(symbol) = ? THEN 0
				WHEN upper(symbol) LIKE ? ESCAPE '\' THEN 1
				ELSE 2
			END,
			symbol
		LIMIT ?`

	countQuery = `SELECT COUNT(*) FROM symbols`
)

// Store is the searchable directory of listed symbols.
type Store interface {
	Replace(ctx context.Context, symbols []store.Symbol) error
	Search(ctx context.Context, query string, limit int) ([]store.Symbol, error)
	Get(ctx context.Context, symbol string) (store.Symbol, error)
	FindByName(ctx context.Context, name string) ([]store.Symbol, error)
	Count(ctx context.Context) (int, error)
}

type symbolStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &symbolStore{db: db}, nil
}

// Replace swaps the whole directory. Entries without a symbol are skipped and the first entry
// of a repeated symbol wins.
func (s *symbolStore) Replace(ctx context.Context, symbols []store.Symbol) error {
	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM symbols`); err != nil {
			return fmt.Errorf("clear symbols: %w", err)
		}
		if len(symbols) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, insertQuery)
		if err != nil {
			return fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		seen := make(map[string]struct{}, len(symbols))
		for _, sym := range symbols {
			code := strings.ToUpper(strings.TrimSpace(sym.Symbol))
			if code == "" {
				continue
			}
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}

			_, err := stmt.ExecContext(ctx, code, sym.Name, sym.Exchange, sym.Industry)
			if err != nil {
				return fmt.Errorf("insert symbol %s: %w", code, err)
			}
		}
		return nil
	})
}

func (s *symbolStore) Search(ctx context.Context, query string, limit int) ([]store.Symbol, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return []store.Symbol{}, nil
	}
	pattern := escapeLike(q)

	rows, err := s.db.QueryContext(ctx, searchQuery,
		pattern+"%",
		"%"+pattern+"%",
		q,
		pattern+"%",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search symbols: %w", err)
	}
	defer rows.Close()
	return scanSymbols(rows)
}

func (s *symbolStore) Get(ctx context.Context, symbol string) (store.Symbol, error) {
	var sym store.Symbol
	err := s.db.QueryRowContext(ctx, getQuery, strings.TrimSpace(symbol)).
		Scan(&sym.Symbol, &sym.Name, &sym.Exchange, &sym.Industry)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Symbol{}, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	if err != nil {
		return store.Symbol{}, fmt.Errorf("get symbol: %w", err)
	}
	return sym, nil
}

func (s *symbolStore) FindByName(ctx context.Context, name string) ([]store.Symbol, error) {
	rows, err := s.db.QueryContext(ctx, findByNameQuery, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("find symbols by name: %w", err)
	}
	defer rows.Close()
	return scanSymbols(rows)
}

func (s *symbolStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("count symbols: %w", err)
	}
	return count, nil
}

func scanSymbols(rows *sql.Rows) ([]store.Symbol, error) {
	symbols := make([]store.Symbol, 0)
	for rows.Next() {
		var sym store.Symbol
		if err := rows.Scan(&sym.Symbol, &sym.Name, &sym.Exchange, &sym.Industry); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
