package symbols

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/market-atlas/pkg/models/store"
	"github.com/de-tools/market-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: duckdb.InMemory})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func directory() []store.Symbol {
	return []store.Symbol{
		{Symbol: "FPT", Name: "FPT Corp", Exchange: "HOSE", Industry: "Technology"},
		{Symbol: "FPTS", Name: "FPT Securities", Exchange: "HNX", Industry: "Financials"},
		{Symbol: "AAA", Name: "An Phat Plastic", Exchange: "HOSE", Industry: "Chemicals"},
		{Symbol: "HPG", Name: "Hoa Phat Group", Exchange: "HOSE", Industry: "Steel"},
		{Symbol: "PHR", Name: "Phuoc Hoa Rubber", Exchange: "HOSE", Industry: "Rubber"},
	}
}

func symbolCodes(symbols []store.Symbol) []string {
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Symbol)
	}
	return codes
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestSymbolStore_Replace(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - dedupes and normalizes", func(t *testing.T) {
		input := append(directory(),
			store.Symbol{Symbol: "fpt", Name: "duplicate"},
			store.Symbol{Symbol: "  ", Name: "blank"},
		)
		require.NoError(t, f.store.Replace(ctx, input))

		count, err := f.store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)

		sym, err := f.store.Get(ctx, "fpt")
		require.NoError(t, err)
		assert.Equal(t, "FPT Corp", sym.Name)
	})

	t.Run("success - replaces previous content", func(t *testing.T) {
		require.NoError(t, f.store.Replace(ctx, []store.Symbol{{Symbol: "vnm", Name: "Vinamilk"}}))

		count, err := f.store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		sym, err := f.store.Get(ctx, "VNM")
		require.NoError(t, err)
		assert.Equal(t, store.Symbol{Symbol: "VNM", Name: "Vinamilk"}, sym)
	})

	t.Run("success - empty input clears", func(t *testing.T) {
		require.NoError(t, f.store.Replace(ctx, nil))

		count, err := f.store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestSymbolStore_Search(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Replace(ctx, directory()))

	tests := []struct {
		name     string
		query    string
		limit    int
		expected []string
	}{
		{name: "exact symbol before prefix", query: "fpt", limit: 10, expected: []string{"FPT", "FPTS"}},
		{name: "name match", query: "phat", limit: 10, expected: []string{"AAA", "HPG"}},
		{name: "symbol prefix before names", query: "p", limit: 3, expected: []string{"PHR", "AAA", "FPT"}},
		{name: "wildcards are literal", query: "100%", limit: 10, expected: []string{}},
		{name: "empty query", query: "  ", limit: 10, expected: []string{}},
		{name: "zero limit", query: "fpt", limit: 0, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.store.Search(ctx, tt.query, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, symbolCodes(result))
		})
	}
}

func TestSymbolStore_GetAndFindByName(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Replace(ctx, directory()))

	_, err := f.store.Get(ctx, "XYZ")
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := f.store.FindByName(ctx, "fpt corp")
	require.NoError(t, err)
	assert.Equal(t, []string{"FPT"}, symbolCodes(found))

	found, err = f.store.FindByName(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSymbolStore_SearchQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"symbol", "name", "exchange", "industry"}).
		AddRow("HPG", "Hoa Phat Group", "HOSE", "Steel")
	mock.ExpectQuery(searchQuery).
		WithArgs(`HOA\_%`, `%HOA\_%`, "HOA_", `HOA\_%`, 5).
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	result, err := s.Search(context.Background(), " hoa_ ", 5)
	require.NoError(t, err)
	assert.Equal(t, []store.Symbol{{Symbol: "HPG", Name: "Hoa Phat Group", Exchange: "HOSE", Industry: "Steel"}}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSymbolStore_ReplaceRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM symbols`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectPrepare(insertQuery)
	mock.ExpectExec(insertQuery).
		WithArgs("FPT", "FPT Corp", "HOSE", "Technology").
		WillReturnError(fmt.Errorf("constraint violation"))
	mock.ExpectRollback()

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Replace(context.Background(), directory()[:1])
	assert.ErrorContains(t, err, "insert symbol FPT")
	assert.NoError(t, mock.ExpectationsWereMet())
}
