package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// InMemory keeps the database in process memory. The symbol directory is rebuilt from the
// upstream source on every start.
//
// Symbol uniqueness is enforced by symbols.Store, not by the schema.
const InMemory = ":memory:"

const SymbolsTableSchema = `
	CREATE TABLE IF NOT EXISTS symbols (
		symbol VARCHAR NOT NULL,
		name VARCHAR,
		exchange VARCHAR,
		industry VARCHAR
	);
`

var bootQueries = []string{
	SymbolsTableSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		settings.DbPath = InMemory
	}
	if settings.Threads <= 0 {
		settings.Threads = 4
	}

	dsn := fmt.Sprintf("%s?threads=%d", settings.DbPath, settings.Threads)
	c, err := duckdb.NewConnector(dsn, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
