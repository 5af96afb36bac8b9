package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/market-atlas/pkg/services/config"
	"github.com/de-tools/market-atlas/pkg/services/lookup"
	"github.com/de-tools/market-atlas/pkg/services/market"
	"github.com/de-tools/market-atlas/pkg/store/client"
	"github.com/de-tools/market-atlas/pkg/store/duckdb"
	"github.com/de-tools/market-atlas/pkg/store/duckdb/symbols"
	"github.com/rs/zerolog"
)

// App holds the services shared by the web server and the terminal.
type App struct {
	Sources config.Registry
	Source  string
	Market  market.Service
	Lookup  lookup.Service

	db *sql.DB
}

type Options struct {
	Sources  config.Registry
	Settings *config.Settings
	// Profile overrides Settings.Upstream.Profile when set.
	Profile string
}

func Open(ctx context.Context, opts Options) (*App, error) {
	logger := zerolog.Ctx(ctx)

	profile := opts.Profile
	if profile == "" {
		profile = opts.Settings.Upstream.Profile
	}

	source, err := opts.Sources.GetConfig(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load data source: %w", err)
	}

	upstream, err := client.NewRESTClient(source, client.Options{
		Timeout:  opts.Settings.Upstream.Timeout,
		RetryMax: opts.Settings.Upstream.Retries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: duckdb.InMemory})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	symbolStore, err := symbols.NewStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create symbol store: %w", err)
	}

	logger.Info().Str("source", source.String()).Msg("data source configured")

	return &App{
		Sources: opts.Sources,
		Source:  source.Name,
		Market:  market.NewService(upstream, market.Options{Currency: opts.Settings.Display.Currency}),
		Lookup:  lookup.NewService(upstream, symbolStore),
		db:      db,
	}, nil
}

// WarmUp loads the symbol directory. A failure leaves the directory empty and is only logged,
// statements can still be served by symbol.
func (a *App) WarmUp(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	count, err := a.Lookup.Refresh(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load symbol directory")
		return
	}
	logger.Info().Int("symbols", count).Msg("symbol directory loaded")
}

func (a *App) Close() error {
	return a.db.Close()
}
