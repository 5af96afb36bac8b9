package commands

import (
	"context"

	"github.com/de-tools/market-atlas/pkg/services/config"
	"github.com/de-tools/market-atlas/pkg/services/lookup"
	"github.com/de-tools/market-atlas/pkg/services/market"
)

// Backend resolves the services a command runs against. Services are built on first use so
// that commands which only read the sources file never contact the upstream.
type Backend interface {
	Sources(ctx context.Context) (config.Registry, string, error)
	Market(ctx context.Context) (market.Service, error)
	Lookup(ctx context.Context) (lookup.Service, error)
}
