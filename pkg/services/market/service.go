package market

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/market-atlas/pkg/financials"
	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/de-tools/market-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

var ErrInvalidSymbol = errors.New("invalid symbol")

// Service serves derived financial statement views.
type Service interface {
	GetStatement(ctx context.Context, kind domain.StatementKind, symbol string, year int) (domain.StatementView, error)
}

type Options struct {
	Currency string
}

type service struct {
	client   client.Client
	currency string
}

func NewService(c client.Client, opts Options) Service {
	return &service{client: c, currency: opts.Currency}
}

func (s *service) GetStatement(
	ctx context.Context,
	kind domain.StatementKind,
	symbol string,
	year int,
) (domain.StatementView, error) {
	logger := zerolog.Ctx(ctx)

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.StatementView{}, ErrInvalidSymbol
	}
	if _, _, err := financials.Definitions(kind); err != nil {
		return domain.StatementView{}, err
	}

	raw, err := s.client.GetStatementRows(ctx, kind, symbol)
	if err != nil {
		return domain.StatementView{}, fmt.Errorf("fetch %s statement for %s: %w", kind, symbol, err)
	}

	rows, rejected := financials.NormalizeRows(raw)
	for _, r := range rejected {
		logger.Debug().
			Err(r.Err).
			Int("index", r.Index).
			Str("symbol", symbol).
			Str("statement", string(kind)).
			Msg("dropped statement row")
	}

	view, err := financials.BuildStatementView(kind, rows, financials.ViewOptions{
		Year:         year,
		Currency:     s.currency,
		RejectedRows: len(rejected),
	})
	if err != nil {
		return domain.StatementView{}, fmt.Errorf("%s %s: %w", symbol, kind, err)
	}
	view.Symbol = symbol

	logger.Debug().
		Str("symbol", symbol).
		Str("statement", string(kind)).
		Int("year", view.Year).
		Int("rows", len(rows)).
		Msg("statement view built")

	return view, nil
}
