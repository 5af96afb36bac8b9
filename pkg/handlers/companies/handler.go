package companies

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/market-atlas/pkg/adapters"
	"github.com/de-tools/market-atlas/pkg/financials"
	"github.com/de-tools/market-atlas/pkg/handlers"
	"github.com/de-tools/market-atlas/pkg/services/lookup"
	"github.com/de-tools/market-atlas/pkg/services/market"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	market market.Service
	lookup lookup.Service
}

func NewHandler(marketSvc market.Service, lookupSvc lookup.Service) *Handler {
	return &Handler{
		market: marketSvc,
		lookup: lookupSvc,
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handlers.WriteError(w, r, fmt.Errorf("%w: limit %q is not a number", handlers.ErrBadRequest, raw))
			return
		}
		limit = n
	}

	found, err := h.lookup.Suggest(ctx, query, limit)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapSymbolsDomainToApi(found))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := chi.URLParam(r, "symbol")

	profile, err := h.lookup.Resolve(ctx, symbol)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapProfileDomainToApi(profile))
}

func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	symbol := chi.URLParam(r, "symbol")
	statement := chi.URLParam(r, "statement")

	kind, err := financials.ParseStatementKind(statement)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 0 {
			handlers.WriteError(w, r, fmt.Errorf("%w: year %q", handlers.ErrBadRequest, raw))
			return
		}
	}

	view, err := h.market.GetStatement(ctx, kind, symbol, year)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Debug().
		Str("symbol", view.Symbol).
		Str("statement", string(kind)).
		Int("year", view.Year).
		Msg("statement served")

	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapStatementViewDomainToApi(view))
}
