package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/market-atlas/pkg/adapters"
	"github.com/de-tools/market-atlas/pkg/financials"
	"github.com/de-tools/market-atlas/pkg/models/api"
	"github.com/de-tools/market-atlas/pkg/services/lookup"
	"github.com/de-tools/market-atlas/pkg/services/market"
	"github.com/de-tools/market-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

var ErrBadRequest = errors.New("bad request")

// StatusFor maps a service error to an HTTP status and reports whether retrying may help.
func StatusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, financials.ErrUnknownStatement),
		errors.Is(err, market.ErrInvalidSymbol):
		return http.StatusBadRequest, false
	case errors.Is(err, financials.ErrNoData),
		errors.Is(err, financials.ErrYearNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, lookup.ErrUnresolved):
		return http.StatusNotFound, false
	case errors.Is(err, client.ErrUpstream):
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
			return http.StatusBadGateway, false
		}
		return http.StatusBadGateway, true
	default:
		return http.StatusInternalServerError, false
	}
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, retryable := StatusFor(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	body := api.Error{Error: err.Error(), Retryable: retryable}
	var unresolved *lookup.UnresolvedError
	if errors.As(err, &unresolved) {
		body.Suggestions = adapters.MapSymbolsDomainToApi(unresolved.Suggestions)
	}
	WriteJSON(w, r, status, body)
}
