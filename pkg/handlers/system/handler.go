package system

import (
	"net/http"

	"github.com/de-tools/market-atlas/pkg/handlers"
	"github.com/de-tools/market-atlas/pkg/models/api"
	"github.com/de-tools/market-atlas/pkg/services/config"
	"github.com/de-tools/market-atlas/pkg/services/lookup"
)

type Handler struct {
	lookup  lookup.Service
	sources config.Registry
}

func NewHandler(lookupSvc lookup.Service, sources config.Registry) *Handler {
	return &Handler{
		lookup:  lookupSvc,
		sources: sources,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.lookup.Count(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, api.Health{Status: "ok", Symbols: count})
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.sources.GetProfiles(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	response := make([]api.Source, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, api.Source{Name: p})
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}
