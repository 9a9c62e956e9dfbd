// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// MarketHandler serves the market intelligence report.
type MarketHandler struct {
	deps Dependencies
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(deps Dependencies) *MarketHandler {
	return &MarketHandler{deps: deps}
}

// HandleMarket handles GET /analytics/market requests.
func (h *MarketHandler) HandleMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.MarketReport(r.Context()))
}
