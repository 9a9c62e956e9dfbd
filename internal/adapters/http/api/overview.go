// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// OverviewHandler serves the dashboard headline block.
type OverviewHandler struct {
	deps Dependencies
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps Dependencies) *OverviewHandler {
	return &OverviewHandler{deps: deps}
}

// HandleOverview handles GET /overview requests. An empty pool is a
// valid zero-valued overview, never an error.
func (h *OverviewHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Overview(r.Context()))
}
