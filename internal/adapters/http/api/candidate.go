// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hiresight/hiresight/internal/adapters/repository"
)

// CandidateHandler handles single-candidate lookups.
type CandidateHandler struct {
	deps Dependencies
}

// NewCandidateHandler creates a new candidate handler.
func NewCandidateHandler(deps Dependencies) *CandidateHandler {
	return &CandidateHandler{deps: deps}
}

// HandleGetCandidate handles GET /candidates/{id} requests.
func (h *CandidateHandler) HandleGetCandidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /candidates/
	id := strings.TrimPrefix(r.URL.Path, "/candidates/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	c, err := h.deps.Candidate(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
