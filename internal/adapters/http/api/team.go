// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hiresight/hiresight/internal/domain/team"
)

// TeamHandler serves team composition requests.
type TeamHandler struct {
	deps Dependencies
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps Dependencies) *TeamHandler {
	return &TeamHandler{deps: deps}
}

// teamResponse mirrors the POST /team response schema.
type teamResponse struct {
	Team             []teamMember `json:"team"`
	DiversityMetrics team.Metrics `json:"diversity_metrics"`
}

// teamMember is the trimmed candidate view in a team response.
type teamMember struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	Skills          []string `json:"skills"`
	OverallScore    float64  `json:"overall_score"`
	Salary          float64  `json:"salary_expectation"`
	ExperienceLevel string   `json:"experience_level"`
}

// HandleComposeTeam handles POST /team requests. A short team is a
// valid result; only malformed requests fail.
func (h *TeamHandler) HandleComposeTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req team.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	sel, err := h.deps.ComposeTeam(r.Context(), req)
	if err != nil {
		if errors.Is(err, team.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "invalid_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	resp := teamResponse{
		Team:             make([]teamMember, 0, len(sel.Team)),
		DiversityMetrics: sel.Metrics,
	}
	for _, c := range sel.Team {
		resp.Team = append(resp.Team, teamMember{
			ID:              c.ID,
			Name:            c.Name,
			Country:         c.Country,
			Skills:          c.Skills,
			OverallScore:    c.OverallScore,
			Salary:          c.SalaryExpectation,
			ExperienceLevel: c.ExperienceLevel,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
