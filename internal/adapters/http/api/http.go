// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hiresight/hiresight/internal/adapters/ingest"
	"github.com/hiresight/hiresight/internal/domain/aggregate"
	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/query"
	"github.com/hiresight/hiresight/internal/domain/team"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	// LoadBatch ingests a raw submission batch into the pool.
	LoadBatch(ctx context.Context, raws []model.RawCandidate) (ingest.Summary, error)

	// Read operations expose the scored pool and analytics.
	Candidates(ctx context.Context, spec query.FilterSpec) (query.Result, error)
	Candidate(ctx context.Context, id string) (model.Candidate, error)
	Overview(ctx context.Context) aggregate.Overview
	MarketReport(ctx context.Context) aggregate.MarketReport
	ComposeTeam(ctx context.Context, req team.Request) (team.Selection, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	candidatesHandler *CandidatesHandler
	candidateHandler  *CandidateHandler
	overviewHandler   *OverviewHandler
	marketHandler     *MarketHandler
	teamHandler       *TeamHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxQueryLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		candidatesHandler: NewCandidatesHandler(deps, maxQueryLimit),
		candidateHandler:  NewCandidateHandler(deps),
		overviewHandler:   NewOverviewHandler(deps),
		marketHandler:     NewMarketHandler(deps),
		teamHandler:       NewTeamHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/overview", MetricsMiddleware(s.overviewHandler.HandleOverview, "overview"))
	mux.HandleFunc("/analytics/market", MetricsMiddleware(s.marketHandler.HandleMarket, "market"))
	mux.HandleFunc("/team", MetricsMiddleware(s.teamHandler.HandleComposeTeam, "team"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.candidatesHandler.HandleCandidates, "candidates"))
	mux.HandleFunc("/candidates/", MetricsMiddleware(s.candidateHandler.HandleGetCandidate, "candidate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
