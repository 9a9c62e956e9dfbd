// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/query"
)

// Default page size for GET /candidates when no limit is given.
const defaultPageLimit = 20

// CandidatesHandler handles the candidate collection endpoint: batch
// submission on POST, filtered listing on GET.
type CandidatesHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps Dependencies, maxLimit int) *CandidatesHandler {
	return &CandidatesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// batchRequest mirrors the POST /candidates schema. Both a bare array
// and a wrapped object are accepted.
type batchRequest struct {
	Candidates []model.RawCandidate `json:"candidates"`
}

type batchResponse struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// HandleCandidates dispatches POST and GET /candidates.
func (h *CandidatesHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmitBatch(w, r)
	case http.MethodGet:
		h.handleListCandidates(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleSubmitBatch handles POST /candidates requests.
func (h *CandidatesHandler) handleSubmitBatch(w http.ResponseWriter, r *http.Request) {
	raws, err := decodeSubmissions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	summary, err := h.deps.LoadBatch(r.Context(), raws)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Loaded:  summary.Loaded,
		Skipped: summary.Duplicates,
		Total:   summary.PoolSize,
	})
}

// handleListCandidates handles GET /candidates?min_score=...&limit=N.
func (h *CandidatesHandler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if spec.Limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: limit above %d", ErrBadRequest, h.maxLimit))
		return
	}

	res, err := h.deps.Candidates(r.Context(), spec)
	if err != nil {
		if errors.Is(err, query.ErrInvalidFilter) {
			writeError(w, http.StatusBadRequest, "invalid_filter", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func decodeSubmissions(r *http.Request) ([]model.RawCandidate, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.New("reading request body failed")
	}

	var raws []model.RawCandidate
	if err := json.Unmarshal(body, &raws); err == nil {
		return raws, nil
	}

	var req batchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.New("body must be a submission array or {\"candidates\": [...]}")
	}
	return req.Candidates, nil
}

// parseFilterSpec maps URL query parameters onto a FilterSpec.
func parseFilterSpec(values url.Values) (query.FilterSpec, error) {
	spec := query.FilterSpec{
		Country:         values.Get("country"),
		SkillCategory:   values.Get("skill_category"),
		ExperienceLevel: values.Get("experience_level"),
		Search:          values.Get("q"),
		Limit:           defaultPageLimit,
	}

	var err error
	if spec.MinScore, err = floatParam(values, "min_score"); err != nil {
		return query.FilterSpec{}, err
	}
	if spec.MaxScore, err = floatParam(values, "max_score"); err != nil {
		return query.FilterSpec{}, err
	}
	if spec.MinSalary, err = floatParam(values, "min_salary"); err != nil {
		return query.FilterSpec{}, err
	}
	if spec.MaxSalary, err = floatParam(values, "max_salary"); err != nil {
		return query.FilterSpec{}, err
	}

	if raw := values.Get("limit"); raw != "" {
		spec.Limit, err = intParam(values, "limit")
		if err != nil {
			return query.FilterSpec{}, err
		}
	}
	if spec.Offset, err = intParam(values, "offset"); err != nil {
		return query.FilterSpec{}, err
	}

	if raw := values.Get("has_big_tech"); raw != "" {
		v, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return query.FilterSpec{}, fmt.Errorf("%w: has_big_tech must be a boolean", ErrBadRequest)
		}
		spec.HasBigTech = &v
	}
	if raw := values.Get("full_stack"); raw != "" {
		v, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return query.FilterSpec{}, fmt.Errorf("%w: full_stack must be a boolean", ErrBadRequest)
		}
		spec.FullStackOnly = v
	}

	return spec, nil
}

func floatParam(values url.Values, name string) (float64, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrBadRequest, name)
	}
	return v, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return v, nil
}
