package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hiresight/hiresight/internal/adapters/http/api"
	"github.com/hiresight/hiresight/internal/adapters/ingest"
	"github.com/hiresight/hiresight/internal/adapters/repository"
	"github.com/hiresight/hiresight/internal/domain/aggregate"
	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/query"
	"github.com/hiresight/hiresight/internal/domain/team"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps is a canned-response Dependencies implementation that also
// records the last inputs handlers passed through.
type stubDeps struct {
	lastBatch []model.RawCandidate
	lastSpec  query.FilterSpec
	lastReq   team.Request

	batchSummary ingest.Summary
	batchErr     error
	queryResult  query.Result
	queryErr     error
	candidate    model.Candidate
	candidateErr error
	overview     aggregate.Overview
	market       aggregate.MarketReport
	selection    team.Selection
	teamErr      error
}

func (s *stubDeps) LoadBatch(_ context.Context, raws []model.RawCandidate) (ingest.Summary, error) {
	s.lastBatch = raws
	return s.batchSummary, s.batchErr
}

func (s *stubDeps) Candidates(_ context.Context, spec query.FilterSpec) (query.Result, error) {
	s.lastSpec = spec
	return s.queryResult, s.queryErr
}

func (s *stubDeps) Candidate(_ context.Context, _ string) (model.Candidate, error) {
	return s.candidate, s.candidateErr
}

func (s *stubDeps) Overview(_ context.Context) aggregate.Overview {
	return s.overview
}

func (s *stubDeps) MarketReport(_ context.Context) aggregate.MarketReport {
	return s.market
}

func (s *stubDeps) ComposeTeam(_ context.Context, req team.Request) (team.Selection, error) {
	s.lastReq = req
	return s.selection, s.teamErr
}

type stubStats struct{}

func (stubStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "poolSize": 2}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, stubStats{}, 100).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}

func TestSubmitBatch(t *testing.T) {
	Convey("Given the candidate submission endpoint", t, func() {
		deps := &stubDeps{batchSummary: ingest.Summary{Received: 2, Loaded: 2, PoolSize: 2}}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When posting a bare submission array", func() {
			body := `[{"id":"s1","name":"Ana"},{"id":"s2","name":"Bram"}]`
			resp, err := http.Post(ts.URL+"/candidates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)

			Convey("Then the batch loads and the summary comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got struct {
					Loaded  int `json:"loaded"`
					Skipped int `json:"skipped"`
					Total   int `json:"total"`
				}
				decodeBody(t, resp, &got)
				So(got.Loaded, ShouldEqual, 2)
				So(got.Skipped, ShouldEqual, 0)
				So(got.Total, ShouldEqual, 2)
				So(deps.lastBatch, ShouldHaveLength, 2)
				So(deps.lastBatch[0].ID, ShouldEqual, "s1")
			})
		})

		Convey("When posting a wrapped submission object", func() {
			body := `{"candidates":[{"id":"s1"}]}`
			resp, err := http.Post(ts.URL+"/candidates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(deps.lastBatch, ShouldHaveLength, 1)
		})

		Convey("When posting duplicate-heavy input", func() {
			deps.batchSummary = ingest.Summary{Received: 3, Loaded: 1, Duplicates: 2, PoolSize: 5}
			resp, err := http.Post(ts.URL+"/candidates", "application/json", strings.NewReader(`[{"id":"s1"}]`))
			So(err, ShouldBeNil)

			var got struct {
				Skipped int `json:"skipped"`
				Total   int `json:"total"`
			}
			decodeBody(t, resp, &got)
			So(got.Skipped, ShouldEqual, 2)
			So(got.Total, ShouldEqual, 5)
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(ts.URL+"/candidates", "application/json", strings.NewReader("not json"))
			So(err, ShouldBeNil)

			Convey("Then the request is rejected with a coded error", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "bad_request")
			})
		})
	})
}

func TestListCandidates(t *testing.T) {
	Convey("Given the candidate listing endpoint", t, func() {
		deps := &stubDeps{queryResult: query.Result{
			Matched:      []model.Candidate{{ID: "c1", OverallScore: 90}},
			TotalMatched: 1,
			Returned:     1,
		}}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When listing without parameters", func() {
			resp, err := http.Get(ts.URL + "/candidates")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the default page limit applies", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.lastSpec.Limit, ShouldEqual, 20)
			})
		})

		Convey("When passing filter parameters", func() {
			u := ts.URL + "/candidates?min_score=80&country=Brazil&skill_category=Backend&q=react&limit=5&offset=10&has_big_tech=true&full_stack=true"
			resp, err := http.Get(u)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then every parameter lands on the filter spec", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(deps.lastSpec.MinScore, ShouldEqual, 80)
				So(deps.lastSpec.Country, ShouldEqual, "Brazil")
				So(deps.lastSpec.SkillCategory, ShouldEqual, "Backend")
				So(deps.lastSpec.Search, ShouldEqual, "react")
				So(deps.lastSpec.Limit, ShouldEqual, 5)
				So(deps.lastSpec.Offset, ShouldEqual, 10)
				So(deps.lastSpec.HasBigTech, ShouldNotBeNil)
				So(*deps.lastSpec.HasBigTech, ShouldBeTrue)
				So(deps.lastSpec.FullStackOnly, ShouldBeTrue)
			})
		})

		Convey("When the limit exceeds the configured cap", func() {
			resp, err := http.Get(ts.URL + "/candidates?limit=5000")
			So(err, ShouldBeNil)

			var got struct {
				Code string `json:"code"`
			}
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(got.Code, ShouldEqual, "limit_exceeded")
		})

		Convey("When a numeric parameter is garbage", func() {
			resp, err := http.Get(ts.URL + "/candidates?min_score=banana")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the evaluator rejects the filter", func() {
			deps.queryErr = query.ErrInvalidFilter
			resp, err := http.Get(ts.URL + "/candidates?min_score=80")
			So(err, ShouldBeNil)

			var got struct {
				Code string `json:"code"`
			}
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(got.Code, ShouldEqual, "invalid_filter")
		})
	})
}

func TestGetCandidate(t *testing.T) {
	Convey("Given the single-candidate endpoint", t, func() {
		deps := &stubDeps{candidate: model.Candidate{ID: "c1", Name: "Ana", OverallScore: 90}}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When the candidate exists", func() {
			resp, err := http.Get(ts.URL + "/candidates/c1")
			So(err, ShouldBeNil)

			var got model.Candidate
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(got.Name, ShouldEqual, "Ana")
		})

		Convey("When the candidate is missing", func() {
			deps.candidateErr = repository.ErrNotFound
			resp, err := http.Get(ts.URL + "/candidates/ghost")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the path nests deeper than an id", func() {
			resp, err := http.Get(ts.URL + "/candidates/c1/extra")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestAnalyticsEndpoints(t *testing.T) {
	Convey("Given the analytics endpoints", t, func() {
		deps := &stubDeps{
			overview: aggregate.Overview{
				TotalCandidates: 3,
				AverageScore:    72.5,
				Countries:       2,
			},
			market: aggregate.MarketReport{
				SalaryStats: aggregate.SalaryStats{Count: 3, Mean: 70000},
				TopSkills:   []aggregate.Bucket{{Label: "python", Count: 3}},
			},
		}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When fetching the overview", func() {
			resp, err := http.Get(ts.URL + "/overview")
			So(err, ShouldBeNil)

			var got aggregate.Overview
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(got.TotalCandidates, ShouldEqual, 3)
			So(got.AverageScore, ShouldEqual, 72.5)
		})

		Convey("When fetching the market report", func() {
			resp, err := http.Get(ts.URL + "/analytics/market")
			So(err, ShouldBeNil)

			var got aggregate.MarketReport
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(got.SalaryStats.Count, ShouldEqual, 3)
			So(got.TopSkills, ShouldHaveLength, 1)
		})

		Convey("When fetching service stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)

			var got map[string]interface{}
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(got["started"], ShouldEqual, true)
		})

		Convey("When probing liveness", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})
}

func TestComposeTeamEndpoint(t *testing.T) {
	Convey("Given the team composition endpoint", t, func() {
		deps := &stubDeps{selection: team.Selection{
			Team: []model.Candidate{
				{ID: "c1", Name: "Ana", Country: "Brazil", Skills: []string{"react"}, OverallScore: 90},
				{ID: "c2", Name: "Bram", Country: "Germany", Skills: []string{"java"}, OverallScore: 80},
			},
			Metrics: team.Metrics{Countries: 2, SkillCategories: 2, MeanScore: 85},
		}}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When posting a valid request", func() {
			body, _ := json.Marshal(team.Request{Size: 2, Budget: 200000})
			resp, err := http.Post(ts.URL+"/team", "application/json", bytes.NewReader(body))
			So(err, ShouldBeNil)

			Convey("Then the response carries trimmed members and metrics", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got struct {
					Team []struct {
						ID           string  `json:"id"`
						Name         string  `json:"name"`
						OverallScore float64 `json:"overall_score"`
					} `json:"team"`
					DiversityMetrics team.Metrics `json:"diversity_metrics"`
				}
				decodeBody(t, resp, &got)
				So(got.Team, ShouldHaveLength, 2)
				So(got.Team[0].ID, ShouldEqual, "c1")
				So(got.DiversityMetrics.Countries, ShouldEqual, 2)
				So(deps.lastReq.Size, ShouldEqual, 2)
				So(deps.lastReq.Budget, ShouldEqual, 200000)
			})
		})

		Convey("When the optimizer rejects the request", func() {
			deps.teamErr = team.ErrInvalidRequest
			resp, err := http.Post(ts.URL+"/team", "application/json", strings.NewReader(`{"size":-1}`))
			So(err, ShouldBeNil)

			var got struct {
				Code string `json:"code"`
			}
			decodeBody(t, resp, &got)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(got.Code, ShouldEqual, "invalid_request")
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(ts.URL+"/team", "application/json", strings.NewReader("nope"))
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(ts.URL + "/team")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
