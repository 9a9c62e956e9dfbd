// Package team selects bounded-size, diversity-aware teams from a
// scored candidate pool.
package team

import (
	"fmt"
	"sort"

	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/taxonomy"
)

// Default optimizer configuration constants.
const (
	defaultWindowMultiplier = 4
	defaultWindowFloor      = 20
)

// Request describes one team-selection run. Budget and the diversity
// thresholds are optional; zero disables them.
type Request struct {
	Size          int     `json:"size"`
	Budget        float64 `json:"budget"`
	MinCountries  int     `json:"min_countries"`
	MinCategories int     `json:"min_categories"`

	// Window bounds the score-ranked scan. Zero picks a default that
	// leaves room for diversity trade-offs beyond the team size.
	Window int `json:"window"`
}

// Validate rejects requests outside their declared domain.
func (r Request) Validate() error {
	switch {
	case r.Size < 0:
		return fmt.Errorf("%w: size must not be negative", ErrInvalidRequest)
	case r.Budget < 0:
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidRequest)
	case r.MinCountries < 0 || r.MinCategories < 0:
		return fmt.Errorf("%w: diversity thresholds must not be negative", ErrInvalidRequest)
	case r.Window < 0:
		return fmt.Errorf("%w: window must not be negative", ErrInvalidRequest)
	}
	return nil
}

// WindowSize returns the effective scan window: the explicit Window
// when set, otherwise a default that leaves room for diversity
// trade-offs beyond the team size.
func (r Request) WindowSize() int {
	if r.Window > 0 {
		return r.Window
	}
	n := r.Size * defaultWindowMultiplier
	if n < defaultWindowFloor {
		n = defaultWindowFloor
	}
	return n
}

// Metrics summarizes the diversity of a selected team.
type Metrics struct {
	Countries       int     `json:"countries"`
	SkillCategories int     `json:"skill_categories"`
	MeanScore       float64 `json:"mean_score"`
	TotalCost       float64 `json:"total_cost"`
	RemainingBudget float64 `json:"remaining_budget"`
}

// Selection is the optimizer result. A team smaller than the requested
// size is a valid outcome when the pool is too small or homogeneous.
type Selection struct {
	Team    []model.Candidate `json:"team"`
	Metrics Metrics           `json:"diversity_metrics"`
}

// Optimizer runs the greedy selection. Stateless and deterministic:
// the same pool and request always produce the same team.
type Optimizer struct{}

// New constructs an Optimizer.
func New() *Optimizer {
	return &Optimizer{}
}

// Optimize greedily fills a team from the score-ranked window. A
// candidate is admitted when it brings an unseen country, the country
// diversity floor is not yet met, or it covers at least one new skill.
// Candidates whose salary would exceed the remaining budget are
// skipped, not fatal. Empty locations never satisfy the location
// clause.
func (o *Optimizer) Optimize(pool []model.Candidate, req Request) (Selection, error) {
	if err := req.Validate(); err != nil {
		return Selection{}, err
	}
	if req.Size == 0 || len(pool) == 0 {
		return Selection{Team: []model.Candidate{}, Metrics: Metrics{RemainingBudget: req.Budget}}, nil
	}

	window := o.window(pool, req)

	selected := make([]model.Candidate, 0, req.Size)
	usedCountries := make(map[string]bool)
	skillCoverage := make(map[string]bool)
	remaining := req.Budget

	for _, c := range window {
		if len(selected) >= req.Size {
			break
		}
		if req.Budget > 0 && c.SalaryExpectation > remaining {
			continue
		}
		if !o.admit(c, usedCountries, skillCoverage, req.MinCountries) {
			continue
		}
		selected = append(selected, c)
		if loc := locationToken(c); loc != "" {
			usedCountries[loc] = true
		}
		for _, s := range c.Skills {
			skillCoverage[s] = true
		}
		if req.Budget > 0 {
			remaining -= c.SalaryExpectation
		}
	}

	return Selection{
		Team:    selected,
		Metrics: o.metrics(selected, remaining),
	}, nil
}

// window returns the stable score-descending top slice of the pool.
func (o *Optimizer) window(pool []model.Candidate, req Request) []model.Candidate {
	sorted := make([]model.Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})

	n := req.WindowSize()
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// admit is the disjunctive admission rule: new location, floor not yet
// met, or new skill contribution.
func (o *Optimizer) admit(c model.Candidate, usedCountries, skillCoverage map[string]bool, minCountries int) bool {
	if loc := locationToken(c); loc != "" {
		if !usedCountries[loc] {
			return true
		}
	}
	if len(usedCountries) < minCountries {
		return true
	}
	for _, s := range c.Skills {
		if !skillCoverage[s] {
			return true
		}
	}
	return false
}

func (o *Optimizer) metrics(selected []model.Candidate, remaining float64) Metrics {
	m := Metrics{RemainingBudget: remaining}
	if len(selected) == 0 {
		return m
	}
	countries := make(map[string]bool)
	var allSkills []string
	scoreSum, cost := 0.0, 0.0
	for _, c := range selected {
		if loc := locationToken(c); loc != "" {
			countries[loc] = true
		}
		allSkills = append(allSkills, c.Skills...)
		scoreSum += c.OverallScore
		cost += c.SalaryExpectation
	}
	m.Countries = len(countries)
	m.SkillCategories = len(taxonomy.CoveredCategories(allSkills))
	m.MeanScore = scoreSum / float64(len(selected))
	m.TotalCost = cost
	return m
}

// locationToken is the diversity key for a candidate. Unknown or empty
// countries carry no diversity signal.
func locationToken(c model.Candidate) string {
	if c.Country == "" || c.Country == "Unknown" {
		return ""
	}
	return c.Country
}
