// Package query evaluates declarative filter specifications against a
// scored candidate pool.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hiresight/hiresight/internal/domain/model"
)

const maxScoreBound = 100

// FilterSpec is a stateless, per-query configuration of named
// predicates. Zero values mean "not constrained" except Limit, which
// bounds the page size (0 returns an empty page).
type FilterSpec struct {
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`

	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`

	Country         string `json:"country"`
	SkillCategory   string `json:"skill_category"`
	ExperienceLevel string `json:"experience_level"`
	HasBigTech      *bool  `json:"has_big_tech"`
	FullStackOnly   bool   `json:"full_stack_only"`

	// Search matches case-insensitively against name, skills,
	// country, city, and employer names.
	Search string `json:"search"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Result is the query envelope. TotalMatched counts pre-pagination
// matches so callers can implement load-more without re-deriving
// counts.
type Result struct {
	Matched      []model.Candidate `json:"matched"`
	TotalMatched int               `json:"total_matched"`
	Returned     int               `json:"returned"`
}

// Validate rejects specs whose fields are outside their declared
// domains. All violations wrap ErrInvalidFilter.
func (f FilterSpec) Validate() error {
	switch {
	case f.Limit < 0:
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidFilter)
	case f.Offset < 0:
		return fmt.Errorf("%w: offset must not be negative", ErrInvalidFilter)
	case f.MinScore < 0 || f.MinScore > maxScoreBound:
		return fmt.Errorf("%w: min_score must be in [0,100]", ErrInvalidFilter)
	case f.MaxScore < 0 || f.MaxScore > maxScoreBound:
		return fmt.Errorf("%w: max_score must be in [0,100]", ErrInvalidFilter)
	case f.MaxScore > 0 && f.MinScore > f.MaxScore:
		return fmt.Errorf("%w: min_score exceeds max_score", ErrInvalidFilter)
	case f.MinSalary < 0 || f.MaxSalary < 0:
		return fmt.Errorf("%w: salary bounds must not be negative", ErrInvalidFilter)
	case f.MaxSalary > 0 && f.MinSalary > f.MaxSalary:
		return fmt.Errorf("%w: min_salary exceeds max_salary", ErrInvalidFilter)
	}
	return nil
}

// Evaluate applies the spec to the pool: range and exact predicates
// first (logical AND), then the free-text search, then a stable
// score-descending sort, then offset/limit. An empty pool or a zero
// limit yields an empty result, never an error.
func Evaluate(pool []model.Candidate, spec FilterSpec) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	matched := make([]model.Candidate, 0, len(pool))
	for _, c := range pool {
		if spec.matches(c) {
			matched = append(matched, c)
		}
	}

	// Stable keeps original pool order on equal scores so pagination
	// is reproducible.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].OverallScore > matched[j].OverallScore
	})

	total := len(matched)
	page := paginate(matched, spec.Offset, spec.Limit)
	return Result{Matched: page, TotalMatched: total, Returned: len(page)}, nil
}

// matches evaluates every predicate against one candidate.
func (f FilterSpec) matches(c model.Candidate) bool {
	if f.MinScore > 0 && c.OverallScore < f.MinScore {
		return false
	}
	if f.MaxScore > 0 && f.MaxScore < maxScoreBound && c.OverallScore > f.MaxScore {
		return false
	}
	// Candidates without a stated salary pass salary-range predicates:
	// an absent expectation is unknown, not out of range.
	if f.MinSalary > 0 && c.HasSalary && c.SalaryExpectation < f.MinSalary {
		return false
	}
	if f.MaxSalary > 0 && c.HasSalary && c.SalaryExpectation > f.MaxSalary {
		return false
	}
	if f.Country != "" && !strings.EqualFold(c.Country, f.Country) {
		return false
	}
	if f.SkillCategory != "" && !strings.EqualFold(c.PrimarySkillCategory, f.SkillCategory) {
		return false
	}
	if f.ExperienceLevel != "" && !strings.EqualFold(c.ExperienceLevel, f.ExperienceLevel) {
		return false
	}
	if f.HasBigTech != nil && c.HasBigTech != *f.HasBigTech {
		return false
	}
	if f.FullStackOnly && !c.IsFullStack {
		return false
	}
	if f.Search != "" && !searchMatches(c, f.Search) {
		return false
	}
	return true
}

// searchMatches is the free-text predicate: case-insensitive substring
// over name, skill tokens, country, city, and employer names.
func searchMatches(c model.Candidate, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Country), q) ||
		strings.Contains(strings.ToLower(c.City), q) {
		return true
	}
	for _, s := range c.Skills {
		if strings.Contains(s, q) {
			return true
		}
	}
	for _, e := range c.ExperienceEntries {
		if strings.Contains(strings.ToLower(e.Company), q) {
			return true
		}
	}
	return false
}

func paginate(matched []model.Candidate, offset, limit int) []model.Candidate {
	if offset >= len(matched) || limit == 0 {
		return []model.Candidate{}
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]model.Candidate, end-offset)
	copy(page, matched[offset:end])
	return page
}
