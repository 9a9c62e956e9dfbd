// Package scoring computes the composite 0-100 quality score for
// normalized candidates.
package scoring

import (
	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/taxonomy"
)

// Subscore caps and weights. The five capped subscores sum to at most
// 100.
const (
	skillsCap        = 30
	skillCountCap    = 20
	skillCountWeight = 2
	highDemandBonus  = 5

	experienceCap    = 25
	experienceWeight = 8

	educationAdvanced = 20
	educationBachelor = 15

	valueCap          = 15
	valueMidBracket   = 10
	valueUpperBracket = 5
	salaryBracketLow  = 60000
	salaryBracketMid  = 80000
	salaryBracketHigh = 100000

	completenessPerItem = 2

	maxScore = 100
)

// Experience-level thresholds over the experience subscore.
const (
	seniorThreshold = 20
	midThreshold    = 15
	juniorThreshold = 8
)

// Breakdown carries the individual capped subscores next to the total.
type Breakdown struct {
	Skills       float64 `json:"skills"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	Value        float64 `json:"value"`
	Completeness float64 `json:"completeness"`
	Total        float64 `json:"total"`
}

// Engine scores candidates. It is stateless, pure, and safe for
// concurrent use: identical input always yields an identical score.
type Engine struct{}

// New constructs a scoring Engine.
func New() *Engine {
	return &Engine{}
}

// Score computes the composite quality score for a candidate.
func (e *Engine) Score(c model.Candidate) Breakdown {
	b := Breakdown{
		Skills:       skillsScore(c),
		Experience:   experienceScore(c),
		Education:    educationScore(c),
		Value:        valueScore(c),
		Completeness: completenessScore(c),
	}
	b.Total = b.Skills + b.Experience + b.Education + b.Value + b.Completeness
	if b.Total > maxScore {
		b.Total = maxScore
	}
	return b
}

// Apply returns a scored copy of the candidate. The input is never
// mutated, so shared pool snapshots stay safe under concurrent reads.
func (e *Engine) Apply(c model.Candidate) model.Candidate {
	b := e.Score(c)
	c.OverallScore = b.Total
	c.Scored = true
	c.ExperienceLevel = ExperienceLevel(b.Experience)
	return c
}

// ExperienceLevel buckets the experience subscore into the level labels
// used by filters and distributions.
func ExperienceLevel(expScore float64) string {
	switch {
	case expScore >= seniorThreshold:
		return "Senior"
	case expScore >= midThreshold:
		return "Mid-Level"
	case expScore >= juniorThreshold:
		return "Junior"
	default:
		return "Entry-Level"
	}
}

// skillsScore awards up to 20 points for breadth plus 5 per high-demand
// skill, capped at 30.
func skillsScore(c model.Candidate) float64 {
	count := float64(len(c.Skills)) * skillCountWeight
	if count > skillCountCap {
		count = skillCountCap
	}
	demand := 0.0
	for _, s := range c.Skills {
		if taxonomy.IsHighDemand(s) {
			demand += highDemandBonus
		}
	}
	total := count + demand
	if total > skillsCap {
		total = skillsCap
	}
	return total
}

func experienceScore(c model.Candidate) float64 {
	score := float64(c.TotalExperiences) * experienceWeight
	if score > experienceCap {
		score = experienceCap
	}
	return score
}

// educationScore awards two explicit tiers; anything below a Bachelor's
// degree scores 0.
func educationScore(c model.Candidate) float64 {
	switch c.EducationLevel {
	case model.EducationDoctorate, model.EducationMaster:
		return educationAdvanced
	case model.EducationBachelor:
		return educationBachelor
	default:
		return 0
	}
}

// valueScore is an inverse step function of salary expectation. A
// missing or zero salary lands in the cheapest bracket, not an error.
func valueScore(c model.Candidate) float64 {
	switch {
	case c.SalaryExpectation < salaryBracketLow:
		return valueCap
	case c.SalaryExpectation < salaryBracketMid:
		return valueMidBracket
	case c.SalaryExpectation < salaryBracketHigh:
		return valueUpperBracket
	default:
		return 0
	}
}

// completenessScore awards 2 points for each populated profile section.
func completenessScore(c model.Candidate) float64 {
	score := 0.0
	if c.Name != "" {
		score += completenessPerItem
	}
	if c.Email != "" || c.Phone != "" {
		score += completenessPerItem
	}
	if len(c.Skills) > 0 {
		score += completenessPerItem
	}
	if c.TotalExperiences > 0 {
		score += completenessPerItem
	}
	if c.EducationLevel > model.EducationNone {
		score += completenessPerItem
	}
	return score
}
