package aggregate

import (
	"github.com/hiresight/hiresight/internal/domain/model"
)

// Market report shape constants.
const (
	marketSampleCap     = 100
	marketTopSkillCount = 15
)

// SamplePoint is one (score, salary) observation in the market report
// scatter sample.
type SamplePoint struct {
	Score  float64 `json:"score"`
	Salary float64 `json:"salary"`
}

// MarketReport is the full market-intelligence block.
type MarketReport struct {
	Samples                []SamplePoint   `json:"samples"`
	SalaryStats            SalaryStats     `json:"salary_stats"`
	TopSkills              []Bucket        `json:"top_skills"`
	CategoryDistribution   []Bucket        `json:"category_distribution"`
	CountryDistribution    []Bucket        `json:"country_distribution"`
	ExperienceDistribution []Bucket        `json:"experience_distribution"`
	EducationDistribution  []Bucket        `json:"education_distribution"`
	Arbitrage              []CountryStat   `json:"arbitrage"`
	Premiums               []SkillPremium  `json:"premiums"`
	Scarcity               []SkillScarcity `json:"scarcity"`
}

// Market composes the full market report over the pool. Premium and
// scarcity rows are produced for each of premiumSkills in the given
// order.
func (a *Analyzer) Market(pool []model.Candidate, premiumSkills []string) MarketReport {
	report := MarketReport{
		SalaryStats:            a.Salaries(pool),
		TopSkills:              a.TopSkills(pool, marketTopSkillCount),
		CategoryDistribution:   a.Distribution(pool, ByCategory),
		CountryDistribution:    a.Distribution(pool, ByCountry),
		ExperienceDistribution: a.Distribution(pool, ByExperienceLevel),
		EducationDistribution:  a.Distribution(pool, ByEducation),
		Arbitrage:              a.Arbitrage(pool),
	}

	// Scatter sample: highest-scored candidates with a stated salary,
	// capped so the payload stays small. The pool arrives score-sorted
	// from the store; sort again so raw slices behave the same.
	for _, c := range sortByScore(pool) {
		if len(report.Samples) >= marketSampleCap {
			break
		}
		if c.SalaryExpectation > 0 {
			report.Samples = append(report.Samples, SamplePoint{
				Score:  c.OverallScore,
				Salary: c.SalaryExpectation,
			})
		}
	}

	for _, skill := range premiumSkills {
		report.Premiums = append(report.Premiums, a.Premium(pool, skill))
		report.Scarcity = append(report.Scarcity, a.Scarcity(pool, skill))
	}

	return report
}
