// Package aggregate computes distributions and market-intelligence
// statistics over a candidate population. Every function tolerates an
// empty input and returns zero-valued results rather than failing.
package aggregate

import (
	"sort"

	"github.com/hiresight/hiresight/internal/domain/model"
)

// Default analyzer configuration constants.
const (
	defaultQualityThreshold   = 80.0
	defaultArbitrageFactor    = 1.2
	defaultArbitrageMinCount  = 3
	defaultHighValueCeiling   = 100000.0
	defaultTopSkillCount      = 20
	salaryScaleForValueRatio  = 1000.0
	premiumDemandHighSamples  = 20
	premiumDemandMediumSample = 10
)

// Bucket is one labeled count of a distribution. Buckets keep
// first-seen order among score-sorted candidates so chart rendering is
// deterministic.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DistributionKey selects which candidate attribute a distribution
// groups by.
type DistributionKey int

// Supported distribution keys.
const (
	ByCategory DistributionKey = iota
	ByCountry
	ByContinent
	ByExperienceLevel
	ByEducation
)

// SalaryStats summarizes stated salary expectations. Candidates with a
// zero or absent salary are excluded here, unlike scoring which imputes
// the cheapest bracket.
type SalaryStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// SkillPremium compares average salary among holders of a skill to the
// population average.
type SkillPremium struct {
	Skill             string  `json:"skill"`
	AvgSalaryWith     float64 `json:"avg_salary_with"`
	AvgSalaryWithout  float64 `json:"avg_salary_without"`
	PremiumPercentage float64 `json:"premium_percentage"`
	SampleSize        int     `json:"sample_size"`
	Demand            string  `json:"demand"`
}

// CountryStat is one country's aggregate row in the arbitrage report.
type CountryStat struct {
	Country     string  `json:"country"`
	Candidates  int     `json:"candidates"`
	AvgScore    float64 `json:"avg_score"`
	AvgSalary   float64 `json:"avg_salary"`
	ValueRatio  float64 `json:"value_ratio"`
	Opportunity bool    `json:"opportunity"`
}

// SkillScarcity reports how thin the quality supply is for a skill.
// Higher means fewer qualified candidates per candidate with the skill.
type SkillScarcity struct {
	Skill             string  `json:"skill"`
	TotalCandidates   int     `json:"total_candidates"`
	QualityCandidates int     `json:"quality_candidates"`
	ScarcityScore     float64 `json:"scarcity_score"`
}

// Overview is the dashboard headline block.
type Overview struct {
	TotalCandidates     int      `json:"total_candidates"`
	AverageScore        float64  `json:"average_score"`
	Countries           int      `json:"countries"`
	HighValueCandidates int      `json:"high_value_candidates"`
	SkillDistribution   []Bucket `json:"skill_distribution"`
	GeographicSpread    []Bucket `json:"geographic_spread"`
	ExperienceSpread    []Bucket `json:"experience_spread"`
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithQualityThreshold sets the score bound that marks a candidate as
// quality supply for scarcity and high-value counts.
func WithQualityThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.qualityThreshold = threshold
		}
	}
}

// WithArbitrageFactor sets how far a country's score-per-salary ratio
// must exceed the population's before it counts as an opportunity.
func WithArbitrageFactor(factor float64) Option {
	return func(a *Analyzer) {
		if factor > 0 {
			a.arbitrageFactor = factor
		}
	}
}

// WithArbitrageMinCount sets the minimum candidates a country needs to
// appear in the arbitrage report.
func WithArbitrageMinCount(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.arbitrageMinCount = n
		}
	}
}

// WithHighValueSalaryCeiling sets the salary bound for the high-value
// candidate count.
func WithHighValueSalaryCeiling(ceiling float64) Option {
	return func(a *Analyzer) {
		if ceiling > 0 {
			a.highValueCeiling = ceiling
		}
	}
}

// Analyzer computes aggregates over candidate pools. Stateless beyond
// configuration and safe for concurrent use.
type Analyzer struct {
	qualityThreshold  float64
	arbitrageFactor   float64
	arbitrageMinCount int
	highValueCeiling  float64
}

// New constructs an Analyzer with configuration options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		qualityThreshold:  defaultQualityThreshold,
		arbitrageFactor:   defaultArbitrageFactor,
		arbitrageMinCount: defaultArbitrageMinCount,
		highValueCeiling:  defaultHighValueCeiling,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Distribution groups the population by the given key. Bucket order is
// the first-seen order of each label among score-descending candidates.
func (a *Analyzer) Distribution(pool []model.Candidate, key DistributionKey) []Bucket {
	sorted := sortByScore(pool)
	counts := make(map[string]int)
	var order []string
	for _, c := range sorted {
		label := labelFor(c, key)
		if label == "" {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}
	out := make([]Bucket, 0, len(order))
	for _, label := range order {
		out = append(out, Bucket{Label: label, Count: counts[label]})
	}
	return out
}

// Salaries summarizes stated salary expectations.
func (a *Analyzer) Salaries(pool []model.Candidate) SalaryStats {
	var values []float64
	for _, c := range pool {
		if c.SalaryExpectation > 0 {
			values = append(values, c.SalaryExpectation)
		}
	}
	if len(values) == 0 {
		return SalaryStats{}
	}
	sort.Float64s(values)
	return SalaryStats{
		Count:  len(values),
		Min:    values[0],
		Max:    values[len(values)-1],
		Mean:   mean(values),
		Median: quantile(values, 0.5),
		Q1:     quantile(values, 0.25),
		Q3:     quantile(values, 0.75),
	}
}

// Premium computes the salary premium for one skill token. Candidates
// with zero salary are excluded from both averages.
func (a *Analyzer) Premium(pool []model.Candidate, skill string) SkillPremium {
	var with, without []float64
	for _, c := range pool {
		if c.SalaryExpectation <= 0 {
			continue
		}
		if c.HasSkill(skill) {
			with = append(with, c.SalaryExpectation)
		} else {
			without = append(without, c.SalaryExpectation)
		}
	}
	p := SkillPremium{Skill: skill, SampleSize: len(with), Demand: demandTier(len(with))}
	if len(with) == 0 {
		return p
	}
	p.AvgSalaryWith = mean(with)
	p.AvgSalaryWithout = p.AvgSalaryWith
	if len(without) > 0 {
		p.AvgSalaryWithout = mean(without)
	}
	if p.AvgSalaryWithout > 0 {
		p.PremiumPercentage = (p.AvgSalaryWith - p.AvgSalaryWithout) / p.AvgSalaryWithout * 100
	}
	return p
}

// Arbitrage ranks countries by score-per-salary value. A country is an
// opportunity when its ratio exceeds the population ratio by the
// configured factor. Countries with fewer than the minimum candidate
// count are skipped.
func (a *Analyzer) Arbitrage(pool []model.Candidate) []CountryStat {
	type acc struct {
		scoreSum    float64
		count       int
		salarySum   float64
		salaryCount int
	}
	byCountry := make(map[string]*acc)
	var order []string
	popScoreSum, popSalarySum := 0.0, 0.0
	popCount, popSalaryCount := 0, 0
	for _, c := range sortByScore(pool) {
		if c.Country == "" || c.Country == "Unknown" {
			continue
		}
		st, ok := byCountry[c.Country]
		if !ok {
			st = &acc{}
			byCountry[c.Country] = st
			order = append(order, c.Country)
		}
		st.scoreSum += c.OverallScore
		st.count++
		popScoreSum += c.OverallScore
		popCount++
		if c.SalaryExpectation > 0 {
			st.salarySum += c.SalaryExpectation
			st.salaryCount++
			popSalarySum += c.SalaryExpectation
			popSalaryCount++
		}
	}
	if popCount == 0 {
		return []CountryStat{}
	}

	popRatio := 0.0
	if popSalaryCount > 0 && popSalarySum > 0 {
		popAvgSalary := popSalarySum / float64(popSalaryCount)
		popRatio = (popScoreSum / float64(popCount)) / (popAvgSalary / salaryScaleForValueRatio)
	}

	out := make([]CountryStat, 0, len(order))
	for _, country := range order {
		st := byCountry[country]
		if st.count < a.arbitrageMinCount {
			continue
		}
		row := CountryStat{
			Country:    country,
			Candidates: st.count,
			AvgScore:   st.scoreSum / float64(st.count),
		}
		if st.salaryCount > 0 {
			row.AvgSalary = st.salarySum / float64(st.salaryCount)
			row.ValueRatio = row.AvgScore / (row.AvgSalary / salaryScaleForValueRatio)
			row.Opportunity = popRatio > 0 && row.ValueRatio > popRatio*a.arbitrageFactor
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValueRatio > out[j].ValueRatio
	})
	return out
}

// Scarcity scores one skill: 1 - quality/total clamped to [0,1], so
// fewer qualified-but-available candidates means higher scarcity.
func (a *Analyzer) Scarcity(pool []model.Candidate, skill string) SkillScarcity {
	s := SkillScarcity{Skill: skill}
	for _, c := range pool {
		if !c.HasSkill(skill) {
			continue
		}
		s.TotalCandidates++
		if c.OverallScore >= a.qualityThreshold {
			s.QualityCandidates++
		}
	}
	total := s.TotalCandidates
	if total < 1 {
		total = 1
	}
	ratio := float64(s.QualityCandidates) / float64(total)
	s.ScarcityScore = clamp01(1 - ratio)
	return s
}

// TopSkills returns the n most frequent skill tokens. Ties break
// lexicographically so the order is reproducible.
func (a *Analyzer) TopSkills(pool []model.Candidate, n int) []Bucket {
	counts := make(map[string]int)
	for _, c := range pool {
		for _, s := range c.Skills {
			counts[s]++
		}
	}
	skills := make([]string, 0, len(counts))
	for s := range counts {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool {
		if counts[skills[i]] != counts[skills[j]] {
			return counts[skills[i]] > counts[skills[j]]
		}
		return skills[i] < skills[j]
	})
	if n <= 0 {
		n = defaultTopSkillCount
	}
	if n > len(skills) {
		n = len(skills)
	}
	out := make([]Bucket, 0, n)
	for _, s := range skills[:n] {
		out = append(out, Bucket{Label: s, Count: counts[s]})
	}
	return out
}

// Summarize builds the dashboard overview block.
func (a *Analyzer) Summarize(pool []model.Candidate) Overview {
	o := Overview{
		TotalCandidates:   len(pool),
		SkillDistribution: truncate(a.Distribution(pool, ByCategory), 10),
		GeographicSpread:  a.Distribution(pool, ByContinent),
		ExperienceSpread:  a.Distribution(pool, ByExperienceLevel),
	}
	if len(pool) == 0 {
		return o
	}
	countries := make(map[string]bool)
	scoreSum := 0.0
	for _, c := range pool {
		scoreSum += c.OverallScore
		if c.Country != "" && c.Country != "Unknown" {
			countries[c.Country] = true
		}
		if c.OverallScore >= a.qualityThreshold &&
			(!c.HasSalary || c.SalaryExpectation < a.highValueCeiling) {
			o.HighValueCandidates++
		}
	}
	o.AverageScore = scoreSum / float64(len(pool))
	o.Countries = len(countries)
	return o
}

func labelFor(c model.Candidate, key DistributionKey) string {
	switch key {
	case ByCategory:
		return c.PrimarySkillCategory
	case ByCountry:
		return c.Country
	case ByContinent:
		return c.Continent
	case ByExperienceLevel:
		return c.ExperienceLevel
	case ByEducation:
		return c.EducationLevel.String()
	default:
		return ""
	}
}

// sortByScore returns a stable score-descending copy; the input pool is
// never reordered.
func sortByScore(pool []model.Candidate) []model.Candidate {
	sorted := make([]model.Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})
	return sorted
}

func demandTier(samples int) string {
	switch {
	case samples >= premiumDemandHighSamples:
		return "high"
	case samples >= premiumDemandMediumSample:
		return "medium"
	default:
		return "low"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// quantile interpolates linearly over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(buckets []Bucket, n int) []Bucket {
	if len(buckets) <= n {
		return buckets
	}
	return buckets[:n]
}
