// Package normalize converts raw candidate submissions into canonical
// Candidate entities. All format sniffing lives here: downstream
// components never branch on representation.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/taxonomy"
)

// tierOneCompanies flag big-tech backgrounds in experience entries.
var tierOneCompanies = []string{
	"Google", "Amazon", "Microsoft", "Apple", "Meta", "Netflix",
	"Tesla", "Uber", "Airbnb", "Spotify", "Stripe",
}

// seniorKeywords flag senior-level roles.
var seniorKeywords = []string{
	"Senior", "Lead", "Principal", "Staff", "Director", "VP",
	"CTO", "Co-Founder", "Head of", "Chief",
}

// continentByCountry is a static fallback table; unmapped countries
// normalize to "Other".
var continentByCountry = map[string]string{
	"United States": "North America", "Canada": "North America", "Mexico": "North America",
	"Brazil": "South America", "Argentina": "South America", "Peru": "South America",
	"Germany": "Europe", "Spain": "Europe", "United Kingdom": "Europe", "France": "Europe",
	"India": "Asia", "Pakistan": "Asia", "Bangladesh": "Asia", "China": "Asia",
	"Australia": "Oceania", "Egypt": "Africa",
}

// Normalizer converts raw records into Candidates. It is stateless and
// safe for concurrent use.
type Normalizer struct{}

// New constructs a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize converts one raw record into a Candidate. Malformed input
// degrades to conservative defaults (empty set, zero salary) and never
// produces an error: pool completeness wins over strict validation.
// The result is unscored; the scoring engine attaches OverallScore.
func (n *Normalizer) Normalize(raw model.RawCandidate) model.Candidate {
	skills := ParseSkills(raw.Skills)
	city, country, continent := splitLocation(raw.Location)
	salary, hasSalary := fullTimeSalary(raw.AnnualSalaryExpectation)

	entries := make([]model.Experience, 0, len(raw.WorkExperiences))
	hasBigTech := false
	hasSenior := false
	for _, exp := range raw.WorkExperiences {
		e := model.Experience{
			Company: exp.Company,
			Role:    exp.RoleName,
			BigTech: containsAny(exp.Company, tierOneCompanies),
			Senior:  containsAny(exp.RoleName, seniorKeywords),
		}
		hasBigTech = hasBigTech || e.BigTech
		hasSenior = hasSenior || e.Senior
		entries = append(entries, e)
	}

	return model.Candidate{
		ID:                   strings.TrimSpace(raw.ID),
		Name:                 strings.TrimSpace(raw.Name),
		Email:                strings.TrimSpace(raw.Email),
		Phone:                strings.TrimSpace(raw.Phone),
		Country:              country,
		City:                 city,
		Continent:            continent,
		Skills:               skills,
		PrimarySkillCategory: string(taxonomy.Primary(skills)),
		TotalSkills:          len(skills),
		ExperienceEntries:    entries,
		TotalExperiences:     len(entries),
		EducationLevel:       educationLevel(raw.Education),
		SalaryExpectation:    salary,
		HasSalary:            hasSalary,
		HasBigTech:           hasBigTech,
		HasSeniorRole:        hasSenior,
		IsFullStack:          isFullStack(skills),
	}
}

// ParseSkills normalizes the free-form skills field to a lower-cased,
// deduplicated token list. Attempts, in order: native list, JSON array
// string, comma-separated string. Total failure yields an empty set,
// never an error.
func ParseSkills(v any) []string {
	switch s := v.(type) {
	case nil:
		return []string{}
	case []string:
		return dedupe(s)
	case []any:
		items := make([]string, 0, len(s))
		for _, it := range s {
			if str, ok := it.(string); ok {
				items = append(items, str)
			}
		}
		return dedupe(items)
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || trimmed == "[]" {
			return []string{}
		}
		if strings.HasPrefix(trimmed, "[") {
			var list []string
			if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
				return dedupe(list)
			}
			// Fall through to comma splitting on bad JSON.
		}
		return dedupe(strings.Split(trimmed, ","))
	default:
		return []string{}
	}
}

// dedupe lower-cases, trims, and deduplicates tokens, keeping first
// occurrence order.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		tok := strings.ToLower(strings.TrimSpace(it))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// fullTimeSalary extracts the annual full-time expectation. Values may
// be numbers or strings like "$97,000"; missing or unparseable values
// normalize to 0 so downstream arithmetic stays total.
func fullTimeSalary(m map[string]any) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m["full-time"]
	if !ok {
		return 0, false
	}
	switch s := v.(type) {
	case float64:
		if s > 0 {
			return s, true
		}
	case int:
		if s > 0 {
			return float64(s), true
		}
	case string:
		n := 0.0
		digits := false
		for _, r := range s {
			if r >= '0' && r <= '9' {
				n = n*10 + float64(r-'0')
				digits = true
			}
		}
		if digits && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// splitLocation derives city, country, and continent from a free-text
// "City, Country" location. The country is the last comma-separated
// part, matching how submissions are written.
func splitLocation(location string) (city, country, continent string) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "Unknown", "Unknown", "Unknown"
	}
	parts := strings.Split(location, ",")
	country = strings.TrimSpace(parts[len(parts)-1])
	city = country
	if len(parts) > 1 {
		city = strings.TrimSpace(parts[0])
	}
	continent = continentByCountry[country]
	if continent == "" {
		continent = "Other"
	}
	return city, country, continent
}

// educationLevel maps the submitted highest level onto the ordinal
// enum. Anything below a Bachelor's degree is EducationNone.
func educationLevel(edu *model.RawEducation) model.EducationLevel {
	if edu == nil {
		return model.EducationNone
	}
	switch edu.HighestLevel {
	case "Doctorate":
		return model.EducationDoctorate
	case "Master's Degree":
		return model.EducationMaster
	case "Bachelor's Degree":
		return model.EducationBachelor
	default:
		return model.EducationNone
	}
}

// isFullStack reports whether the skill set spans both frontend and
// backend categories.
func isFullStack(skills []string) bool {
	front, back := false, false
	for _, s := range skills {
		for _, c := range taxonomy.CategoriesOf(s) {
			switch c {
			case taxonomy.Frontend:
				front = true
			case taxonomy.Backend:
				back = true
			}
		}
	}
	return front && back
}

// containsAny reports whether s contains any of the reference strings.
func containsAny(s string, refs []string) bool {
	for _, r := range refs {
		if strings.Contains(s, r) {
			return true
		}
	}
	return false
}
