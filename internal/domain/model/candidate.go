// Package model contains domain models passed between layers.
package model

// EducationLevel is an ordinal education ranking. Higher is more advanced.
type EducationLevel int

// Education levels in ascending order.
const (
	EducationNone EducationLevel = iota
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

// String returns the display label used in API responses.
func (l EducationLevel) String() string {
	switch l {
	case EducationBachelor:
		return "Bachelor's Degree"
	case EducationMaster:
		return "Master's Degree"
	case EducationDoctorate:
		return "Doctorate"
	default:
		return "None"
	}
}

// Experience is a single normalized work-experience entry.
type Experience struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	BigTech bool   `json:"big_tech"`
	Senior  bool   `json:"senior"`
}

// RawDegree mirrors one degree record as submitted by candidates.
type RawDegree struct {
	Subject string `json:"subject"`
	GPA     string `json:"gpa"`
	IsTop50 bool   `json:"isTop50"`
	IsTop25 bool   `json:"isTop25"`
}

// RawEducation mirrors the nested education block of a submission.
type RawEducation struct {
	HighestLevel string      `json:"highest_level"`
	Degrees      []RawDegree `json:"degrees"`
}

// RawExperience mirrors one work-experience record of a submission.
type RawExperience struct {
	Company  string `json:"company"`
	RoleName string `json:"roleName"`
}

// RawCandidate is the heterogeneous boundary shape supplied by the
// data-loading collaborator. Skills may arrive as a native list, a
// JSON-encoded string, or a comma-separated string; salary values may
// be numbers or strings like "$97,000".
type RawCandidate struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	Email                   string          `json:"email"`
	Phone                   string          `json:"phone"`
	Location                string          `json:"location"`
	SubmittedAt             string          `json:"submitted_at"`
	WorkAvailability        []string        `json:"work_availability"`
	AnnualSalaryExpectation map[string]any  `json:"annual_salary_expectation"`
	WorkExperiences         []RawExperience `json:"work_experiences"`
	Education               *RawEducation   `json:"education"`
	Skills                  any             `json:"skills"`
}

// Candidate is the canonical entity used by all downstream components.
// Immutable after normalization: operations copy rather than mutate.
type Candidate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Continent string `json:"continent"`

	// Skills are lower-cased and deduplicated, first occurrence order.
	Skills               []string `json:"skills"`
	PrimarySkillCategory string   `json:"primary_skill_category"`
	TotalSkills          int      `json:"total_skills"`

	ExperienceEntries []Experience `json:"experience_entries"`
	TotalExperiences  int          `json:"total_experiences"`

	EducationLevel EducationLevel `json:"education_level"`

	// SalaryExpectation is the annual full-time figure; 0 when absent.
	SalaryExpectation float64 `json:"salary_expectation"`
	HasSalary         bool    `json:"has_salary"`

	OverallScore    float64 `json:"overall_score"`
	Scored          bool    `json:"scored"`
	ExperienceLevel string  `json:"experience_level"`

	HasBigTech    bool `json:"has_big_tech"`
	HasSeniorRole bool `json:"has_senior_role"`
	IsFullStack   bool `json:"is_full_stack"`
}

// HasSkill reports whether the candidate lists the given (already
// lower-cased) skill token.
func (c Candidate) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
