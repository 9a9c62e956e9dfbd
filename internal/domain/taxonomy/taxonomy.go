// Package taxonomy holds the static skill classification tables shared
// by scoring and aggregation.
package taxonomy

import "strings"

// Category identifies a skill category.
type Category string

// Categories in declaration order. Order matters: Primary breaks ties
// by this order.
const (
	Frontend  Category = "frontend"
	Backend   Category = "backend"
	Mobile    Category = "mobile"
	Data      Category = "data"
	Database  Category = "database"
	Cloud     Category = "cloud"
	DevOps    Category = "devops"
	Languages Category = "languages"
)

// ordered is the canonical category declaration order.
var ordered = []Category{Frontend, Backend, Mobile, Data, Database, Cloud, DevOps, Languages}

// tokens maps each category to its lower-cased reference tokens. A
// skill belongs to a category when it contains one of these tokens.
var tokens = map[Category][]string{
	Frontend:  {"react", "angular", "vue", "html", "css", "javascript", "typescript", "bootstrap", "next js"},
	Backend:   {"node js", "django", "flask", "express", "fastapi", "spring boot", "laravel", "php"},
	Mobile:    {"react native", "flutter", "swift", "kotlin", "android", "ios"},
	Data:      {"machine learning", "data analysis", "pandas", "tensorflow", "pytorch", "computer vision", "nlp"},
	Database:  {"sql", "postgresql", "mongodb", "nosql", "redis", "mysql"},
	Cloud:     {"amazon web services", "azure", "google cloud", "docker", "kubernetes"},
	DevOps:    {"jenkins", "terraform", "ansible", "ci/cd", "docker", "kubernetes"},
	Languages: {"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust"},
}

// highDemand lists the skills that earn a scoring bonus.
var highDemand = []string{
	"react", "javascript", "python", "node js", "typescript", "java",
	"machine learning", "sql", "amazon web services", "docker",
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

// matches reports whether the skill token belongs to the category.
func matches(skill string, c Category) bool {
	for _, ref := range tokens[c] {
		if strings.Contains(skill, ref) {
			return true
		}
	}
	return false
}

// Categorize returns the first category the skill token belongs to, or
// "" when it matches none. Matching is case-insensitive substring
// containment.
func Categorize(skill string) Category {
	skill = strings.ToLower(skill)
	for _, c := range ordered {
		if matches(skill, c) {
			return c
		}
	}
	return ""
}

// CategoriesOf returns every category the skill token belongs to, in
// declaration order. Aggregate counts credit all of them, not just the
// first.
func CategoriesOf(skill string) []Category {
	skill = strings.ToLower(skill)
	var out []Category
	for _, c := range ordered {
		if matches(skill, c) {
			out = append(out, c)
		}
	}
	return out
}

// Primary returns the category with the most matching skills, breaking
// ties by declaration order. Returns "" when no skill matches any
// category.
func Primary(skills []string) Category {
	counts := make(map[Category]int, len(ordered))
	for _, s := range skills {
		for _, c := range CategoriesOf(s) {
			counts[c]++
		}
	}
	var best Category
	bestCount := 0
	for _, c := range ordered {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

// CoveredCategories returns the distinct categories matched by any of
// the given skills, in declaration order.
func CoveredCategories(skills []string) []Category {
	seen := make(map[Category]bool, len(ordered))
	for _, s := range skills {
		for _, c := range CategoriesOf(s) {
			seen[c] = true
		}
	}
	var out []Category
	for _, c := range ordered {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// IsHighDemand reports whether the (lower-cased) skill token is on the
// fixed high-demand list.
func IsHighDemand(skill string) bool {
	skill = strings.ToLower(skill)
	for _, h := range highDemand {
		if skill == h {
			return true
		}
	}
	return false
}

// HighDemand returns the fixed high-demand skill list.
func HighDemand() []string {
	out := make([]string, len(highDemand))
	copy(out, highDemand)
	return out
}
