package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/pkg/logger"
)

// Profile archetypes steer the synthetic distribution so scored pools
// look like real submission data rather than uniform noise.
const (
	caseJuniorGeneralist = 0
	caseSeniorBackend    = 1
	caseFullStack        = 2
	caseDataSpecialist   = 3
	caseMobileDev        = 4
	caseDevOps           = 5
	caseCareerChanger    = 6
	archetypeCount       = 7
)

var firstNames = []string{
	"Ana", "Lucas", "Maria", "Diego", "Priya", "Arjun", "Wei", "Mei",
	"Tolu", "Chidi", "Emma", "Liam", "Sofia", "Mateo", "Hana", "Omar",
}

var lastNames = []string{
	"Silva", "Santos", "Patel", "Sharma", "Chen", "Wang", "Okafor",
	"Adeyemi", "Johnson", "Brown", "Garcia", "Lopez", "Kim", "Hassan",
}

var locations = []string{
	"São Paulo, Brazil", "Rio de Janeiro, Brazil", "Mumbai, India",
	"Bangalore, India", "Lagos, Nigeria", "Austin, United States",
	"New York, United States", "Berlin, Germany", "Lisbon, Portugal",
	"Buenos Aires, Argentina", "Toronto, Canada", "Manila, Philippines",
}

var educationLevels = []string{
	"Bachelor's Degree", "Bachelor's Degree", "Master's Degree",
	"Doctorate", "High School Diploma",
}

var companies = []string{
	"Google", "Amazon", "Acme Corp", "Startup Labs", "DataWorks",
	"Microsoft", "Local Agency", "FinServe", "Meta", "CloudNine",
}

var roles = []string{
	"Software Engineer", "Senior Software Engineer", "Lead Developer",
	"Backend Developer", "Frontend Developer", "Data Analyst",
	"Engineering Manager", "QA Engineer", "Principal Engineer",
}

var skillsByArchetype = map[int][]string{
	caseJuniorGeneralist: {"HTML/CSS", "JavaScript", "Git"},
	caseSeniorBackend:    {"Java", "Spring", "SQL", "Docker", "Kubernetes", "Amazon Web Services"},
	caseFullStack:        {"React", "Node JS", "TypeScript", "PostgreSQL", "Docker"},
	caseDataSpecialist:   {"Python", "Machine Learning", "SQL", "Pandas", "TensorFlow"},
	caseMobileDev:        {"Swift", "Kotlin", "React Native", "Firebase"},
	caseDevOps:           {"Terraform", "Kubernetes", "Docker", "Amazon Web Services", "CI/CD"},
	caseCareerChanger:    {"Excel", "SQL", "Python"},
}

var salaryBrackets = []string{
	"$45,000", "$58,000", "$72,000", "$85,000", "$97,000", "$115,000", "$140,000",
}

// randomInt returns a uniform int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// Generate creates synthetic raw submissions. Every candidate gets a
// unique id so reruns against the same service count as duplicates
// only when an output file is replayed.
func Generate(ctx context.Context, cfg *Config) []model.RawCandidate {
	logger.Get().Info(ctx, "generating synthetic submissions",
		logger.Int("numCandidates", cfg.NumCandidates))

	out := make([]model.RawCandidate, cfg.NumCandidates)
	for i := range out {
		out[i] = generateOne()
	}
	return out
}

func generateOne() model.RawCandidate {
	archetype := randomInt(archetypeCount)
	first := firstNames[randomInt(len(firstNames))]
	last := lastNames[randomInt(len(lastNames))]
	name := first + " " + last

	skills := append([]string(nil), skillsByArchetype[archetype]...)

	raw := model.RawCandidate{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            fmt.Sprintf("%s.%s.%d@example.com", first, last, randomInt(10000)),
		Phone:            fmt.Sprintf("+1-555-%04d", randomInt(10000)),
		Location:         locations[randomInt(len(locations))],
		WorkAvailability: []string{"full-time"},
		Skills:           skills,
	}

	// Roughly one in eight candidates leaves salary blank.
	if randomInt(8) != 0 {
		raw.AnnualSalaryExpectation = map[string]any{
			"full-time": salaryBrackets[randomInt(len(salaryBrackets))],
		}
	}

	experiences := randomInt(5)
	if archetype == caseSeniorBackend || archetype == caseDevOps {
		experiences += 2
	}
	for e := 0; e < experiences; e++ {
		raw.WorkExperiences = append(raw.WorkExperiences, model.RawExperience{
			Company:  companies[randomInt(len(companies))],
			RoleName: roles[randomInt(len(roles))],
		})
	}

	if randomInt(10) != 0 {
		raw.Education = &model.RawEducation{
			HighestLevel: educationLevels[randomInt(len(educationLevels))],
		}
	}

	return raw
}
