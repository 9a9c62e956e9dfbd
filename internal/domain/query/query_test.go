package query_test

import (
	"errors"
	"testing"

	"github.com/hiresight/hiresight/internal/domain/model"
	"github.com/hiresight/hiresight/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func boolPtr(v bool) *bool { return &v }

func samplePool() []model.Candidate {
	return []model.Candidate{
		{
			ID: "c1", Name: "Ana Souza", Country: "Brazil", City: "São Paulo",
			Skills: []string{"react", "python"}, PrimarySkillCategory: "Backend",
			ExperienceLevel: "Senior", OverallScore: 92,
			SalaryExpectation: 70000, HasSalary: true,
			HasBigTech: true, IsFullStack: true,
			ExperienceEntries: []model.Experience{{Company: "Google", Role: "Engineer"}},
		},
		{
			ID: "c2", Name: "Bram de Vries", Country: "Netherlands", City: "Amsterdam",
			Skills: []string{"java", "sql"}, PrimarySkillCategory: "Backend",
			ExperienceLevel: "Mid-Level", OverallScore: 75,
			SalaryExpectation: 95000, HasSalary: true,
			ExperienceEntries: []model.Experience{{Company: "Adyen", Role: "Engineer"}},
		},
		{
			ID: "c3", Name: "Chidi Okafor", Country: "Brazil", City: "Recife",
			Skills: []string{"javascript"}, PrimarySkillCategory: "Frontend",
			ExperienceLevel: "Junior", OverallScore: 85,
		},
		{
			ID: "c4", Name: "Dana Levi", Country: "Israel", City: "Tel Aviv",
			Skills: []string{"python", "machine learning"}, PrimarySkillCategory: "AI/ML",
			ExperienceLevel: "Senior", OverallScore: 85,
			SalaryExpectation: 120000, HasSalary: true,
			HasBigTech: true,
		},
		{
			ID: "c5", Name: "Eli Brandt", Country: "Germany", City: "Berlin",
			Skills: []string{"go", "docker"}, PrimarySkillCategory: "Cloud",
			ExperienceLevel: "Mid-Level", OverallScore: 60,
		},
	}
}

func ids(cs []model.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestValidate(t *testing.T) {
	Convey("Given filter specifications", t, func() {
		Convey("When all fields sit inside their domains", func() {
			spec := query.FilterSpec{MinScore: 10, MaxScore: 90, MinSalary: 50000, MaxSalary: 90000, Limit: 20}
			So(spec.Validate(), ShouldBeNil)
		})

		Convey("When a field is out of range", func() {
			cases := []query.FilterSpec{
				{Limit: -1},
				{Offset: -3},
				{MinScore: -1},
				{MaxScore: 101},
				{MinScore: 80, MaxScore: 40},
				{MinSalary: -5},
				{MinSalary: 90000, MaxSalary: 60000},
			}
			for _, spec := range cases {
				So(errors.Is(spec.Validate(), query.ErrInvalidFilter), ShouldBeTrue)
			}
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a scored candidate pool", t, func() {
		pool := samplePool()

		Convey("When no predicate is set", func() {
			res, err := query.Evaluate(pool, query.FilterSpec{Limit: 10})

			Convey("Then every candidate is returned score-descending", func() {
				So(err, ShouldBeNil)
				So(res.TotalMatched, ShouldEqual, 5)
				So(ids(res.Matched), ShouldResemble, []string{"c1", "c3", "c4", "c2", "c5"})
			})
		})

		Convey("When filtering by minimum score and country", func() {
			res, err := query.Evaluate(pool, query.FilterSpec{MinScore: 80, Country: "Brazil", Limit: 10})

			Convey("Then only high-scoring Brazilians remain", func() {
				So(err, ShouldBeNil)
				So(ids(res.Matched), ShouldResemble, []string{"c1", "c3"})
				So(res.TotalMatched, ShouldEqual, 2)
				So(res.Returned, ShouldEqual, 2)
			})
		})

		Convey("When filtering by a salary range", func() {
			res, err := query.Evaluate(pool, query.FilterSpec{MinSalary: 60000, MaxSalary: 100000, Limit: 10})

			Convey("Then stated salaries are range-checked and absent ones pass", func() {
				So(err, ShouldBeNil)
				So(ids(res.Matched), ShouldResemble, []string{"c1", "c3", "c2", "c5"})
			})
		})

		Convey("When combining exact predicates", func() {
			Convey("Then skill category matches case-insensitively", func() {
				res, err := query.Evaluate(pool, query.FilterSpec{SkillCategory: "backend", Limit: 10})
				So(err, ShouldBeNil)
				So(ids(res.Matched), ShouldResemble, []string{"c1", "c2"})
			})

			Convey("Then experience level narrows the pool", func() {
				res, err := query.Evaluate(pool, query.FilterSpec{ExperienceLevel: "senior", Limit: 10})
				So(err, ShouldBeNil)
				So(ids(res.Matched), ShouldResemble, []string{"c1", "c4"})
			})

			Convey("Then the big-tech flag matches both polarities", func() {
				with, err := query.Evaluate(pool, query.FilterSpec{HasBigTech: boolPtr(true), Limit: 10})
				So(err, ShouldBeNil)
				So(ids(with.Matched), ShouldResemble, []string{"c1", "c4"})

				without, err := query.Evaluate(pool, query.FilterSpec{HasBigTech: boolPtr(false), Limit: 10})
				So(err, ShouldBeNil)
				So(ids(without.Matched), ShouldResemble, []string{"c3", "c2", "c5"})
			})

			Convey("Then full-stack-only keeps full-stack profiles", func() {
				res, err := query.Evaluate(pool, query.FilterSpec{FullStackOnly: true, Limit: 10})
				So(err, ShouldBeNil)
				So(ids(res.Matched), ShouldResemble, []string{"c1"})
			})
		})

		Convey("When searching free text", func() {
			Convey("Then names, cities, skills, and employers all match", func() {
				byName, _ := query.Evaluate(pool, query.FilterSpec{Search: "ana s", Limit: 10})
				So(ids(byName.Matched), ShouldResemble, []string{"c1"})

				byCity, _ := query.Evaluate(pool, query.FilterSpec{Search: "BERLIN", Limit: 10})
				So(ids(byCity.Matched), ShouldResemble, []string{"c5"})

				bySkill, _ := query.Evaluate(pool, query.FilterSpec{Search: "machine", Limit: 10})
				So(ids(bySkill.Matched), ShouldResemble, []string{"c4"})

				byEmployer, _ := query.Evaluate(pool, query.FilterSpec{Search: "google", Limit: 10})
				So(ids(byEmployer.Matched), ShouldResemble, []string{"c1"})
			})

			Convey("Then a miss yields an empty result, not an error", func() {
				res, err := query.Evaluate(pool, query.FilterSpec{Search: "cobol", Limit: 10})
				So(err, ShouldBeNil)
				So(res.TotalMatched, ShouldEqual, 0)
				So(res.Matched, ShouldBeEmpty)
			})
		})

		Convey("When paginating", func() {
			Convey("Then pages tile the full match set without gaps", func() {
				var seen []string
				for offset := 0; ; offset += 2 {
					res, err := query.Evaluate(pool, query.FilterSpec{Limit: 2, Offset: offset})
					So(err, ShouldBeNil)
					if res.Returned == 0 {
						break
					}
					seen = append(seen, ids(res.Matched)...)
					So(res.TotalMatched, ShouldEqual, 5)
				}
				So(seen, ShouldResemble, []string{"c1", "c3", "c4", "c2", "c5"})
			})

			Convey("Then a zero limit returns an empty page with the full count", func() {
				res, err := query.Evaluate(pool, query.FilterSpec{Limit: 0})
				So(err, ShouldBeNil)
				So(res.Matched, ShouldBeEmpty)
				So(res.Returned, ShouldEqual, 0)
				So(res.TotalMatched, ShouldEqual, 5)
			})

			Convey("Then an offset past the end is empty", func() {
				res, err := query.Evaluate(pool, query.FilterSpec{Limit: 2, Offset: 50})
				So(err, ShouldBeNil)
				So(res.Matched, ShouldBeEmpty)
			})
		})

		Convey("When candidates tie on score", func() {
			Convey("Then pool order breaks the tie on every run", func() {
				for i := 0; i < 10; i++ {
					res, err := query.Evaluate(pool, query.FilterSpec{MinScore: 85, Limit: 10})
					So(err, ShouldBeNil)
					So(ids(res.Matched), ShouldResemble, []string{"c1", "c3", "c4"})
				}
			})
		})

		Convey("When the spec is invalid", func() {
			_, err := query.Evaluate(pool, query.FilterSpec{MinScore: 120, Limit: 10})
			So(errors.Is(err, query.ErrInvalidFilter), ShouldBeTrue)
		})

		Convey("When the pool is empty", func() {
			res, err := query.Evaluate(nil, query.FilterSpec{Limit: 10})
			So(err, ShouldBeNil)
			So(res.TotalMatched, ShouldEqual, 0)
			So(res.Matched, ShouldBeEmpty)
		})
	})
}
