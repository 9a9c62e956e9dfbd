package taxonomy_test

import (
	"testing"

	"github.com/hiresight/hiresight/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategorize(t *testing.T) {
	Convey("Given the skill classification tables", t, func() {
		Convey("When categorizing a single-category skill", func() {
			c := taxonomy.Categorize("Django")

			Convey("Then it should land in backend", func() {
				So(c, ShouldEqual, taxonomy.Backend)
			})
		})

		Convey("When categorizing a multi-category skill", func() {
			c := taxonomy.Categorize("JavaScript")

			Convey("Then the first matching category in declaration order wins", func() {
				So(c, ShouldEqual, taxonomy.Frontend)
			})
		})

		Convey("When matching is a substring containment", func() {
			Convey("Then composite names still classify", func() {
				So(taxonomy.Categorize("react native"), ShouldEqual, taxonomy.Frontend)
				So(taxonomy.Categorize("Advanced SQL Tuning"), ShouldEqual, taxonomy.Database)
			})
		})

		Convey("When categorizing an unknown skill", func() {
			c := taxonomy.Categorize("underwater basket weaving")

			Convey("Then the empty category comes back", func() {
				So(c, ShouldEqual, taxonomy.Category(""))
			})
		})

		Convey("When matching is case-insensitive", func() {
			So(taxonomy.Categorize("DOCKER"), ShouldEqual, taxonomy.Cloud)
			So(taxonomy.Categorize("docker"), ShouldEqual, taxonomy.Cloud)
		})
	})
}

func TestCategoriesOf(t *testing.T) {
	Convey("Given a skill that belongs to several categories", t, func() {
		cats := taxonomy.CategoriesOf("docker")

		Convey("Then every matching category is returned in declaration order", func() {
			So(cats, ShouldResemble, []taxonomy.Category{taxonomy.Cloud, taxonomy.DevOps})
		})
	})

	Convey("Given a skill with no category", t, func() {
		So(taxonomy.CategoriesOf("negotiation"), ShouldBeNil)
	})
}

func TestPrimary(t *testing.T) {
	Convey("Given a mixed skill set", t, func() {
		Convey("When one category clearly dominates", func() {
			p := taxonomy.Primary([]string{"react", "vue", "html", "sql"})

			Convey("Then it becomes the primary category", func() {
				So(p, ShouldEqual, taxonomy.Frontend)
			})
		})

		Convey("When two categories tie", func() {
			p := taxonomy.Primary([]string{"django", "swift"})

			Convey("Then declaration order breaks the tie", func() {
				So(p, ShouldEqual, taxonomy.Backend)
			})
		})

		Convey("When no skill matches anything", func() {
			So(taxonomy.Primary([]string{"sales", "marketing"}), ShouldEqual, taxonomy.Category(""))
		})

		Convey("When the skill list is empty", func() {
			So(taxonomy.Primary(nil), ShouldEqual, taxonomy.Category(""))
		})
	})
}

func TestCoveredCategories(t *testing.T) {
	Convey("Given a full-stack skill set", t, func() {
		covered := taxonomy.CoveredCategories([]string{"react", "django", "postgresql", "python"})

		Convey("Then the distinct categories come back in declaration order", func() {
			So(covered, ShouldResemble, []taxonomy.Category{
				taxonomy.Frontend, taxonomy.Backend, taxonomy.Database, taxonomy.Languages,
			})
		})
	})
}

func TestHighDemand(t *testing.T) {
	Convey("Given the high-demand list", t, func() {
		Convey("Then membership is exact, not substring", func() {
			So(taxonomy.IsHighDemand("react"), ShouldBeTrue)
			So(taxonomy.IsHighDemand("React"), ShouldBeTrue)
			So(taxonomy.IsHighDemand("react native"), ShouldBeFalse)
		})

		Convey("Then the exported list is a copy", func() {
			list := taxonomy.HighDemand()
			So(list, ShouldContain, "machine learning")
			list[0] = "mutated"
			So(taxonomy.HighDemand()[0], ShouldEqual, "react")
		})
	})
}
