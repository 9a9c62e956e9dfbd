package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hiresight/hiresight/internal/adapters/repository"
	"github.com/hiresight/hiresight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-memory candidate store", t, func() {
		s := repository.NewMemStore(repository.WithInitialCapacity(16))

		Convey("When it is empty", func() {
			So(s.Count(ctx), ShouldEqual, 0)
			So(s.Snapshot(ctx), ShouldBeEmpty)

			_, err := s.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a batch replaces the pool", func() {
			batch := []model.Candidate{
				{ID: "c1", OverallScore: 70},
				{ID: "c2", OverallScore: 90},
				{ID: "c3", OverallScore: 80},
			}
			So(s.Replace(ctx, batch), ShouldBeNil)

			Convey("Then the snapshot is score-descending", func() {
				snap := s.Snapshot(ctx)
				So(snap, ShouldHaveLength, 3)
				So(snap[0].ID, ShouldEqual, "c2")
				So(snap[1].ID, ShouldEqual, "c3")
				So(snap[2].ID, ShouldEqual, "c1")
			})

			Convey("Then lookups resolve by ID", func() {
				c, err := s.Get(ctx, "c3")
				So(err, ShouldBeNil)
				So(c.OverallScore, ShouldEqual, 80)
			})

			Convey("Then the input batch order is untouched", func() {
				So(batch[0].ID, ShouldEqual, "c1")
			})

			Convey("And a second replace swaps the pool atomically", func() {
				So(s.Replace(ctx, []model.Candidate{{ID: "c9", OverallScore: 50}}), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 1)

				_, err := s.Get(ctx, "c1")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When candidates tie on score", func() {
			So(s.Replace(ctx, []model.Candidate{
				{ID: "a", OverallScore: 80},
				{ID: "b", OverallScore: 80},
				{ID: "c", OverallScore: 80},
			}), ShouldBeNil)

			Convey("Then batch order breaks the tie", func() {
				snap := s.Snapshot(ctx)
				So(snap[0].ID, ShouldEqual, "a")
				So(snap[1].ID, ShouldEqual, "b")
				So(snap[2].ID, ShouldEqual, "c")
			})
		})

		Convey("When asking for the top slice", func() {
			So(s.Replace(ctx, []model.Candidate{
				{ID: "c1", OverallScore: 60},
				{ID: "c2", OverallScore: 95},
				{ID: "c3", OverallScore: 75},
			}), ShouldBeNil)

			Convey("Then TopN returns the highest scores", func() {
				top, err := s.TopN(ctx, 2)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 2)
				So(top[0].ID, ShouldEqual, "c2")
				So(top[1].ID, ShouldEqual, "c3")
			})

			Convey("Then an oversized n clamps to the pool", func() {
				top, err := s.TopN(ctx, 100)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 3)
			})

			Convey("Then a non-positive n is rejected", func() {
				_, err := s.TopN(ctx, 0)
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})
	})
}

func TestMemStoreConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent readers during replaces", t, func() {
		s := repository.NewMemStore()
		So(s.Replace(ctx, []model.Candidate{{ID: "seed", OverallScore: 50}}), ShouldBeNil)

		Convey("When writers and readers race", func() {
			var wg sync.WaitGroup
			for i := 0; i < 5; i++ {
				wg.Add(2)
				go func(n int) {
					defer wg.Done()
					batch := make([]model.Candidate, 10)
					for j := range batch {
						batch[j] = model.Candidate{
							ID:           fmt.Sprintf("w%d-%d", n, j),
							OverallScore: float64(j),
						}
					}
					_ = s.Replace(ctx, batch)
				}(i)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						snap := s.Snapshot(ctx)
						_ = len(snap)
						_ = s.Count(ctx)
					}
				}()
			}
			wg.Wait()

			Convey("Then the store settles on one complete batch", func() {
				So(s.Count(ctx), ShouldEqual, 10)
				snap := s.Snapshot(ctx)
				So(snap[0].OverallScore, ShouldEqual, 9)
			})
		})
	})
}
