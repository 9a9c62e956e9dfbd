package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/hiresight/hiresight/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new in-memory deduper", t, func() {
		Convey("When creating it with defaults", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it starts empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording submission IDs", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the ID is new", func() {
				seen := d.SeenAndRecord(context.Background(), "sub-1")

				Convey("Then it reports unseen and records it", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the ID was already recorded", func() {
				d.SeenAndRecord(context.Background(), "sub-1")
				seen := d.SeenAndRecord(context.Background(), "sub-1")

				Convey("Then it reports a duplicate without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And several distinct IDs arrive", func() {
				ids := []string{"sub-1", "sub-2", "sub-3", "sub-4"}
				for _, id := range ids {
					So(d.SeenAndRecord(context.Background(), id), ShouldBeFalse)
				}

				Convey("Then all are remembered", func() {
					So(d.Size(), ShouldEqual, int64(len(ids)))
					for _, id := range ids {
						So(d.SeenAndRecord(context.Background(), id), ShouldBeTrue)
					}
				})
			})
		})

		Convey("When unrecording after a failed load", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the ID exists", func() {
				d.SeenAndRecord(context.Background(), "sub-1")
				d.Unrecord(context.Background(), "sub-1")

				Convey("Then the submission can be loaded again", func() {
					So(d.Size(), ShouldEqual, 0)
					So(d.SeenAndRecord(context.Background(), "sub-1"), ShouldBeFalse)
				})
			})

			Convey("And the ID was never recorded", func() {
				d.Unrecord(context.Background(), "ghost")

				Convey("Then nothing changes", func() {
					So(d.Size(), ShouldEqual, 0)
				})
			})
		})

		Convey("When the bounded deduper reaches capacity", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

			for _, id := range []string{"sub-1", "sub-2", "sub-3"} {
				So(d.SeenAndRecord(context.Background(), id), ShouldBeFalse)
			}
			So(d.Size(), ShouldEqual, 3)

			seen := d.SeenAndRecord(context.Background(), "sub-4")

			Convey("Then the oldest ID is evicted to admit the new one", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 3)

				// sub-1 was evicted, so it reads as unseen again.
				So(d.SeenAndRecord(context.Background(), "sub-1"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 3)
			})
		})

		Convey("When max size is zero or negative", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

			Convey("Then the deduper is unbounded", func() {
				const n = 1000
				for i := 0; i < n; i++ {
					So(d.SeenAndRecord(context.Background(), fmt.Sprintf("sub-%d", i)), ShouldBeFalse)
				}
				So(d.Size(), ShouldEqual, int64(n))
			})
		})
	})
}

func TestDeduperConcurrency(t *testing.T) {
	Convey("Given concurrent batch loads", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(10_000))
		const goroutines = 10
		const perGoroutine = 100

		Convey("When goroutines record disjoint IDs", func() {
			var wg sync.WaitGroup
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					for j := 0; j < perGoroutine; j++ {
						d.SeenAndRecord(context.Background(), fmt.Sprintf("sub-%d-%d", worker, j))
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every ID is recorded exactly once", func() {
				So(d.Size(), ShouldEqual, int64(goroutines*perGoroutine))
			})
		})

		Convey("When goroutines race on the same ID", func() {
			var wg sync.WaitGroup
			dupes := make(chan bool, goroutines)
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					dupes <- d.SeenAndRecord(context.Background(), "contested")
				}()
			}
			wg.Wait()
			close(dupes)

			Convey("Then exactly one caller wins the record", func() {
				fresh := 0
				for seen := range dupes {
					if !seen {
						fresh++
					}
				}
				So(fresh, ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
