package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/hqin/oicoach/internal/domain/dedupe"
	"github.com/hqin/oicoach/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryGuard(t *testing.T) {
	Convey("Given a new in-memory guard", t, func() {
		g := dedupe.NewInMemoryGuard()

		Convey("Then it should start empty", func() {
			So(g.Size(), ShouldEqual, 0)
		})

		Convey("When claiming a fresh key", func() {
			claimed := g.Claim(context.Background(), "resolve|0|qualifier|5")

			Convey("Then the claim should succeed and be recorded", func() {
				So(claimed, ShouldBeTrue)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When claiming the same key twice", func() {
			g.Claim(context.Background(), "resolve|0|qualifier|5")
			claimed := g.Claim(context.Background(), "resolve|0|qualifier|5")

			Convey("Then the second claim should fail", func() {
				So(claimed, ShouldBeFalse)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When releasing a claimed key", func() {
			g.Claim(context.Background(), "resolve|0|qualifier|5")
			g.Release(context.Background(), "resolve|0|qualifier|5")

			Convey("Then the occurrence should be claimable again", func() {
				So(g.Size(), ShouldEqual, 0)
				So(g.Claim(context.Background(), "resolve|0|qualifier|5"), ShouldBeTrue)
			})
		})

		Convey("When releasing a key that was never claimed", func() {
			Convey("Then nothing should happen", func() {
				So(func() { g.Release(context.Background(), "ghost") }, ShouldNotPanic)
				So(g.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestGuardConcurrency(t *testing.T) {
	Convey("Given many goroutines racing for one key", t, func() {
		g := dedupe.NewInMemoryGuard()
		const racers = 50

		Convey("When they all claim simultaneously", func() {
			var wg sync.WaitGroup
			wins := make(chan bool, racers)
			for i := 0; i < racers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					wins <- g.Claim(context.Background(), "resolve|1|final|30")
				}()
			}
			wg.Wait()
			close(wins)

			Convey("Then exactly one should win", func() {
				won := 0
				for w := range wins {
					if w {
						won++
					}
				}
				So(won, ShouldEqual, 1)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When they claim distinct keys", func() {
			var wg sync.WaitGroup
			for i := 0; i < racers; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					g.Claim(context.Background(), fmt.Sprintf("resolve|0|qualifier|%d", n))
				}(i)
			}
			wg.Wait()

			Convey("Then every claim should land", func() {
				So(g.Size(), ShouldEqual, racers)
			})
		})
	})
}

func TestOccurrenceKeys(t *testing.T) {
	Convey("Given the composite key builders", t, func() {
		Convey("When building resolution and funding keys", func() {
			rk := dedupe.ResolutionKey(0, types.StageRegional, 12)
			fk := dedupe.FundingKey(0, types.StageRegional, 12)

			Convey("Then the two concerns should never collide", func() {
				So(rk, ShouldEqual, "resolve|0|regional|12")
				So(fk, ShouldEqual, "funding|0|regional|12")
				So(rk, ShouldNotEqual, fk)
			})
		})

		Convey("When any component differs", func() {
			base := dedupe.ResolutionKey(0, types.StageRegional, 12)

			Convey("Then the key should differ too", func() {
				So(dedupe.ResolutionKey(1, types.StageRegional, 12), ShouldNotEqual, base)
				So(dedupe.ResolutionKey(0, types.StageNational, 12), ShouldNotEqual, base)
				So(dedupe.ResolutionKey(0, types.StageRegional, 13), ShouldNotEqual, base)
			})
		})
	})
}
