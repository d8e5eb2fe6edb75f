package qualify_test

import (
	"testing"

	qualify "github.com/hqin/oicoach/internal/domain/qualify"
	roster "github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func testRoster() *roster.Roster {
	r, _ := roster.New(
		roster.NewCompetitor("ada", 60, 60, 60),
		roster.NewCompetitor("bob", 50, 50, 50),
		roster.NewCompetitor("cyn", 40, 40, 40),
	)
	return r
}

func TestHalfOfWeek(t *testing.T) {
	Convey("Given a 40-week season", t, func() {
		Convey("When mapping weeks to brackets", func() {
			So(qualify.HalfOfWeek(0, 40), ShouldEqual, 0)
			So(qualify.HalfOfWeek(19, 40), ShouldEqual, 0)
			So(qualify.HalfOfWeek(20, 40), ShouldEqual, 1)
			So(qualify.HalfOfWeek(39, 40), ShouldEqual, 1)
		})

		Convey("When the season is degenerate", func() {
			So(qualify.HalfOfWeek(5, 1), ShouldEqual, 0)
			So(qualify.HalfOfWeek(5, 0), ShouldEqual, 0)
		})
	})
}

func TestLedger(t *testing.T) {
	Convey("Given an empty ledger", t, func() {
		l := qualify.NewLedger()

		Convey("When recording a pass", func() {
			l.Record(0, types.StagePreliminary, "ada")

			Convey("Then the name should be qualified in that half only", func() {
				So(l.IsQualified(0, types.StagePreliminary, "ada"), ShouldBeTrue)
				So(l.IsQualified(1, types.StagePreliminary, "ada"), ShouldBeFalse)
			})

			Convey("And other stages should be untouched", func() {
				So(l.IsQualified(0, types.StageQualifier, "ada"), ShouldBeFalse)
			})
		})

		Convey("When recording the same pass twice", func() {
			l.Record(0, types.StagePreliminary, "ada")
			l.Record(0, types.StagePreliminary, "ada")

			Convey("Then the set should hold one entry", func() {
				So(l.Qualified(0, types.StagePreliminary), ShouldResemble, []string{"ada"})
			})
		})

		Convey("When listing qualified names", func() {
			l.Record(0, types.StagePreliminary, "cyn")
			l.Record(0, types.StagePreliminary, "ada")

			Convey("Then the output should be sorted", func() {
				So(l.Qualified(0, types.StagePreliminary), ShouldResemble, []string{"ada", "cyn"})
			})
		})

		Convey("When using an out-of-range half", func() {
			l.Record(-1, types.StagePreliminary, "ada")
			l.Record(2, types.StagePreliminary, "ada")

			Convey("Then nothing should be recorded", func() {
				So(l.IsQualified(-1, types.StagePreliminary, "ada"), ShouldBeFalse)
				So(l.Qualified(2, types.StagePreliminary), ShouldBeNil)
			})
		})
	})
}

func TestEligible(t *testing.T) {
	Convey("Given a ledger and a three-person roster", t, func() {
		l := qualify.NewLedger()
		r := testRoster()

		Convey("When checking the first link", func() {
			eligible := l.Eligible(0, types.StagePreliminary, r)

			Convey("Then every active member should be allowed", func() {
				So(eligible, ShouldHaveLength, 3)
			})
		})

		Convey("When checking a later link with partial passes", func() {
			l.Record(0, types.StagePreliminary, "ada")
			l.Record(0, types.StagePreliminary, "bob")
			eligible := l.Eligible(0, types.StageQualifier, r)

			Convey("Then only those who passed the previous link should qualify", func() {
				So(eligible, ShouldHaveLength, 2)
				So(eligible[0].Name, ShouldEqual, "ada")
				So(eligible[1].Name, ShouldEqual, "bob")
			})

			Convey("And the other half-season's bracket should be independent", func() {
				So(l.Eligible(1, types.StageQualifier, r), ShouldBeEmpty)
			})
		})

		Convey("When a qualified competitor has been deactivated", func() {
			l.Record(0, types.StagePreliminary, "ada")
			c, err := r.Find("ada")
			So(err, ShouldBeNil)
			c.Deactivate()

			Convey("Then they should no longer be eligible", func() {
				So(l.Eligible(0, types.StageQualifier, r), ShouldBeEmpty)
			})
		})

		Convey("When nobody passed the previous link", func() {
			eligible := l.Eligible(0, types.StageNational, r)

			Convey("Then the eligible set should be empty", func() {
				So(eligible, ShouldBeEmpty)
			})
		})
	})
}

func TestResetAndSnapshot(t *testing.T) {
	Convey("Given a populated ledger", t, func() {
		l := qualify.NewLedger()
		l.Record(0, types.StagePreliminary, "ada")
		l.Record(0, types.StageQualifier, "ada")
		l.Record(1, types.StagePreliminary, "bob")

		Convey("When taking a snapshot of the first half", func() {
			snap := l.Snapshot(0)

			Convey("Then only populated stages should appear", func() {
				So(snap, ShouldHaveLength, 2)
				So(snap["preliminary"], ShouldResemble, []string{"ada"})
				So(snap["qualifier"], ShouldResemble, []string{"ada"})
			})
		})

		Convey("When resetting one half", func() {
			l.Reset(0)

			Convey("Then that half should be empty and the other untouched", func() {
				So(l.IsQualified(0, types.StagePreliminary, "ada"), ShouldBeFalse)
				So(l.IsQualified(1, types.StagePreliminary, "bob"), ShouldBeTrue)
			})
		})
	})
}
