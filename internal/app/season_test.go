package season_test

import (
	"context"
	"errors"
	"testing"

	season "github.com/hqin/oicoach/internal/app"
	"github.com/hqin/oicoach/internal/config"
	"github.com/hqin/oicoach/internal/domain/contest"
	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func testRoster() *roster.Roster {
	members := []*roster.Competitor{
		roster.NewCompetitor("ada", 85, 80, 85),
		roster.NewCompetitor("bob", 70, 65, 70),
		roster.NewCompetitor("cyn", 55, 60, 60),
		roster.NewCompetitor("dee", 40, 45, 50),
	}
	r, err := roster.New(members...)
	if err != nil {
		panic(err)
	}
	return r
}

func formalDef(stage types.Stage) contest.Definition {
	return contest.Definition{
		Stage:         stage,
		Type:          types.ContestFormal,
		ProblemCount:  4,
		MaxPerProblem: 100,
	}
}

func TestNewSession(t *testing.T) {
	Convey("Given session construction", t, func() {
		Convey("When the roster is nil", func() {
			_, err := season.New(nil)

			Convey("Then it should refuse", func() {
				So(err, ShouldEqual, season.ErrNilRoster)
			})
		})

		Convey("When only a roster is provided", func() {
			sess, err := season.New(testRoster())

			Convey("Then in-memory defaults should fill the gaps", func() {
				So(err, ShouldBeNil)
				So(sess, ShouldNotBeNil)
				So(sess.Week(), ShouldEqual, 0)
				So(sess.Half(), ShouldEqual, 0)
				So(sess.Funds(), ShouldEqual, 0)
				So(sess.Ended(), ShouldBeFalse)
			})
		})

		Convey("When a starting week is set", func() {
			sess, err := season.New(testRoster(), season.WithWeek(25))

			Convey("Then the session should open in the second half", func() {
				So(err, ShouldBeNil)
				So(sess.Week(), ShouldEqual, 25)
				So(sess.Half(), ShouldEqual, 1)
			})
		})
	})
}

func TestResolveContest(t *testing.T) {
	Convey("Given a first-half session with a seeded source", t, func() {
		ctx := context.Background()
		sess, err := season.New(testRoster(),
			season.WithSource(randx.New(randx.WithSeed(42))),
		)
		So(err, ShouldBeNil)

		Convey("When resolving the preliminary stage", func() {
			res, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))

			Convey("Then every active competitor should be scored and ranked", func() {
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
				So(res.Results, ShouldHaveLength, 4)
				for i, r := range res.Results {
					So(r.Rank, ShouldEqual, i+1)
					So(r.Participated, ShouldBeTrue)
					So(r.PerProblem, ShouldHaveLength, 4)
					if i > 0 {
						So(r.Total, ShouldBeLessThanOrEqualTo, res.Results[i-1].Total)
					}
				}
			})

			Convey("And the pass line should sit inside the regular band", func() {
				So(err, ShouldBeNil)
				So(res.PassLine, ShouldBeGreaterThanOrEqualTo, 120) // 0.30 * 400
				So(res.PassLine, ShouldBeLessThanOrEqualTo, 360)    // 0.90 * 400
			})

			Convey("And pass flags should agree with the line", func() {
				So(err, ShouldBeNil)
				for _, r := range res.Results {
					So(r.Passed, ShouldEqual, r.Total >= res.PassLine)
					So(r.Medal, ShouldEqual, types.MedalNone) // not the terminal stage
				}
			})

			Convey("And a career entry should be recorded", func() {
				So(err, ShouldBeNil)
				So(res.CareerEntry, ShouldNotBeNil)
				entries := sess.Career(ctx)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].ContestName, ShouldEqual, "preliminary")
				So(entries[0].Participants, ShouldEqual, 4)
				for _, o := range entries[0].Outcomes {
					So(o.Remark, ShouldNotBeEmpty)
				}
			})

			Convey("And passers should enter the qualification ledger", func() {
				So(err, ShouldBeNil)
				snap := sess.Qualification(0)
				passed := 0
				for _, r := range res.Results {
					if r.Passed {
						passed++
						So(snap["preliminary"], ShouldContain, r.Name)
					}
				}
				So(passed, ShouldBeGreaterThan, 0)
			})

			Convey("And funding should match the passing headcount", func() {
				So(err, ShouldBeNil)
				bounds := types.RewardRangeFor(types.StagePreliminary)
				passed := 0
				for _, r := range res.Results {
					if r.Passed {
						passed++
					}
				}
				So(res.FundingIssued, ShouldBeGreaterThanOrEqualTo, passed*bounds.Min)
				So(res.FundingIssued, ShouldBeLessThanOrEqualTo, passed*bounds.Max)
				So(sess.Funds(), ShouldEqual, res.FundingIssued)
			})
		})

		Convey("When the same occurrence is delivered twice", func() {
			first, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))
			So(err, ShouldBeNil)
			fundsAfterFirst := sess.Funds()

			second, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))

			Convey("Then the re-delivery should be a flagged no-op", func() {
				So(err, ShouldBeNil)
				So(second.Duplicate, ShouldBeTrue)
				So(second.Results, ShouldBeEmpty)
				So(second.FundingIssued, ShouldEqual, 0)
			})

			Convey("And no state should move", func() {
				So(err, ShouldBeNil)
				So(sess.Funds(), ShouldEqual, fundsAfterFirst)
				So(sess.Career(ctx), ShouldHaveLength, 1)
				So(first.Duplicate, ShouldBeFalse)
			})
		})

		Convey("When the same stage runs again in a later week", func() {
			_, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))
			So(err, ShouldBeNil)
			sess.AdvanceWeek()

			res, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))

			Convey("Then it should be a distinct occurrence", func() {
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
				So(sess.Career(ctx), ShouldHaveLength, 2)
			})
		})

		Convey("When a later stage runs before anyone qualified", func() {
			res, err := sess.ResolveContest(ctx, formalDef(types.StageQualifier))

			Convey("Then the first half records an empty stage without ending", func() {
				So(err, ShouldBeNil)
				So(res.EndingTriggered, ShouldBeFalse)
				So(res.Results, ShouldBeEmpty)
				So(res.CareerEntry, ShouldNotBeNil)
				So(sess.Ended(), ShouldBeFalse)
			})
		})

		Convey("When the definition is malformed", func() {
			_, err := sess.ResolveContest(ctx, contest.Definition{Stage: types.Stage(9)})

			Convey("Then it should report an invalid contest", func() {
				So(errors.Is(err, season.ErrUnknownContest), ShouldBeTrue)
			})
		})
	})
}

func TestChainFailureEnding(t *testing.T) {
	Convey("Given a second-half session", t, func() {
		ctx := context.Background()
		sess, err := season.New(testRoster(),
			season.WithSource(randx.New(randx.WithSeed(9))),
			season.WithWeek(22),
		)
		So(err, ShouldBeNil)
		So(sess.Half(), ShouldEqual, 1)

		Convey("When a stage runs with zero eligible competitors", func() {
			res, err := sess.ResolveContest(ctx, formalDef(types.StageQualifier))

			Convey("Then the chain-failure ending should trigger as a result, not an error", func() {
				So(err, ShouldBeNil)
				So(res.EndingTriggered, ShouldBeTrue)
				So(res.EndingReason, ShouldEqual, season.EndingChainFailure)
				So(sess.Ended(), ShouldBeTrue)
			})

			Convey("And every later resolution should fail terminally", func() {
				So(err, ShouldBeNil)
				_, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))
				So(err, ShouldEqual, season.ErrSeasonEnded)
			})
		})
	})

	Convey("Given a second-half session with an unreachable pass line", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.PassLineMultiplier = 10 // clamped floor times ten exceeds any total
		r := testRoster()
		c, err := r.Find("ada")
		So(err, ShouldBeNil)
		pressureBefore := c.Pressure

		sess, err := season.New(r,
			season.WithConfig(cfg),
			season.WithSource(randx.New(randx.WithSeed(17))),
			season.WithWeek(22),
		)
		So(err, ShouldBeNil)
		So(sess.Half(), ShouldEqual, 1)

		Convey("When the whole field falls short of the line", func() {
			res, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))

			Convey("Then the season should end on the spot", func() {
				So(err, ShouldBeNil)
				So(res.EndingTriggered, ShouldBeTrue)
				So(res.EndingReason, ShouldEqual, season.EndingChainFailure)
				So(sess.Ended(), ShouldBeTrue)
			})

			Convey("And no reward or ledger state should move", func() {
				So(err, ShouldBeNil)
				So(res.FundingIssued, ShouldEqual, 0)
				So(sess.Funds(), ShouldEqual, 0)
				So(res.CareerEntry, ShouldBeNil)
				So(sess.Career(ctx), ShouldBeEmpty)
				So(sess.Qualification(1), ShouldBeEmpty)
				So(c.Pressure, ShouldEqual, pressureBefore)
			})
		})
	})
}

func TestPracticeResolution(t *testing.T) {
	Convey("Given a session holding a practice set", t, func() {
		ctx := context.Background()
		sess, err := season.New(testRoster(),
			season.WithSource(randx.New(randx.WithSeed(13))),
		)
		So(err, ShouldBeNil)

		def := contest.Definition{
			Stage:         types.StagePreliminary,
			Type:          types.ContestPractice,
			ProblemCount:  3,
			MaxPerProblem: 100,
		}

		Convey("When resolving it", func() {
			res, err := sess.ResolveContest(ctx, def)

			Convey("Then everyone should be scored", func() {
				So(err, ShouldBeNil)
				So(res.Type, ShouldEqual, types.ContestPractice)
				So(res.Results, ShouldHaveLength, 4)
			})

			Convey("And nothing outside scoring should move", func() {
				So(err, ShouldBeNil)
				So(res.PassLine, ShouldEqual, 0)
				So(res.FundingIssued, ShouldEqual, 0)
				So(res.CareerEntry, ShouldBeNil)
				So(sess.Career(ctx), ShouldBeEmpty)
				So(sess.Qualification(0), ShouldBeEmpty)
			})

			Convey("And a second practice in the same week should not dedupe", func() {
				So(err, ShouldBeNil)
				again, err := sess.ResolveContest(ctx, def)
				So(err, ShouldBeNil)
				So(again.Duplicate, ShouldBeFalse)
				So(again.Results, ShouldHaveLength, 4)
			})
		})
	})
}

func TestApplyGains(t *testing.T) {
	Convey("Given a resolved practice session", t, func() {
		ctx := context.Background()
		cfg := config.New()
		sess, err := season.New(testRoster(),
			season.WithConfig(cfg),
			season.WithSource(randx.New(randx.WithSeed(4))),
		)
		So(err, ShouldBeNil)

		res, err := sess.ResolveContest(ctx, contest.Definition{
			Stage:         types.StagePreliminary,
			Type:          types.ContestPractice,
			ProblemCount:  3,
			MaxPerProblem: 100,
		})
		So(err, ShouldBeNil)

		Convey("When applying gains for one competitor", func() {
			out := res.Results[0]
			report, err := sess.ApplyGains(ctx, out.Name, res.Problems, out.PerProblem, types.ContestPractice)

			Convey("Then the report should respect the practice caps", func() {
				So(err, ShouldBeNil)
				So(report, ShouldNotBeNil)
				So(report.KnowledgeTotal(), ShouldBeLessThanOrEqualTo, cfg.KnowledgeGainCapPractice+0.5)
				So(report.Thinking, ShouldEqual, report.Coding)
				So(report.Thinking+report.Coding, ShouldBeLessThanOrEqualTo, cfg.AbilityGainCap+0.2)
			})

			Convey("And the competitor's counters should move by the report", func() {
				So(err, ShouldBeNil)
				for _, v := range sess.RosterView() {
					if v.Name != out.Name {
						continue
					}
					var knowledge float64
					for _, k := range v.Knowledge {
						knowledge += k
					}
					So(knowledge, ShouldAlmostEqual, report.KnowledgeTotal(), 1e-9)
				}
			})
		})

		Convey("When the score vector does not match the problems", func() {
			_, err := sess.ApplyGains(ctx, res.Results[0].Name, res.Problems, []int{10}, types.ContestPractice)

			Convey("Then it should report a mismatch", func() {
				So(err, ShouldEqual, season.ErrScoreMismatch)
			})
		})

		Convey("When the name is unknown", func() {
			out := res.Results[0]
			_, err := sess.ApplyGains(ctx, "ghost", res.Problems, out.PerProblem, types.ContestPractice)

			Convey("Then the roster sentinel should surface", func() {
				So(err, ShouldEqual, roster.ErrUnknownCompetitor)
			})
		})
	})
}

func TestWeeklyDecay(t *testing.T) {
	Convey("Given a session with accumulated knowledge", t, func() {
		cfg := config.New()
		cfg.KnowledgeDecayFactor = 0.9
		r := testRoster()
		c, err := r.Find("ada")
		So(err, ShouldBeNil)
		c.AddKnowledge(types.TagDP, 10)

		sess, err := season.New(r, season.WithConfig(cfg))
		So(err, ShouldBeNil)

		Convey("When the weekly decay runs", func() {
			sess.ApplyWeeklyDecay()

			Convey("Then every counter should shrink by the factor", func() {
				So(c.Knowledge[types.TagDP], ShouldAlmostEqual, 9, 1e-9)
			})
		})

		Convey("When a competitor is inactive", func() {
			c.Deactivate()
			sess.ApplyWeeklyDecay()

			Convey("Then their counters should be left alone", func() {
				So(c.Knowledge[types.TagDP], ShouldEqual, 10)
			})
		})
	})
}

func TestSessionViews(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		ctx := context.Background()
		sess, err := season.New(testRoster(),
			season.WithSource(randx.New(randx.WithSeed(8))),
		)
		So(err, ShouldBeNil)

		Convey("When advancing weeks", func() {
			So(sess.AdvanceWeek(), ShouldEqual, 1)
			So(sess.AdvanceWeek(), ShouldEqual, 2)
			So(sess.Week(), ShouldEqual, 2)
		})

		Convey("When reading the roster view", func() {
			views := sess.RosterView()

			Convey("Then it should mirror every member", func() {
				So(views, ShouldHaveLength, 4)
				So(views[0].Name, ShouldEqual, "ada")
				So(views[0].Active, ShouldBeTrue)
				So(views[0].Knowledge, ShouldHaveLength, types.TagCount)
			})
		})

		Convey("When reading session stats", func() {
			_, err := sess.ResolveContest(ctx, formalDef(types.StagePreliminary))
			So(err, ShouldBeNil)
			stats := sess.GetStats()

			Convey("Then the counters should reflect the session", func() {
				So(stats["week"], ShouldEqual, 0)
				So(stats["half"], ShouldEqual, 0)
				So(stats["ended"], ShouldEqual, false)
				So(stats["rosterSize"], ShouldEqual, 4)
				So(stats["activeMembers"], ShouldEqual, 4)
				So(stats["careerEntries"], ShouldEqual, 1)
			})
		})
	})
}
