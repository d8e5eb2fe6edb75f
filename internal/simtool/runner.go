// Package simtool runs headless Monte-Carlo seasons for balance tuning.
// Each simulated season drives the real session through a fixed weekly
// schedule: practice and gain application between stages, the five-stage
// chain spread evenly across each half-season.
package simtool

import (
	"context"

	season "github.com/hqin/oicoach/internal/app"
	"github.com/hqin/oicoach/internal/config"
	"github.com/hqin/oicoach/internal/domain/contest"
	"github.com/hqin/oicoach/internal/domain/qualify"
	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/internal/domain/types"
)

// Schedule constants for the simulated weekly loop.
const (
	problemsPerContest  = 4
	maxPerProblem       = 100
	practiceProblemSet  = 3
	practiceEveryNWeeks = 2
)

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithSeasons sets the number of seasons to simulate.
func WithSeasons(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.seasons = n
		}
	}
}

// WithSeed fixes the base seed; season i runs on seed+i.
func WithSeed(seed int64) Option {
	return func(r *Runner) {
		r.seed = seed
		r.seeded = true
	}
}

// WithConfig sets the balance configuration under test.
func WithConfig(cfg *config.Config) Option {
	return func(r *Runner) {
		if cfg != nil {
			r.cfg = cfg
		}
	}
}

// Runner simulates complete seasons against one configuration.
type Runner struct {
	cfg     *config.Config
	seasons int
	seed    int64
	seeded  bool
}

// NewRunner creates a runner with defaults: 100 seasons, clock seeding.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		cfg:     config.New(),
		seasons: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summary aggregates outcomes across all simulated seasons.
type Summary struct {
	Seasons       int
	ChainFailures int
	Medals        map[types.Medal]int
	StageHeld     map[types.Stage]int
	StagePassed   map[types.Stage]int
	TotalFunds    int
}

// AvgFunds is the mean end-of-season funding balance.
func (s *Summary) AvgFunds() float64 {
	if s.Seasons == 0 {
		return 0
	}
	return float64(s.TotalFunds) / float64(s.Seasons)
}

// FailureRate is the share of seasons ending in chain failure.
func (s *Summary) FailureRate() float64 {
	if s.Seasons == 0 {
		return 0
	}
	return float64(s.ChainFailures) / float64(s.Seasons)
}

// Run simulates every season and aggregates the outcomes.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		Seasons:     r.seasons,
		Medals:      make(map[types.Medal]int),
		StageHeld:   make(map[types.Stage]int),
		StagePassed: make(map[types.Stage]int),
	}
	for i := 0; i < r.seasons; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := randx.New()
		if r.seeded {
			src = randx.New(randx.WithSeed(r.seed + int64(i)))
		}
		if err := r.runSeason(ctx, src, summary); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// runSeason drives one full season week by week.
func (r *Runner) runSeason(ctx context.Context, src *randx.Source, summary *Summary) error {
	ros, err := roster.Generate(src, r.cfg.RosterSize)
	if err != nil {
		return err
	}
	sess, err := season.New(ros,
		season.WithConfig(r.cfg),
		season.WithSource(src),
	)
	if err != nil {
		return err
	}

	schedule := stageSchedule(r.cfg.SeasonWeeks)
	for week := 0; week < r.cfg.SeasonWeeks; week++ {
		sess.ApplyWeeklyDecay()

		stage, hasContest := schedule[week]
		if !hasContest {
			if week%practiceEveryNWeeks == 0 {
				if err := r.runPractice(ctx, sess); err != nil {
					return err
				}
			}
			sess.AdvanceWeek()
			continue
		}

		res, err := sess.ResolveContest(ctx, contest.Definition{
			Stage:         stage,
			Type:          types.ContestFormal,
			ProblemCount:  problemsPerContest,
			MaxPerProblem: maxPerProblem,
		})
		if err != nil {
			return err
		}
		summary.StageHeld[stage]++
		if res.EndingTriggered {
			summary.ChainFailures++
			return nil
		}
		for _, out := range res.Results {
			if out.Passed {
				summary.StagePassed[stage]++
			}
			if stage.Terminal() && out.Medal != types.MedalNone {
				summary.Medals[out.Medal]++
			}
			if _, err := sess.ApplyGains(ctx, out.Name, res.Problems, out.PerProblem, types.ContestFormal); err != nil {
				return err
			}
		}
		sess.AdvanceWeek()
	}
	summary.TotalFunds += sess.Funds()
	return nil
}

// runPractice holds a practice session and feeds the results into gains.
func (r *Runner) runPractice(ctx context.Context, sess *season.Session) error {
	res, err := sess.ResolveContest(ctx, contest.Definition{
		Stage:         types.StagePreliminary,
		Type:          types.ContestPractice,
		ProblemCount:  practiceProblemSet,
		MaxPerProblem: maxPerProblem,
	})
	if err != nil {
		return err
	}
	for _, out := range res.Results {
		if _, err := sess.ApplyGains(ctx, out.Name, res.Problems, out.PerProblem, types.ContestPractice); err != nil {
			return err
		}
	}
	return nil
}

// stageSchedule spreads the five stages evenly across each half-season.
func stageSchedule(seasonWeeks int) map[int]types.Stage {
	schedule := make(map[int]types.Stage)
	halfLen := seasonWeeks / qualify.HalfCount
	stages := types.Stages()
	for half := 0; half < qualify.HalfCount; half++ {
		for i, stage := range stages {
			week := half*halfLen + (i+1)*halfLen/(len(stages)+1)
			schedule[week] = stage
		}
	}
	return schedule
}
