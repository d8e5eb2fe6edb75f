// Package season provides the session object every core operation runs
// against: roster, qualification ledger, career store, week counter and
// tuning configuration. Nothing in the core mutates package-level state;
// the surrounding UI holds exactly one Session per save.
package season

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hqin/oicoach/internal/adapters/repository"
	"github.com/hqin/oicoach/internal/config"
	"github.com/hqin/oicoach/internal/domain/career"
	"github.com/hqin/oicoach/internal/domain/contest"
	"github.com/hqin/oicoach/internal/domain/dedupe"
	"github.com/hqin/oicoach/internal/domain/passline"
	"github.com/hqin/oicoach/internal/domain/qualify"
	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/reward"
	"github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/internal/domain/scoring"
	"github.com/hqin/oicoach/internal/domain/types"
	"github.com/hqin/oicoach/pkg/logger"
	"github.com/hqin/oicoach/pkg/metrics"
)

// EndingChainFailure is the reason reported when the second half-season's
// chain breaks with zero eligible or zero passing competitors.
const EndingChainFailure = "chain-failure"

// Session is the explicit game/session context. All contest resolution is
// serialized on its mutex; no two contests for the same roster can be
// in flight at once.
type Session struct {
	mu sync.Mutex

	cfg    *config.Config
	roster *roster.Roster
	ledger *qualify.Ledger
	store  repository.Store
	guard  dedupe.Guard
	model  *scoring.Model
	src    *randx.Source

	week  int
	funds int
	ended bool

	log logger.Logger
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithConfig sets the tuning configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithSource injects the random source, usually seeded in tests.
func WithSource(src *randx.Source) Option {
	return func(s *Session) {
		if src != nil {
			s.src = src
		}
	}
}

// WithStore sets the career ledger store.
func WithStore(store repository.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithGuard sets the idempotency guard.
func WithGuard(guard dedupe.Guard) Option {
	return func(s *Session) {
		if guard != nil {
			s.guard = guard
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(log logger.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithWeek sets the starting week counter.
func WithWeek(week int) Option {
	return func(s *Session) {
		if week >= 0 {
			s.week = week
		}
	}
}

// New constructs a session for one roster. The roster is required; missing
// collaborators fall back to in-memory defaults.
func New(r *roster.Roster, opts ...Option) (*Session, error) {
	if r == nil {
		return nil, ErrNilRoster
	}
	s := &Session{
		cfg:    config.New(),
		roster: r,
		ledger: qualify.NewLedger(),
		store:  repository.NewMemoryStore(),
		guard:  dedupe.NewInMemoryGuard(),
		src:    randx.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.model = scoring.NewModel(
		scoring.WithSource(s.src),
		scoring.WithWeights(s.cfg.AbilityWeight, s.cfg.KnowledgeWeight),
		scoring.WithPressurePenalty(s.cfg.PressurePenalty),
		scoring.WithMentalNoiseSigma(s.cfg.MentalNoiseSigma),
		scoring.WithLogisticScale(s.cfg.LogisticScale),
		scoring.WithKnowledgeMultipliers(s.cfg.KnowledgeMultiplierFormal, s.cfg.KnowledgeMultiplierPractice),
	)
	return s, nil
}

// CompetitorResult is one competitor's outcome within a resolution,
// ordered by rank in Resolution.Results.
type CompetitorResult struct {
	Rank          int
	Name          string
	Total         int
	PerProblem    []int
	Passed        bool
	Medal         types.Medal
	PressureDelta float64
	Remark        string
	Participated  bool
}

// Resolution is the result object handed back to the UI collaborator for
// one contest occurrence.
type Resolution struct {
	ID       string
	Stage    types.Stage
	Type     types.ContestType
	Week     int
	Half     int
	Problems []contest.Problem

	PassLine      int
	Results       []CompetitorResult
	FundingIssued int
	CareerEntry   *career.Entry

	EndingTriggered bool
	EndingReason    string
	Duplicate       bool
}

// ResolveContest runs one contest occurrence end to end: eligibility,
// scoring, pass line, rewards, qualification and the career record.
// Re-delivery of the same occurrence is a no-op with Duplicate set and
// zero funding.
func (s *Session) ResolveContest(ctx context.Context, def contest.Definition) (*Resolution, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownContest, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil, ErrSeasonEnded
	}

	half := qualify.HalfOfWeek(s.week, s.cfg.SeasonWeeks)
	res := &Resolution{
		ID:    uuid.NewString(),
		Stage: def.Stage,
		Type:  def.Type,
		Week:  s.week,
		Half:  half,
	}

	if def.Type == types.ContestPractice {
		return s.resolvePractice(ctx, def, res)
	}

	key := dedupe.ResolutionKey(half, def.Stage, s.week)
	if !s.guard.Claim(ctx, key) {
		metrics.RecordDuplicateResolution()
		s.logInfo(ctx, "duplicate contest delivery skipped",
			logger.String("stage", def.Stage.String()),
			logger.Int("week", s.week),
		)
		res.Duplicate = true
		return res, nil
	}

	eligible := s.ledger.Eligible(half, def.Stage, s.roster)
	if len(eligible) == 0 {
		// The chain broke before anyone could sit down. Fatal only in the
		// second half-season; otherwise the stage is recorded empty.
		if half == 1 {
			return s.triggerEnding(ctx, res), nil
		}
		entry := s.appendCareer(ctx, res, nil, 0)
		res.CareerEntry = entry
		metrics.RecordContestResolved(def.Stage.String(), def.Type.String())
		return res, nil
	}

	problems, err := contest.GenerateProblems(s.src, def)
	if err != nil {
		s.guard.Release(ctx, key)
		return nil, err
	}
	res.Problems = problems

	results := s.scoreAll(eligible, problems, def)
	rankResults(results)

	totalMax := def.TotalMax()
	sorted := make([]int, len(results))
	for i, r := range results {
		sorted[i] = r.Total
	}
	rate := passline.PassRateFor(s.cfg.Tier(), def.Stage, s.cfg.BaseRates(), s.cfg.PassRateStageBonus)
	line := passline.Line(sorted, rate, totalMax, def.Stage, s.cfg.PassLineMultiplier)
	res.PassLine = line

	passed := 0
	for i := range results {
		results[i].Passed = results[i].Total >= line
		if results[i].Passed {
			passed++
		}
		if def.Stage.Terminal() {
			results[i].Medal = passline.MedalFor(results[i].Total, line)
		}
	}

	// Evaluated before any reward or ledger processing: a second-half
	// stage that nobody clears ends the season on the spot.
	if half == 1 && passed == 0 {
		return s.triggerEnding(ctx, res), nil
	}

	outcomes := make([]reward.Outcome, len(results))
	for i, r := range results {
		outcomes[i] = reward.Outcome{
			Name:         r.Name,
			Score:        r.Total,
			Passed:       r.Passed,
			Participated: r.Participated,
		}
	}
	deltas := reward.ComputeDeltas(outcomes, totalMax, s.cfg.PressureMultiplier)
	reward.Apply(s.roster, deltas)
	for _, d := range deltas {
		for i := range results {
			if results[i].Name == d.Name {
				results[i].PressureDelta = d.Pressure
			}
		}
	}

	for _, r := range results {
		if r.Passed {
			s.ledger.Record(half, def.Stage, r.Name)
		}
	}

	fundingKey := dedupe.FundingKey(half, def.Stage, s.week)
	if s.guard.Claim(ctx, fundingKey) {
		res.FundingIssued = reward.Funding(s.src, def.Stage, outcomes)
		s.funds += res.FundingIssued
		metrics.RecordFundingIssued(res.FundingIssued)
	}

	res.Results = results
	res.CareerEntry = s.appendCareer(ctx, res, results, passed)

	metrics.RecordContestResolved(def.Stage.String(), def.Type.String())
	s.logInfo(ctx, "contest resolved",
		logger.String("stage", def.Stage.String()),
		logger.Int("week", s.week),
		logger.Int("half", half),
		logger.Int("pass_line", line),
		logger.Int("passed", passed),
		logger.Int("participants", len(results)),
		logger.Int("funding", res.FundingIssued),
	)
	return res, nil
}

// resolvePractice scores every active competitor with the practice
// knowledge multiplier. Practice never touches the qualification chain,
// rewards or the career ledger; its results exist to feed ApplyGains.
func (s *Session) resolvePractice(_ context.Context, def contest.Definition, res *Resolution) (*Resolution, error) {
	problems, err := contest.GenerateProblems(s.src, def)
	if err != nil {
		return nil, err
	}
	res.Problems = problems
	results := s.scoreAll(s.roster.ActiveMembers(), problems, def)
	rankResults(results)
	res.Results = results
	metrics.RecordContestResolved(def.Stage.String(), def.Type.String())
	return res, nil
}

// scoreAll draws every competitor's score on every problem, independently
// per problem per competitor.
func (s *Session) scoreAll(competitors []*roster.Competitor, problems []contest.Problem, def contest.Definition) []CompetitorResult {
	totalMax := def.TotalMax()
	results := make([]CompetitorResult, 0, len(competitors))
	for _, c := range competitors {
		perProblem := make([]int, len(problems))
		total := 0
		for i, p := range problems {
			drawn := s.model.Score(scoring.Input{
				AbilityMean:       c.AbilityMean(),
				KnowledgeMean:     c.KnowledgeMean(),
				Mental:            c.Mental,
				Pressure:          c.Pressure,
				Comfort:           c.Comfort,
				KnowledgeValue:    c.KnowledgeSum(p.Tags),
				ProblemDifficulty: p.Difficulty,
				MaxScore:          p.MaxScore,
				Kind:              def.Type,
			})
			perProblem[i] = drawn.Score
			total += drawn.Score
		}
		metrics.RecordCompetitorScored()
		if totalMax > 0 {
			metrics.RecordScoreRatio(float64(total) / float64(totalMax))
		}
		results = append(results, CompetitorResult{
			Name:         c.Name,
			Total:        total,
			PerProblem:   perProblem,
			Participated: true,
		})
	}
	return results
}

// rankResults orders by total descending, stable on input order, and
// stamps ranks starting at 1.
func rankResults(results []CompetitorResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// triggerEnding flips the terminal season state. The ending is a distinct
// successful outcome, not an error; subsequent resolutions fail with
// ErrSeasonEnded.
func (s *Session) triggerEnding(ctx context.Context, res *Resolution) *Resolution {
	s.ended = true
	res.EndingTriggered = true
	res.EndingReason = EndingChainFailure
	metrics.RecordEndingTriggered()
	s.logInfo(ctx, "season ended",
		logger.String("reason", EndingChainFailure),
		logger.String("stage", res.Stage.String()),
		logger.Int("week", res.Week),
	)
	return res
}

// appendCareer writes the occurrence to the career ledger.
func (s *Session) appendCareer(ctx context.Context, res *Resolution, results []CompetitorResult, passed int) *career.Entry {
	minScore := -1
	for _, r := range results {
		if minScore == -1 || r.Total < minScore {
			minScore = r.Total
		}
	}
	totalMax := 0
	for _, p := range res.Problems {
		totalMax += p.MaxScore
	}

	entry := career.NewEntry(res.Week, res.Half, res.Stage.String())
	entry.Passed = passed
	entry.Participants = len(results)
	for _, r := range results {
		entry.Outcomes = append(entry.Outcomes, career.Outcome{
			Rank:         r.Rank,
			Name:         r.Name,
			Score:        r.Total,
			PerProblem:   r.PerProblem,
			Passed:       r.Passed,
			Medal:        r.Medal,
			Remark:       career.RemarkFor(r.Rank, r.Total, r.Passed, r.Participated, totalMax, minScore),
			Participated: r.Participated,
		})
	}
	if err := s.store.Append(ctx, entry); err != nil {
		s.logWarn(ctx, "career append failed", logger.Error(err))
		return nil
	}
	metrics.UpdateCareerEntries(s.store.Count(ctx))
	return &entry
}

func (s *Session) logInfo(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Info(ctx, msg, fields...)
	}
}

func (s *Session) logWarn(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Warn(ctx, msg, fields...)
	}
}
