package season

import (
	"context"
	"math"

	"github.com/hqin/oicoach/internal/domain/allocate"
	"github.com/hqin/oicoach/internal/domain/contest"
	"github.com/hqin/oicoach/internal/domain/types"
	"github.com/hqin/oicoach/pkg/logger"
)

// GainReport is the delta set ApplyGains produced for one competitor.
type GainReport struct {
	Knowledge map[types.Tag]float64
	Thinking  float64
	Coding    float64
}

// KnowledgeTotal sums the per-tag knowledge gains.
func (g GainReport) KnowledgeTotal() float64 {
	var sum float64
	for _, v := range g.Knowledge {
		sum += v
	}
	return sum
}

// ApplyGains translates one competitor's contest performance into skill and
// knowledge increases. The knowledge pool is a discrete currency split
// across problems with exact-total correction, then divided evenly across
// each problem's tags; the ability pool is continuous and credited half to
// thinking, half to coding.
func (s *Session) ApplyGains(ctx context.Context, name string, problems []contest.Problem, perProblem []int, kind types.ContestType) (*GainReport, error) {
	if len(problems) != len(perProblem) {
		return nil, ErrScoreMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.roster.Find(name)
	if err != nil {
		return nil, err
	}

	pool := make([]allocate.Problem, len(problems))
	for i, p := range problems {
		pool[i] = allocate.Problem{
			ActualScore: perProblem[i],
			MaxScore:    p.MaxScore,
			Difficulty:  p.Difficulty,
		}
	}

	knowledgeCap := s.cfg.KnowledgeGainCapFormal
	if kind == types.ContestPractice {
		knowledgeCap = s.cfg.KnowledgeGainCapPractice
	}
	kGains := allocate.Distribute(knowledgeCap, pool, allocate.Discrete)
	aGains := allocate.Distribute(s.cfg.AbilityGainCap, pool, allocate.Continuous)

	report := &GainReport{Knowledge: make(map[types.Tag]float64)}
	for i, p := range problems {
		if kGains[i] > 0 && len(p.Tags) > 0 {
			share := roundTenth(kGains[i] / float64(len(p.Tags)))
			for _, t := range p.Tags {
				report.Knowledge[t] += share
			}
		}
	}
	var abilityTotal float64
	for _, g := range aGains {
		abilityTotal += g
	}
	report.Thinking = roundTenth(abilityTotal / 2)
	report.Coding = roundTenth(abilityTotal / 2)

	for t, v := range report.Knowledge {
		c.AddKnowledge(t, v)
	}
	c.AddThinking(report.Thinking)
	c.AddCoding(report.Coding)

	s.logInfo(ctx, "gains applied",
		logger.String("competitor", name),
		logger.Float64("knowledge", report.KnowledgeTotal()),
		logger.Float64("ability", abilityTotal),
	)
	return report, nil
}

// ApplyWeeklyDecay runs the multiplicative forgetting step over every
// active competitor, using the configured factor. The caller decides the
// cadence; this only provides the correct primitive.
func (s *Session) ApplyWeeklyDecay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.roster.ActiveMembers() {
		c.DecayKnowledge(s.cfg.KnowledgeDecayFactor)
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
