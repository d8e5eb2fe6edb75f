// Package scoring converts a competitor's derived metrics and a problem's
// difficulty into a stochastic score. Draws are independent per problem per
// competitor; nothing is shared across calls.
package scoring

import (
	"math"

	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/types"
)

// Default model parameters. Ability dominates knowledge in the composite;
// practice sessions convert knowledge into score slightly faster than
// formal contests, which is deliberate tuning.
const (
	defaultAbilityWeight               = 0.7
	defaultKnowledgeWeight             = 0.3
	defaultPressurePenalty             = 30.0 // max mental-index loss at full pressure in zero comfort
	defaultMentalNoiseSigma            = 8.0
	defaultLogisticScale               = 12.0
	defaultKnowledgeMultiplierFormal   = 0.05
	defaultKnowledgeMultiplierPractice = 0.07
	defaultNoiseFloor                  = 0.04 // score variance never drops below this
	defaultNoiseSlope                  = 0.20 // extra variance at mental index zero

	scoreGranularity = 10 // scores land on multiples of 10, like real judges
)

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithSource injects the random source, usually seeded in tests.
func WithSource(src *randx.Source) Option {
	return func(m *Model) {
		if src != nil {
			m.src = src
		}
	}
}

// WithWeights sets the ability/knowledge composite weights.
func WithWeights(ability, knowledge float64) Option {
	return func(m *Model) {
		if ability > 0 && knowledge > 0 {
			m.abilityWeight = ability
			m.knowledgeWeight = knowledge
		}
	}
}

// WithPressurePenalty sets the maximum mental-index loss from pressure.
func WithPressurePenalty(k float64) Option {
	return func(m *Model) {
		if k >= 0 {
			m.pressurePenalty = k
		}
	}
}

// WithMentalNoiseSigma sets the sigma of the mental-index noise term.
func WithMentalNoiseSigma(sigma float64) Option {
	return func(m *Model) {
		if sigma >= 0 {
			m.mentalNoiseSigma = sigma
		}
	}
}

// WithLogisticScale sets the spread of the ability-vs-difficulty logistic.
func WithLogisticScale(scale float64) Option {
	return func(m *Model) {
		if scale > 0 {
			m.logisticScale = scale
		}
	}
}

// WithKnowledgeMultipliers sets the formal and practice knowledge bonuses.
func WithKnowledgeMultipliers(formal, practice float64) Option {
	return func(m *Model) {
		if formal >= 0 && practice >= 0 {
			m.knowledgeMultiplierFormal = formal
			m.knowledgeMultiplierPractice = practice
		}
	}
}

// Input carries the competitor-derived metrics and problem parameters for
// one scoring draw.
type Input struct {
	AbilityMean   float64 // mean of thinking/coding/mental
	KnowledgeMean float64 // mean of the five knowledge counters
	Mental        float64
	Pressure      float64
	Comfort       float64

	KnowledgeValue    float64 // competitor's knowledge summed over the problem's tags
	ProblemDifficulty float64
	MaxScore          int
	Kind              types.ContestType
}

// Result is the outcome of one draw.
type Result struct {
	Score       int     // final score, multiple of 10 in [0, MaxScore]
	Ratio       float64 // final ratio before score quantization
	MentalIndex float64 // effective mental index used for stability
}

// Model implements the stochastic performance model.
type Model struct {
	abilityWeight   float64
	knowledgeWeight float64

	pressurePenalty  float64
	mentalNoiseSigma float64
	logisticScale    float64

	knowledgeMultiplierFormal   float64
	knowledgeMultiplierPractice float64

	noiseFloor float64
	noiseSlope float64

	src *randx.Source
}

// NewModel creates a scoring model with default parameters.
func NewModel(opts ...Option) *Model {
	m := &Model{
		abilityWeight:               defaultAbilityWeight,
		knowledgeWeight:             defaultKnowledgeWeight,
		pressurePenalty:             defaultPressurePenalty,
		mentalNoiseSigma:            defaultMentalNoiseSigma,
		logisticScale:               defaultLogisticScale,
		knowledgeMultiplierFormal:   defaultKnowledgeMultiplierFormal,
		knowledgeMultiplierPractice: defaultKnowledgeMultiplierPractice,
		noiseFloor:                  defaultNoiseFloor,
		noiseSlope:                  defaultNoiseSlope,
		src:                         randx.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score runs one draw of the performance model.
func (m *Model) Score(in Input) Result {
	weightSum := m.abilityWeight + m.knowledgeWeight
	composite := (m.abilityWeight*in.AbilityMean + m.knowledgeWeight*in.KnowledgeMean) / weightSum

	mentalIdx := m.mentalIndex(in)

	mult := m.knowledgeMultiplierFormal
	if in.Kind == types.ContestPractice {
		mult = m.knowledgeMultiplierPractice
	}
	effective := composite + in.KnowledgeValue*mult

	baseRatio := logistic((effective - in.ProblemDifficulty) / m.logisticScale)
	stability := mentalIdx / 100

	// Less stable competitors swing harder.
	sigma := m.noiseFloor + m.noiseSlope*(1-mentalIdx/100)
	noise := m.src.Normal(0, sigma)

	ratio := clamp01(baseRatio * stability * (1 + noise))

	score := int(math.Floor(ratio * float64(in.MaxScore)))
	score -= score % scoreGranularity
	if score < 0 {
		score = 0
	}
	if score > in.MaxScore {
		score = in.MaxScore
	}

	return Result{Score: score, Ratio: ratio, MentalIndex: mentalIdx}
}

// mentalIndex degrades the mental axis by pressure, moderated by comfort,
// plus a small noise term, clamped to [0,100].
func (m *Model) mentalIndex(in Input) float64 {
	idx := in.Mental - m.pressurePenalty*(in.Pressure/100)*(1-in.Comfort/100)
	idx += m.src.Normal(0, m.mentalNoiseSigma)
	return math.Max(0, math.Min(100, idx))
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
