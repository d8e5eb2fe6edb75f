// Package contest models contest definitions and their problems: how many
// problems a contest carries, how difficulty scales with problem position,
// and which knowledge topics each problem touches.
package contest

import (
	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/types"
)

// Problem generation constants. Later problems sit higher in the
// difficulty range and touch more topics.
const (
	difficultyStep   = 12.0 // added per problem position
	difficultyJitter = 8.0  // uniform spread on top of the base
	maxTagsPerItem   = 3
)

// stageDifficulty is the difficulty baseline per stage; the chain ramps up.
var stageDifficulty = map[types.Stage]float64{
	types.StagePreliminary: 30,
	types.StageQualifier:   42,
	types.StageRegional:    55,
	types.StageNational:    68,
	types.StageFinal:       80,
}

// Definition describes one contest occurrence before problems are drawn.
type Definition struct {
	Stage          types.Stage
	Type           types.ContestType
	ProblemCount   int
	DifficultyBase float64 // zero means "use the stage baseline"
	MaxPerProblem  int
}

// Validate rejects malformed definitions; these are programmer errors per
// the caller contract, not recoverable game states.
func (d Definition) Validate() error {
	if !d.Stage.Valid() {
		return ErrInvalidStage
	}
	if d.ProblemCount < 1 {
		return ErrNoProblems
	}
	if d.MaxPerProblem < 1 {
		return ErrInvalidMaxima
	}
	return nil
}

// TotalMax is the contest-wide maximum score.
func (d Definition) TotalMax() int {
	return d.ProblemCount * d.MaxPerProblem
}

// Name renders the occurrence label used in career records.
func (d Definition) Name() string {
	if d.Type == types.ContestPractice {
		return "practice-" + d.Stage.String()
	}
	return d.Stage.String()
}

// Problem is one scored item: up to three topic tags, a difficulty value
// and a maximum score.
type Problem struct {
	Tags       []types.Tag
	Difficulty float64
	MaxScore   int
}

// GenerateProblems draws the contest's problem set. Problem i sits at
// base + i*step plus jitter, so earlier problems are easier; each problem
// carries 1..3 distinct tags.
func GenerateProblems(src *randx.Source, def Definition) ([]Problem, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	base := def.DifficultyBase
	if base == 0 {
		base = stageDifficulty[def.Stage]
	}
	problems := make([]Problem, def.ProblemCount)
	for i := range problems {
		problems[i] = Problem{
			Tags:       drawTags(src),
			Difficulty: base + float64(i)*difficultyStep + src.Uniform(0, difficultyJitter),
			MaxScore:   def.MaxPerProblem,
		}
	}
	return problems, nil
}

// drawTags picks 1..3 distinct topics.
func drawTags(src *randx.Source) []types.Tag {
	count := src.IntBetween(1, maxTagsPerItem)
	perm := src.Perm(types.TagCount)
	tags := make([]types.Tag, 0, count)
	for _, idx := range perm[:count] {
		tags = append(tags, types.Tags()[idx])
	}
	return tags
}
