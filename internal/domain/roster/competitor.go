// Package roster holds per-competitor mutable state: skill axes, knowledge
// counters and psychological state. Every bounded axis is clamped after
// every mutation; knowledge counters are unbounded and only ever decay
// multiplicatively.
package roster

import (
	"math"

	"github.com/hqin/oicoach/internal/domain/types"
)

// Bounds for the clamped axes.
const (
	axisMin = 0
	axisMax = 100
)

// Competitor is one student on the roster. The name is the qualification
// key and must be unique for the lifetime of a season.
type Competitor struct {
	Name string

	// Skill axes, clamped to [0,100].
	Thinking float64
	Coding   float64
	Mental   float64

	// Knowledge counters per topic, non-negative and unbounded.
	Knowledge map[types.Tag]float64

	// Psychological state, clamped to [0,100]. Comfort is set by the
	// environment (dorm/facility quality), not by contest outcomes.
	Pressure float64
	Comfort  float64

	// Active is cleared when a competitor quits or is evicted; inactive
	// competitors keep their history but never enter another contest.
	Active bool
}

// NewCompetitor returns an active competitor with zeroed knowledge counters.
func NewCompetitor(name string, thinking, coding, mental float64) *Competitor {
	c := &Competitor{
		Name:      name,
		Thinking:  clampAxis(thinking),
		Coding:    clampAxis(coding),
		Mental:    clampAxis(mental),
		Knowledge: make(map[types.Tag]float64, types.TagCount),
		Comfort:   50,
		Active:    true,
	}
	for _, t := range types.Tags() {
		c.Knowledge[t] = 0
	}
	return c
}

func clampAxis(v float64) float64 {
	return math.Max(axisMin, math.Min(axisMax, v))
}

// AbilityMean is the mean of the three skill axes.
func (c *Competitor) AbilityMean() float64 {
	return (c.Thinking + c.Coding + c.Mental) / 3
}

// KnowledgeMean is the mean of the five knowledge counters.
func (c *Competitor) KnowledgeMean() float64 {
	var sum float64
	for _, t := range types.Tags() {
		sum += c.Knowledge[t]
	}
	return sum / types.TagCount
}

// KnowledgeSum totals the counters for the given tags, e.g. a problem's
// tag list.
func (c *Competitor) KnowledgeSum(tags []types.Tag) float64 {
	var sum float64
	for _, t := range tags {
		sum += c.Knowledge[t]
	}
	return sum
}

// AddThinking adjusts the thinking axis, clamped.
func (c *Competitor) AddThinking(delta float64) {
	c.Thinking = clampAxis(c.Thinking + delta)
}

// AddCoding adjusts the coding axis, clamped.
func (c *Competitor) AddCoding(delta float64) {
	c.Coding = clampAxis(c.Coding + delta)
}

// AddMental adjusts the mental axis, clamped.
func (c *Competitor) AddMental(delta float64) {
	c.Mental = clampAxis(c.Mental + delta)
}

// AddPressure adjusts accumulated stress, clamped.
func (c *Competitor) AddPressure(delta float64) {
	c.Pressure = clampAxis(c.Pressure + delta)
}

// SetComfort overwrites the environment comfort level, clamped.
func (c *Competitor) SetComfort(v float64) {
	c.Comfort = clampAxis(v)
}

// AddKnowledge raises one counter. Negative results are floored at zero;
// counters have no upper bound.
func (c *Competitor) AddKnowledge(tag types.Tag, delta float64) {
	c.Knowledge[tag] = math.Max(0, c.Knowledge[tag]+delta)
}

// DecayKnowledge multiplies every counter by factor, the weekly forgetting
// step. Factors outside (0,1] are ignored.
func (c *Competitor) DecayKnowledge(factor float64) {
	if factor <= 0 || factor > 1 {
		return
	}
	for t, v := range c.Knowledge {
		c.Knowledge[t] = v * factor
	}
}

// Deactivate removes the competitor from all future contests.
func (c *Competitor) Deactivate() {
	c.Active = false
}
