// Package reward derives monetary rewards and pressure/mental feedback
// from contest outcomes. Computation is split into a pure delta pass and a
// single apply pass, so the once-per-competitor guarantee for the deferred
// extra-pressure penalty is structural rather than conventional.
package reward

import (
	"math"

	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/internal/domain/types"
)

// Feedback constants.
const (
	passPressureRelief = 10.0
	passMentalGain     = 3.0
	failPressureBase   = 15.0
	failMentalLoss     = 5.0

	extraPressureCap     = 15
	extraPressureDivisor = 20 // midpoint shortfall measured in totalMax/20 steps
	extraAppliedFactor   = 2  // deferred penalty is doubled when applied
)

// Outcome is one competitor's contest result as seen by the feedback pass.
type Outcome struct {
	Name         string
	Score        int
	Passed       bool
	Participated bool
}

// Delta is the immutable feedback for one competitor. Pressure already
// includes the deferred extra-pressure penalty; Extra records the raw
// amount for inspection and remarks.
type Delta struct {
	Name     string
	Pressure float64
	Mental   float64
	Extra    int // raw extra-pressure units before doubling/multiplier
}

// ComputeDeltas is the pure pass. The extra-pressure rule triggers on
// failure, on a score strictly below the midpoint, or on a score equal to
// the session minimum; ties at the minimum all get flagged. The recorded
// extra amount is folded into Pressure once, doubled and scaled by the
// global pressure multiplier.
func ComputeDeltas(outcomes []Outcome, totalMax int, pressureMultiplier float64) []Delta {
	if pressureMultiplier <= 0 {
		pressureMultiplier = 1
	}
	minScore := sessionMinimum(outcomes)
	midpoint := float64(totalMax) / 2

	deltas := make([]Delta, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.Participated {
			continue
		}
		d := Delta{Name: o.Name}
		if o.Passed {
			d.Pressure = -passPressureRelief
			d.Mental = passMentalGain
		} else {
			d.Pressure = failPressureBase * pressureMultiplier
			d.Mental = -failMentalLoss
		}

		if !o.Passed || float64(o.Score) < midpoint || o.Score == minScore {
			d.Extra = extraPressure(o.Score, totalMax)
			d.Pressure += float64(d.Extra) * extraAppliedFactor * pressureMultiplier
		}
		deltas = append(deltas, d)
	}
	return deltas
}

// extraPressure measures how far below the midpoint the score landed, in
// totalMax/20 steps, capped.
func extraPressure(score, totalMax int) int {
	midpoint := float64(totalMax) / 2
	step := math.Max(1, float64(totalMax)/extraPressureDivisor)
	units := int(math.Ceil(math.Max(0, midpoint-float64(score)) / step))
	if units > extraPressureCap {
		units = extraPressureCap
	}
	return units
}

// sessionMinimum is the lowest participating score; empty sessions report
// -1 so no score can equal it.
func sessionMinimum(outcomes []Outcome) int {
	min := -1
	for _, o := range outcomes {
		if !o.Participated {
			continue
		}
		if min == -1 || o.Score < min {
			min = o.Score
		}
	}
	return min
}

// Apply is the single mutation pass. Unknown names are skipped; the roster
// is the source of truth for who still exists.
func Apply(r *roster.Roster, deltas []Delta) {
	for _, d := range deltas {
		c, err := r.Find(d.Name)
		if err != nil {
			continue
		}
		c.AddPressure(d.Pressure)
		c.AddMental(d.Mental)
	}
}

// Funding draws a flat currency amount per passing participant from the
// stage's reward range and sums them. Idempotency is the caller's job via
// the funding-issued key.
func Funding(src *randx.Source, stage types.Stage, outcomes []Outcome) int {
	bounds := types.RewardRangeFor(stage)
	total := 0
	for _, o := range outcomes {
		if o.Passed && o.Participated {
			total += src.IntBetween(bounds.Min, bounds.Max)
		}
	}
	return total
}
