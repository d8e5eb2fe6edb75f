// Package passline derives the qualifying score threshold from a contest's
// score distribution and, for the terminal stage, the medal tiers keyed off
// that threshold.
package passline

import (
	"math"

	"github.com/hqin/oicoach/internal/domain/types"
)

// Stage-relative clamp bounds. The terminal stage only enforces a high
// floor; every other stage keeps the line inside a playable band.
const (
	terminalFloorRatio = 0.80
	regularFloorRatio  = 0.30
	regularCeilRatio   = 0.90
)

// Medal thresholds relative to the pass line, not the raw maximum.
const (
	silverRatio = 0.7
	bronzeRatio = 0.5
)

// Regional is the one mid-chain stage whose pass rate gets a fixed bonus.
const passRateBonusStage = types.StageRegional

// Bounds describes the clamp window for a stage, as ratios of total max.
type Bounds struct {
	Floor float64
	Ceil  float64
}

// BoundsFor returns the clamp window for a stage.
func BoundsFor(stage types.Stage) Bounds {
	if stage.Terminal() {
		return Bounds{Floor: terminalFloorRatio, Ceil: 1.0}
	}
	return Bounds{Floor: regularFloorRatio, Ceil: regularCeilRatio}
}

// PassRateFor derives a stage's pass rate from the province archetype base
// rate plus the fixed bonus for the Regional stage.
func PassRateFor(tier types.ProvinceTier, stage types.Stage, baseRates map[types.ProvinceTier]float64, stageBonus float64) float64 {
	rate := baseRates[tier]
	if stage == passRateBonusStage {
		rate += stageBonus
	}
	return math.Max(0, math.Min(1, rate))
}

// Line computes the pass threshold. sortedDesc must be the session's scores
// in descending order; an empty list yields a zero line, which is a
// legitimate game state. The multiplier is the global balance knob applied
// after the stage clamp.
func Line(sortedDesc []int, passRate float64, totalMax int, stage types.Stage, multiplier float64) int {
	if len(sortedDesc) == 0 {
		return 0
	}
	passCount := int(math.Floor(float64(len(sortedDesc)) * passRate))
	if passCount < 1 {
		passCount = 1
	}
	if passCount > len(sortedDesc) {
		passCount = len(sortedDesc)
	}
	base := float64(sortedDesc[passCount-1])

	b := BoundsFor(stage)
	base = math.Max(base, b.Floor*float64(totalMax))
	base = math.Min(base, b.Ceil*float64(totalMax))

	if multiplier <= 0 {
		multiplier = 1
	}
	return int(math.Round(base * multiplier))
}

// MedalFor maps a terminal-stage score to its tier. The silver boundary is
// inclusive: exactly 0.7x the line earns silver, not bronze.
func MedalFor(score, line int) types.Medal {
	if line <= 0 {
		return types.MedalNone
	}
	s := float64(score)
	l := float64(line)
	switch {
	case s >= l:
		return types.MedalGold
	case s >= l*silverRatio:
		return types.MedalSilver
	case s >= l*bronzeRatio:
		return types.MedalBronze
	default:
		return types.MedalNone
	}
}
