// Package allocate splits a capped gain pool across problems proportional
// to weighted contribution. Discrete currencies (knowledge points) must sum
// exactly to the advertised cap because players can audit them; continuous
// currencies (ability points) tolerate one-decimal rounding drift.
package allocate

import "math"

// Kind selects the rounding regime for a distribution.
type Kind int

const (
	// Discrete gains are floored per problem and the rounding deficit is
	// awarded to the problem with the highest actual score, so the total
	// equals floor(cap) whenever any weight is positive.
	Discrete Kind = iota
	// Continuous gains are rounded to one decimal with no correction.
	Continuous
)

// Problem is one weighted recipient of the pool.
type Problem struct {
	ActualScore int
	MaxScore    int
	Difficulty  float64
}

// weight is score share times difficulty; a zero score earns nothing.
func (p Problem) weight() float64 {
	if p.ActualScore <= 0 {
		return 0
	}
	maxScore := p.MaxScore
	if maxScore < 1 {
		maxScore = 1
	}
	difficulty := math.Max(1, p.Difficulty)
	return float64(p.ActualScore) / float64(maxScore) * difficulty
}

// Distribute splits totalCap across problems. All-zero weights return an
// all-zero vector of the same length; this is a legitimate game state, not
// an error.
func Distribute(totalCap float64, problems []Problem, kind Kind) []float64 {
	gains := make([]float64, len(problems))
	if totalCap <= 0 || len(problems) == 0 {
		return gains
	}

	var totalWeight float64
	weights := make([]float64, len(problems))
	for i, p := range problems {
		weights[i] = p.weight()
		totalWeight += weights[i]
	}
	if totalWeight == 0 {
		return gains
	}

	for i := range problems {
		raw := weights[i] / totalWeight * totalCap
		if kind == Discrete {
			gains[i] = math.Floor(raw)
		} else {
			gains[i] = roundTenth(raw)
		}
	}

	if kind == Discrete {
		var sum float64
		for _, g := range gains {
			sum += g
		}
		deficit := math.Floor(totalCap) - sum
		if deficit > 0 {
			gains[bestIndex(problems)] += deficit
		}
	}
	return gains
}

// bestIndex finds the problem with the highest actual score, first
// occurrence winning ties.
func bestIndex(problems []Problem) int {
	best := 0
	for i, p := range problems {
		if p.ActualScore > problems[best].ActualScore {
			best = i
		}
	}
	return best
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
