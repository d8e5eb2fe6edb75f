// Package randx wraps the random draws the simulation depends on behind a
// seedable source, so every stochastic component can be made deterministic
// in tests.
package randx

import (
	"math/rand"
	"time"
)

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithSeed fixes the seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(s *Source) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // simulation randomness, not crypto
	}
}

// Source provides uniform, integer-uniform and normal draws. It is not
// safe for concurrent use; the session serializes access.
type Source struct {
	rng *rand.Rand
}

// New creates a Source seeded from the clock unless WithSeed overrides it.
func New(opts ...Option) *Source {
	s := &Source{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation randomness, not crypto
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Uniform returns a draw in [min, max). Degenerate ranges return min.
func (s *Source) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// IntBetween returns an integer draw in [min, max], inclusive on both ends.
// Degenerate ranges return min.
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// Normal returns a draw from Normal(mean, sigma). A non-positive sigma
// returns the mean.
func (s *Source) Normal(mean, sigma float64) float64 {
	if sigma <= 0 {
		return mean
	}
	return mean + s.rng.NormFloat64()*sigma
}

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.rng.Perm(n)
}
