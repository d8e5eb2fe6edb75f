// Package config defines the simulation's tunable surface and loading
// hooks. Every balance knob the core reads (pass-rate bases, reward
// multipliers, gain caps, scoring parameters) lives here with a documented
// default, so callers treat it as a read-only mapping from name to value.
package config

import (
	"github.com/hqin/oicoach/internal/domain/types"
)

// Config contains process and balance configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeasonWeeks is the season length; the half-season boundary sits at
	// SeasonWeeks/2.
	SeasonWeeks int `koanf:"season_weeks"`

	// RosterSize sets the generated starter roster size when the caller
	// provides no roster of its own.
	RosterSize int `koanf:"roster_size"`

	// ProvinceTier selects the province archetype: strong, balanced,
	// developing.
	ProvinceTier string `koanf:"province_tier"`

	// Base pass rates per province archetype.
	PassRateStrong     float64 `koanf:"pass_rate_strong"`
	PassRateBalanced   float64 `koanf:"pass_rate_balanced"`
	PassRateDeveloping float64 `koanf:"pass_rate_developing"`

	// PassRateStageBonus is added for the Regional stage only.
	PassRateStageBonus float64 `koanf:"pass_rate_stage_bonus"`

	// PassLineMultiplier is the global difficulty/balance knob applied to
	// every computed pass line.
	PassLineMultiplier float64 `koanf:"pass_line_multiplier"`

	// PressureMultiplier scales every failure-side pressure penalty.
	PressureMultiplier float64 `koanf:"pressure_multiplier"`

	// Gain caps per contest, subdivided across problems.
	KnowledgeGainCapFormal   float64 `koanf:"knowledge_gain_cap_formal"`
	KnowledgeGainCapPractice float64 `koanf:"knowledge_gain_cap_practice"`
	AbilityGainCap           float64 `koanf:"ability_gain_cap"`

	// KnowledgeDecayFactor is the weekly multiplicative forgetting step.
	KnowledgeDecayFactor float64 `koanf:"knowledge_decay_factor"`

	// Scoring model parameters.
	AbilityWeight               float64 `koanf:"ability_weight"`
	KnowledgeWeight             float64 `koanf:"knowledge_weight"`
	PressurePenalty             float64 `koanf:"pressure_penalty"`
	MentalNoiseSigma            float64 `koanf:"mental_noise_sigma"`
	LogisticScale               float64 `koanf:"logistic_scale"`
	KnowledgeMultiplierFormal   float64 `koanf:"knowledge_multiplier_formal"`
	KnowledgeMultiplierPractice float64 `koanf:"knowledge_multiplier_practice"`
}

// New returns the documented defaults.
func New() *Config {
	return &Config{
		LogLevel:                    "info",
		Addr:                        ":9080",
		SeasonWeeks:                 40,
		RosterSize:                  8,
		ProvinceTier:                "balanced",
		PassRateStrong:              0.35,
		PassRateBalanced:            0.45,
		PassRateDeveloping:          0.55,
		PassRateStageBonus:          0.10,
		PassLineMultiplier:          1.0,
		PressureMultiplier:          1.0,
		KnowledgeGainCapFormal:      12,
		KnowledgeGainCapPractice:    6,
		AbilityGainCap:              3.0,
		KnowledgeDecayFactor:        0.98,
		AbilityWeight:               0.7,
		KnowledgeWeight:             0.3,
		PressurePenalty:             30,
		MentalNoiseSigma:            8,
		LogisticScale:               12,
		KnowledgeMultiplierFormal:   0.05,
		KnowledgeMultiplierPractice: 0.07,
	}
}

// Tier resolves the configured province archetype.
func (c *Config) Tier() types.ProvinceTier {
	return types.ParseProvinceTier(c.ProvinceTier)
}

// BaseRates exposes the archetype pass rates as a lookup table.
func (c *Config) BaseRates() map[types.ProvinceTier]float64 {
	return map[types.ProvinceTier]float64{
		types.ProvinceStrong:     c.PassRateStrong,
		types.ProvinceBalanced:   c.PassRateBalanced,
		types.ProvinceDeveloping: c.PassRateDeveloping,
	}
}
