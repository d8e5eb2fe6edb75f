package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COACH_CONFIG is set
//  3. env (prefix COACH_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("COACH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: COACH_ADDR, COACH_SEASON_WEEKS, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("COACH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "coach_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.SeasonWeeks < 2:
		return fmt.Errorf("%w: season_weeks must cover both half-seasons", ErrInvalidConfig)
	case cfg.RosterSize < 1:
		return fmt.Errorf("%w: roster_size must be positive", ErrInvalidConfig)
	case cfg.PassLineMultiplier <= 0:
		return fmt.Errorf("%w: pass_line_multiplier must be positive", ErrInvalidConfig)
	case cfg.PressureMultiplier <= 0:
		return fmt.Errorf("%w: pressure_multiplier must be positive", ErrInvalidConfig)
	case cfg.KnowledgeDecayFactor <= 0 || cfg.KnowledgeDecayFactor > 1:
		return fmt.Errorf("%w: knowledge_decay_factor must be in (0,1]", ErrInvalidConfig)
	}
	for name, rate := range map[string]float64{
		"pass_rate_strong":     cfg.PassRateStrong,
		"pass_rate_balanced":   cfg.PassRateBalanced,
		"pass_rate_developing": cfg.PassRateDeveloping,
	} {
		if rate <= 0 || rate > 1 {
			return fmt.Errorf("%w: %s must be in (0,1]", ErrInvalidConfig, name)
		}
	}
	return validateCaps(cfg)
}

func validateCaps(cfg *Config) error {
	if cfg.KnowledgeGainCapFormal < 0 || cfg.KnowledgeGainCapPractice < 0 || cfg.AbilityGainCap < 0 {
		return fmt.Errorf("%w: gain caps must be non-negative", ErrInvalidConfig)
	}
	return nil
}
