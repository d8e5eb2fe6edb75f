package simtool

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/hqin/oicoach/internal/config"
)

// Main parses flags and runs the simulator; it is the body of
// cmd/simulate so the logic stays testable.
func Main(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	seasons := fs.Int("seasons", 100, "number of seasons to simulate")
	seed := fs.Int64("seed", 0, "base random seed; 0 uses the clock")
	weeks := fs.Int("weeks", 0, "override season length in weeks")
	province := fs.String("province", "", "province archetype: strong, balanced, developing")
	rosterSize := fs.Int("roster", 0, "override roster size")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg := config.New()
	if *weeks > 1 {
		cfg.SeasonWeeks = *weeks
	}
	if *province != "" {
		cfg.ProvinceTier = *province
	}
	if *rosterSize > 0 {
		cfg.RosterSize = *rosterSize
	}

	opts := []Option{WithSeasons(*seasons), WithConfig(cfg)}
	if *seed != 0 {
		opts = append(opts, WithSeed(*seed))
	}

	summary, err := NewRunner(opts...).Run(ctx)
	if err != nil {
		return err
	}
	return WriteReport(out, summary)
}
