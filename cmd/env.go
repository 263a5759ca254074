package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	sim "github.com/factory-sim/factory-sim/sim"
)

// Environment variables override flags when set, so the report command's
// export lines (and container deployments) configure runs without touching
// the command line. Pointer fields stay nil when the variable is absent.

// runEnv overrides the run command.
type runEnv struct {
	BeltLength   *int    `env:"BELT_LENGTH"`
	WorkerPairs  *int    `env:"NUM_WORKER_PAIRS"`
	Strategy     *string `env:"STRATEGY"`
	Ticks        *int    `env:"STEPS"`
	AssemblyTime *int    `env:"ASSEMBLY_TIME"`
	Seed         *int64  `env:"SEED"`
	Quiet        *bool   `env:"QUIET"`
}

// lineEnv overrides the line command.
type lineEnv struct {
	Capacity        *int `env:"BELT_CAPACITY"`
	Producers       *int `env:"NUM_PRODUCERS"`
	Consumers       *int `env:"NUM_CONSUMERS"`
	DurationSeconds *int `env:"SIMULATION_DURATION_SECONDS"`
}

// parseEnv loads environment overrides into target.
func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// applyRunEnv layers set variables over the flag-built config and the quiet
// toggle.
func applyRunEnv(cfg *sim.Config, quiet *bool) error {
	var overrides runEnv
	if err := parseEnv(&overrides); err != nil {
		return err
	}
	if overrides.BeltLength != nil {
		cfg.BeltLength = *overrides.BeltLength
	}
	if overrides.WorkerPairs != nil {
		cfg.WorkerPairs = *overrides.WorkerPairs
	}
	if overrides.Strategy != nil {
		cfg.Strategy = *overrides.Strategy
	}
	if overrides.Ticks != nil {
		cfg.Ticks = *overrides.Ticks
	}
	if overrides.AssemblyTime != nil {
		cfg.AssemblyTime = *overrides.AssemblyTime
	}
	if overrides.Seed != nil {
		cfg.Seed = *overrides.Seed
	}
	if overrides.Quiet != nil {
		*quiet = *overrides.Quiet
	}
	return nil
}

// applyLineEnv layers set variables over the flag-built line parameters.
func applyLineEnv(capacity, producers, consumers *int, duration *time.Duration) error {
	var overrides lineEnv
	if err := parseEnv(&overrides); err != nil {
		return err
	}
	if overrides.Capacity != nil {
		*capacity = *overrides.Capacity
	}
	if overrides.Producers != nil {
		*producers = *overrides.Producers
	}
	if overrides.Consumers != nil {
		*consumers = *overrides.Consumers
	}
	if overrides.DurationSeconds != nil {
		*duration = time.Duration(*overrides.DurationSeconds) * time.Second
	}
	return nil
}
