package sim

import "fmt"

// Default configuration values. The run command's flag defaults are these.
const (
	DefaultBeltLength   = 10
	DefaultWorkerPairs  = 3
	DefaultStrategy     = StrategyTeam
	DefaultAssemblyTime = 4
	DefaultTicks        = 100
	DefaultSeed         = 42
)

// Config holds everything needed to construct a Simulation.
type Config struct {
	// BeltLength is the number of slots on the belt. Must be positive.
	BeltLength int

	// WorkerPairs is the number of two-worker teams. Pair k is stationed
	// at slot k. Two workers stand at every station, so capacity requires
	// 2*WorkerPairs <= BeltLength (equality is legal). Zero pairs is a
	// legal, workerless run.
	WorkerPairs int

	// Strategy names the decision policy. See ValidStrategies.
	Strategy string

	// AssemblyTime is the number of ticks one product takes to assemble.
	// Must be positive.
	AssemblyTime int

	// Ticks is the number of belt advances to simulate. Must be positive.
	Ticks int

	// Seed is the master RNG seed. Equal Config and Seed reproduce a run
	// bit for bit.
	Seed int64
}

// DefaultConfig returns the configuration the run command starts from.
func DefaultConfig() Config {
	return Config{
		BeltLength:   DefaultBeltLength,
		WorkerPairs:  DefaultWorkerPairs,
		Strategy:     DefaultStrategy,
		AssemblyTime: DefaultAssemblyTime,
		Ticks:        DefaultTicks,
		Seed:         DefaultSeed,
	}
}

// Validate checks the configuration. A nil error means NewSimulation will
// accept it; any violation is reported before a single tick runs.
func (c Config) Validate() error {
	if c.BeltLength <= 0 {
		return fmt.Errorf("belt length must be positive, got %d", c.BeltLength)
	}
	if c.WorkerPairs < 0 {
		return fmt.Errorf("worker pairs must be non-negative, got %d", c.WorkerPairs)
	}
	if 2*c.WorkerPairs > c.BeltLength {
		return fmt.Errorf("%d worker pairs put %d workers on a %d-slot belt; need 2*pairs <= belt length",
			c.WorkerPairs, 2*c.WorkerPairs, c.BeltLength)
	}
	if !IsValidStrategy(c.Strategy) {
		return fmt.Errorf("unknown strategy %q (valid: %v)", c.Strategy, ValidStrategyNames())
	}
	if c.AssemblyTime <= 0 {
		return fmt.Errorf("assembly time must be positive, got %d", c.AssemblyTime)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("tick count must be positive, got %d", c.Ticks)
	}
	return nil
}
