// Package report sweeps the simulation across a configuration grid and
// ranks the outcomes, so strategy and sizing choices rest on measured
// throughput and waste instead of intuition.
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/factory-sim/factory-sim/sim"
)

// Grid is the parameter space one report covers. Every belt length is
// combined with every pair count and strategy; combinations that violate
// the engine's capacity constraint are skipped up front.
type Grid struct {
	BeltLengths []int    `yaml:"belt_lengths"`
	WorkerPairs []int    `yaml:"worker_pairs"`
	Strategies  []string `yaml:"strategies"`

	// Ticks and Seed are shared by every run so rows compare fairly.
	Ticks int   `yaml:"ticks"`
	Seed  int64 `yaml:"seed"`

	// AssemblyTime applies to every run. Zero means the engine default.
	AssemblyTime int `yaml:"assembly_time"`
}

// DefaultGrid covers belt lengths 1-20 with every pair count the capacity
// constraint admits, all three strategies, 1000 ticks.
func DefaultGrid() Grid {
	lengths := make([]int, 0, 20)
	pairs := make([]int, 0, 10)
	for l := 1; l <= 20; l++ {
		lengths = append(lengths, l)
	}
	for p := 1; p <= 10; p++ {
		pairs = append(pairs, p)
	}
	return Grid{
		BeltLengths:  lengths,
		WorkerPairs:  pairs,
		Strategies:   sim.ValidStrategyNames(),
		Ticks:        1000,
		Seed:         sim.DefaultSeed,
		AssemblyTime: sim.DefaultAssemblyTime,
	}
}

// LoadGrid reads a YAML grid file and validates it.
func LoadGrid(path string) (Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grid{}, fmt.Errorf("reading grid file: %w", err)
	}
	var g Grid
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Grid{}, fmt.Errorf("parsing grid file %s: %w", path, err)
	}
	if g.AssemblyTime == 0 {
		g.AssemblyTime = sim.DefaultAssemblyTime
	}
	if err := g.Validate(); err != nil {
		return Grid{}, fmt.Errorf("grid file %s: %w", path, err)
	}
	return g, nil
}

// Validate checks the grid before any simulation runs.
func (g Grid) Validate() error {
	if len(g.BeltLengths) == 0 {
		return fmt.Errorf("grid needs at least one belt length")
	}
	if len(g.WorkerPairs) == 0 {
		return fmt.Errorf("grid needs at least one worker pair count")
	}
	if len(g.Strategies) == 0 {
		return fmt.Errorf("grid needs at least one strategy")
	}
	for _, name := range g.Strategies {
		if !sim.IsValidStrategy(name) {
			return fmt.Errorf("unknown strategy %q (valid: %v)", name, sim.ValidStrategyNames())
		}
	}
	if g.Ticks <= 0 {
		return fmt.Errorf("tick count must be positive, got %d", g.Ticks)
	}
	if g.AssemblyTime <= 0 {
		return fmt.Errorf("assembly time must be positive, got %d", g.AssemblyTime)
	}
	return nil
}

// Row is one configuration's outcome with its derived ranking metrics.
type Row struct {
	BeltLength int
	NumWorkers int
	Strategy   string

	Results sim.Results

	// Velocity is finished products; Efficiency is products per worker;
	// WastePercent is missed components relative to ticks run.
	Velocity     int
	Efficiency   float64
	WastePercent float64
}

// Run executes every valid grid combination in process and returns one row
// per run. Combinations the capacity constraint rejects are skipped: the
// engine would refuse to construct them.
func Run(grid Grid) ([]Row, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}

	var rows []Row
	for _, length := range grid.BeltLengths {
		for _, pairs := range grid.WorkerPairs {
			if 2*pairs > length {
				continue
			}
			for _, strategy := range grid.Strategies {
				cfg := sim.Config{
					BeltLength:   length,
					WorkerPairs:  pairs,
					Strategy:     strategy,
					AssemblyTime: grid.AssemblyTime,
					Ticks:        grid.Ticks,
					Seed:         grid.Seed,
				}
				s, err := sim.NewSimulation(cfg)
				if err != nil {
					return nil, fmt.Errorf("building run length=%d pairs=%d strategy=%s: %w",
						length, pairs, strategy, err)
				}
				logrus.Debugf("report run: length=%d pairs=%d strategy=%s", length, pairs, strategy)
				s.Run()

				results := s.Results()
				workers := 2 * pairs
				rows = append(rows, Row{
					BeltLength:   length,
					NumWorkers:   workers,
					Strategy:     strategy,
					Results:      results,
					Velocity:     results.ProductsCreated.C,
					Efficiency:   results.EfficiencyPerWorker(workers),
					WastePercent: results.WastePercent(grid.Ticks),
				})
			}
		}
	}
	return rows, nil
}

// Rank orders rows in place: zero-velocity runs last, then ascending waste,
// then descending efficiency. The sort is stable, so equal rows keep their
// grid enumeration order.
func Rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if (a.Velocity == 0) != (b.Velocity == 0) {
			return a.Velocity != 0
		}
		if a.WastePercent != b.WastePercent {
			return a.WastePercent < b.WastePercent
		}
		return a.Efficiency > b.Efficiency
	})
}

// Recommend returns the best-ranked productive row. False when no
// configuration produced anything.
func Recommend(rows []Row) (Row, bool) {
	ranked := append([]Row(nil), rows...)
	Rank(ranked)
	for _, row := range ranked {
		if row.Velocity > 0 {
			return row, true
		}
	}
	return Row{}, false
}
