package conveyor

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
)

// SweepConfig is the parameter grid for the line experiments: every
// capacity x producers x consumers combination runs once.
type SweepConfig struct {
	Capacities []int
	Producers  []int
	Consumers  []int
	Duration   time.Duration
	Seed       int64

	// Jitter overrides forwarded to every run; zero keeps the defaults.
	ProduceDelayMin, ProduceDelayMax time.Duration
	ConsumeDelayMin, ConsumeDelayMax time.Duration
}

// DefaultSweepConfig returns the experiment grid the line command sweeps.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Capacities: []int{10, 50, 100},
		Producers:  []int{1, 5, 10},
		Consumers:  []int{1, 5, 10},
		Duration:   10 * time.Second,
		Seed:       sweepBaseSeed,
	}
}

// Each sweep run gets its own derived seed so two runs of the same combo in
// one sweep never share jitter streams.
const sweepBaseSeed = 42

// SweepRow is one grid combination's outcome.
type SweepRow struct {
	Capacity  int
	Producers int
	Consumers int
	LineResult
	Throughput float64 // consumed items per second
}

// Sweep runs the full grid and writes an aligned result table to w.
// The context cancels the remainder of the sweep, not just the current run.
func Sweep(ctx context.Context, cfg SweepConfig, w io.Writer) error {
	rows, err := sweepRows(ctx, cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CAPACITY\tPRODUCERS\tCONSUMERS\tPRODUCED\tCONSUMED\tTHROUGHPUT (items/s)")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.2f\n",
			row.Capacity, row.Producers, row.Consumers,
			row.Produced, row.Consumed, row.Throughput)
	}
	return tw.Flush()
}

func sweepRows(ctx context.Context, cfg SweepConfig) ([]SweepRow, error) {
	var rows []SweepRow
	run := 0
	for _, capacity := range cfg.Capacities {
		for _, producers := range cfg.Producers {
			for _, consumers := range cfg.Consumers {
				if err := ctx.Err(); err != nil {
					return rows, fmt.Errorf("sweep cancelled: %w", err)
				}
				run++
				logrus.Infof("sweep run %d: capacity=%d producers=%d consumers=%d",
					run, capacity, producers, consumers)
				result, err := RunLine(ctx, LineConfig{
					Capacity:        capacity,
					Producers:       producers,
					Consumers:       consumers,
					Duration:        cfg.Duration,
					Seed:            cfg.Seed + int64(run),
					ProduceDelayMin: cfg.ProduceDelayMin,
					ProduceDelayMax: cfg.ProduceDelayMax,
					ConsumeDelayMin: cfg.ConsumeDelayMin,
					ConsumeDelayMax: cfg.ConsumeDelayMax,
				})
				if err != nil {
					return rows, fmt.Errorf("sweep run %d: %w", run, err)
				}
				rows = append(rows, SweepRow{
					Capacity:   capacity,
					Producers:  producers,
					Consumers:  consumers,
					LineResult: result,
					Throughput: float64(result.Consumed) / cfg.Duration.Seconds(),
				})
			}
		}
	}
	return rows, nil
}
