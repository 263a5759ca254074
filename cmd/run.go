package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/factory-sim/factory-sim/sim"
	"github.com/factory-sim/factory-sim/sim/render"
)

var (
	runBeltLength   int
	runWorkerPairs  int
	runStrategy     string
	runTicks        int
	runAssemblyTime int
	runSeed         int64
	runQuiet        bool
	runWatch        bool
	runStepDelay    time.Duration
)

// runCmd executes one simulation using parameters from CLI flags, with
// environment variables taking precedence (the report command emits them).
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the factory line simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := sim.Config{
			BeltLength:   runBeltLength,
			WorkerPairs:  runWorkerPairs,
			Strategy:     runStrategy,
			AssemblyTime: runAssemblyTime,
			Ticks:        runTicks,
			Seed:         runSeed,
		}
		quiet := runQuiet
		if err := applyRunEnv(&cfg, &quiet); err != nil {
			return err
		}

		s, err := sim.NewSimulation(cfg)
		if err != nil {
			return err
		}

		if runWatch && !quiet {
			for s.Clock < cfg.Ticks {
				fmt.Fprint(cmd.OutOrStdout(), render.Board(s.Snapshot()))
				s.Tick()
				time.Sleep(runStepDelay)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Board(s.Snapshot()))
		} else {
			s.Run()
		}

		results := s.Results()
		if quiet {
			line, err := json.Marshal(results)
			if err != nil {
				return fmt.Errorf("marshal results: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(line))
			return nil
		}
		results.Print(cfg.Ticks)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runBeltLength, "belt-length", sim.DefaultBeltLength, "Number of slots on the belt")
	runCmd.Flags().IntVar(&runWorkerPairs, "pairs", sim.DefaultWorkerPairs, "Number of worker pairs (2*pairs must fit the belt)")
	runCmd.Flags().StringVar(&runStrategy, "strategy", sim.DefaultStrategy, "Decision strategy (individual, team, hivemind)")
	runCmd.Flags().IntVar(&runTicks, "ticks", sim.DefaultTicks, "Number of ticks to simulate")
	runCmd.Flags().IntVar(&runAssemblyTime, "assembly-time", sim.DefaultAssemblyTime, "Ticks one assembly takes")
	runCmd.Flags().Int64Var(&runSeed, "seed", sim.DefaultSeed, "Master RNG seed")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "Print only the JSON results line")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Render the board between ticks")
	runCmd.Flags().DurationVar(&runStepDelay, "step-delay", 200*time.Millisecond, "Delay between rendered ticks with --watch")
}
