package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/factory-sim/factory-sim/sim/conveyor"
	"github.com/factory-sim/factory-sim/sim/health"
)

var (
	lineCapacity  int
	lineProducers int
	lineConsumers int
	lineDuration  time.Duration
	lineSeed      int64
	lineProbeAddr string
	lineSweep     bool
)

// broadcastEvery is how often the probe server's websocket feed gets a
// fresh line snapshot.
const broadcastEvery = time.Second

// lineCmd runs the goroutine producer/consumer variant of the line: real
// concurrency against a semaphore-bounded buffer instead of ticks.
var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Run the goroutine producer/consumer line",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyLineEnv(&lineCapacity, &lineProducers, &lineConsumers, &lineDuration); err != nil {
			return err
		}

		if lineSweep {
			sweepCfg := conveyor.DefaultSweepConfig()
			sweepCfg.Duration = lineDuration
			sweepCfg.Seed = lineSeed
			return conveyor.Sweep(cmd.Context(), sweepCfg, cmd.OutOrStdout())
		}

		cfg := conveyor.LineConfig{
			Capacity:  lineCapacity,
			Producers: lineProducers,
			Consumers: lineConsumers,
			Duration:  lineDuration,
			Seed:      lineSeed,
		}

		var (
			state *health.State
			hub   *health.Hub
		)
		if lineProbeAddr != "" {
			state = health.NewState()
			hub = health.NewHub()
			hubDone := make(chan struct{})
			defer close(hubDone)
			go hub.Run(hubDone)

			server := health.NewServer(lineProbeAddr, state, hub, health.DefaultAliveWindow)
			server.Start()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logrus.Warnf("probe server shutdown: %v", err)
				}
			}()
			cfg.Heartbeat = state.RecordHeartbeat
		}

		runCtx, cancel := context.WithTimeout(cmd.Context(), cfg.Duration)
		defer cancel()

		line, err := conveyor.StartLine(runCtx, cfg)
		if err != nil {
			return err
		}
		if state != nil {
			state.SetReady()
			go broadcastLine(runCtx, hub, line)
		}

		result := line.Wait()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Line Results ===")
		fmt.Fprintf(out, "Items produced  : %d\n", result.Produced)
		fmt.Fprintf(out, "Items consumed  : %d\n", result.Consumed)
		fmt.Fprintf(out, "Items remaining : %d\n", result.Remaining)
		return nil
	},
}

// broadcastLine pushes periodic snapshots to the websocket feed until the
// run context ends.
func broadcastLine(ctx context.Context, hub *health.Hub, line *conveyor.Line) {
	ticker := time.NewTicker(broadcastEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hub.BroadcastState(line.Snapshot())
		}
	}
}

func init() {
	lineCmd.Flags().IntVar(&lineCapacity, "capacity", 10, "Buffer capacity")
	lineCmd.Flags().IntVar(&lineProducers, "producers", 2, "Producer goroutines")
	lineCmd.Flags().IntVar(&lineConsumers, "consumers", 3, "Consumer goroutines")
	lineCmd.Flags().DurationVar(&lineDuration, "duration", 15*time.Second, "How long the line runs")
	lineCmd.Flags().Int64Var(&lineSeed, "seed", 42, "Seed for think-time jitter")
	lineCmd.Flags().StringVar(&lineProbeAddr, "probe-addr", "", "Probe server address, e.g. :8080 (off when empty)")
	lineCmd.Flags().BoolVar(&lineSweep, "sweep", false, "Run the capacity/producer/consumer experiment grid")
}
