package conveyor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastLineConfig keeps runs short: millisecond jitter, fractions of a
// second of wall time.
func fastLineConfig() LineConfig {
	return LineConfig{
		Capacity:        5,
		Producers:       2,
		Consumers:       3,
		Duration:        150 * time.Millisecond,
		Seed:            42,
		ProduceDelayMin: time.Millisecond,
		ProduceDelayMax: 2 * time.Millisecond,
		ConsumeDelayMin: time.Millisecond,
		ConsumeDelayMax: 2 * time.Millisecond,
	}
}

func TestLineConfig_Validate(t *testing.T) {
	assert.NoError(t, fastLineConfig().Validate())

	for name, mutate := range map[string]func(*LineConfig){
		"zero capacity":     func(c *LineConfig) { c.Capacity = 0 },
		"negative capacity": func(c *LineConfig) { c.Capacity = -1 },
		"no producers":      func(c *LineConfig) { c.Producers = 0 },
		"no consumers":      func(c *LineConfig) { c.Consumers = 0 },
		"zero duration":     func(c *LineConfig) { c.Duration = 0 },
	} {
		cfg := fastLineConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestStartLine_InvalidConfig_Refused(t *testing.T) {
	cfg := fastLineConfig()
	cfg.Capacity = 0
	_, err := StartLine(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid line config")
}

func TestRunLine_IntegrityInvariant(t *testing.T) {
	// GIVEN a short line run
	result, err := RunLine(context.Background(), fastLineConfig())
	require.NoError(t, err)

	// THEN every produced item was consumed or is still buffered
	assert.Equal(t, result.Produced, result.Consumed+result.Remaining,
		"produced must equal consumed plus remaining")
	assert.Positive(t, result.Produced, "a 150ms run with 1-2ms think times must produce something")
}

func TestRunLine_RemainingNeverExceedsCapacity(t *testing.T) {
	cfg := fastLineConfig()
	cfg.Consumers = 1
	cfg.Producers = 4
	result, err := RunLine(context.Background(), cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Remaining, cfg.Capacity)
}

func TestRunLine_HeartbeatCalled(t *testing.T) {
	var beats atomic.Int64
	cfg := fastLineConfig()
	cfg.Heartbeat = func() { beats.Add(1) }

	_, err := RunLine(context.Background(), cfg)
	require.NoError(t, err)
	assert.Positive(t, beats.Load(), "workers must heartbeat while running")
}

func TestLine_Snapshot_ReadableMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	line, err := StartLine(ctx, fastLineConfig())
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	snap := line.Snapshot()
	assert.Equal(t, 5, snap.Capacity)
	assert.LessOrEqual(t, snap.Queued, snap.Capacity)

	cancel()
	result := line.Wait()
	assert.Equal(t, result.Produced, result.Consumed+result.Remaining)
}

func TestRunLine_ParentCancel_StopsEarly(t *testing.T) {
	cfg := fastLineConfig()
	cfg.Duration = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := RunLine(ctx, cfg)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "cancel must cut the run short")
}

func TestSweep_WritesOneRowPerCombination(t *testing.T) {
	cfg := SweepConfig{
		Capacities:      []int{1, 2},
		Producers:       []int{1},
		Consumers:       []int{1, 2},
		Duration:        50 * time.Millisecond,
		Seed:            42,
		ProduceDelayMin: time.Millisecond,
		ProduceDelayMax: 2 * time.Millisecond,
		ConsumeDelayMin: time.Millisecond,
		ConsumeDelayMax: 2 * time.Millisecond,
	}
	rows, err := sweepRows(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Equal(t, row.Produced, row.Consumed+row.Remaining)
	}
}

func TestSweep_CancelledContext_StopsGrid(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sweepRows(ctx, DefaultSweepConfig())
	assert.Error(t, err)
}

func TestDefaultSweepConfig_CoversOriginalGrid(t *testing.T) {
	cfg := DefaultSweepConfig()
	assert.Equal(t, []int{10, 50, 100}, cfg.Capacities)
	assert.Equal(t, []int{1, 5, 10}, cfg.Producers)
	assert.Equal(t, []int{1, 5, 10}, cfg.Consumers)
}
