package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/factory-sim/factory-sim/sim"
)

func TestApplyRunEnv_SetVariablesOverrideFlags(t *testing.T) {
	t.Setenv("BELT_LENGTH", "12")
	t.Setenv("NUM_WORKER_PAIRS", "4")
	t.Setenv("STRATEGY", "hivemind")
	t.Setenv("STEPS", "500")
	t.Setenv("ASSEMBLY_TIME", "2")
	t.Setenv("SEED", "99")
	t.Setenv("QUIET", "true")

	cfg := sim.DefaultConfig()
	quiet := false
	require.NoError(t, applyRunEnv(&cfg, &quiet))

	assert.Equal(t, 12, cfg.BeltLength)
	assert.Equal(t, 4, cfg.WorkerPairs)
	assert.Equal(t, sim.StrategyHiveMind, cfg.Strategy)
	assert.Equal(t, 500, cfg.Ticks)
	assert.Equal(t, 2, cfg.AssemblyTime)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.True(t, quiet)
}

func TestApplyRunEnv_AbsentVariablesLeaveFlagsAlone(t *testing.T) {
	cfg := sim.DefaultConfig()
	quiet := true
	require.NoError(t, applyRunEnv(&cfg, &quiet))

	assert.Equal(t, sim.DefaultConfig(), cfg)
	assert.True(t, quiet)
}

func TestApplyRunEnv_MalformedValue_Errors(t *testing.T) {
	t.Setenv("BELT_LENGTH", "a dozen")
	cfg := sim.DefaultConfig()
	quiet := false
	assert.Error(t, applyRunEnv(&cfg, &quiet))
}

func TestApplyLineEnv_SetVariablesOverrideFlags(t *testing.T) {
	t.Setenv("BELT_CAPACITY", "50")
	t.Setenv("NUM_PRODUCERS", "5")
	t.Setenv("NUM_CONSUMERS", "7")
	t.Setenv("SIMULATION_DURATION_SECONDS", "3")

	capacity, producers, consumers := 10, 2, 3
	duration := 15 * time.Second
	require.NoError(t, applyLineEnv(&capacity, &producers, &consumers, &duration))

	assert.Equal(t, 50, capacity)
	assert.Equal(t, 5, producers)
	assert.Equal(t, 7, consumers)
	assert.Equal(t, 3*time.Second, duration)
}

func TestApplyLineEnv_AbsentVariablesLeaveFlagsAlone(t *testing.T) {
	capacity, producers, consumers := 10, 2, 3
	duration := 15 * time.Second
	require.NoError(t, applyLineEnv(&capacity, &producers, &consumers, &duration))

	assert.Equal(t, 10, capacity)
	assert.Equal(t, 2, producers)
	assert.Equal(t, 3, consumers)
	assert.Equal(t, 15*time.Second, duration)
}
