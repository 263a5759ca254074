package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemBelt returns the RNG subsystem name for belt N. Each belt draws
// its refill items from its own stream, so adding a belt never shifts the
// sequence another belt sees.
func SubsystemBelt(index int) string {
	return fmt.Sprintf("belt_%d", index)
}

// SubsystemLineProducer returns the RNG subsystem name for producer N of the
// goroutine line. Each line worker jitters its think time from its own
// stream, requested before the goroutine starts.
func SubsystemLineProducer(index int) string {
	return fmt.Sprintf("line_producer_%d", index)
}

// SubsystemLineConsumer returns the RNG subsystem name for consumer N of the
// goroutine line.
func SubsystemLineConsumer(index int) string {
	return fmt.Sprintf("line_consumer_%d", index)
}

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. The tick engine is single-goroutine; the
// goroutine line in sim/conveyor requests its subsystem streams up front.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
