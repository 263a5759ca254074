// Package sim provides the deterministic tick engine for the factory line.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - belt.go: the conveyor automaton (shift, drop, refill) and refill sources
//   - worker.go: the two-handed assembly state machine
//   - simulator.go: the tick loop (strategies, then timers, then belt advance)
//
// # Architecture
//
// The sim package holds the engine; the surrounding tooling lives in
// sub-packages:
//   - sim/render/: terminal rendering of Snapshots
//   - sim/report/: parameter sweeps and ranked configuration reports
//   - sim/conveyor/: the goroutine producer/consumer line variant
//   - sim/health/: liveness/readiness probes, metrics endpoint, live feed
//
// # Key Interfaces
//
// The extension points are single-method interfaces:
//   - Strategy: per-worker decisions, at most one committed action per call
//   - GlobalStrategy: optional whole-roster capability, one action per tick
//   - RefillSource: what enters a belt's head slot after each advance
//
// # Determinism
//
// A Simulation draws randomness only through PartitionedRNG, one subsystem
// stream per belt, so equal seeds and configs reproduce runs bit for bit.
// The engine is single-goroutine; nothing in this package locks.
package sim
