package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Station binds a worker pair to the belt slot it works at.
type Station struct {
	Belt int `json:"belt"` // index into Simulation.Belts
	Slot int `json:"slot"` // slot index on that belt
}

// Simulation drives the factory line. Every tick runs three phases in a
// fixed order: strategy decisions commit, assembly timers advance, belts
// shift and refill. Construction validates the Config; a constructed
// Simulation never errors while running.
type Simulation struct {
	Config Config

	Belts   []*ConveyorBelt
	Workers []*Worker
	// Stations holds one entry per pair: pair k is workers 2k and 2k+1,
	// stationed at Stations[k].
	Stations []Station
	Strategy Strategy

	RNG *PartitionedRNG
	// Clock counts executed ticks.
	Clock int
}

// NewSimulation validates cfg and builds the line: one belt with its own
// refill stream, WorkerPairs pairs with pair k stationed at slot k.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	belt := NewConveyorBelt(cfg.BeltLength, NewUniformRefill(rng.ForSubsystem(SubsystemBelt(0))))

	workers := make([]*Worker, 0, 2*cfg.WorkerPairs)
	stations := make([]Station, 0, cfg.WorkerPairs)
	for pair := 0; pair < cfg.WorkerPairs; pair++ {
		workers = append(workers,
			NewWorker(2*pair, cfg.AssemblyTime),
			NewWorker(2*pair+1, cfg.AssemblyTime),
		)
		stations = append(stations, Station{Belt: 0, Slot: pair})
	}

	return &Simulation{
		Config:   cfg,
		Belts:    []*ConveyorBelt{belt},
		Workers:  workers,
		Stations: stations,
		Strategy: NewStrategy(cfg.Strategy),
		RNG:      rng,
	}, nil
}

// Tick advances the line by one step.
//
// Phase order is fixed and is part of the engine's contract:
//
//  1. strategies commit their actions (per pair in roster order, worker 2k
//     before 2k+1, or one global action for GlobalStrategy),
//  2. every running assembly timer advances,
//  3. every belt shifts and refills.
//
// An assembly started in phase 1 with assembly time 1 therefore completes
// in phase 2 of the same tick.
func (s *Simulation) Tick() {
	if global, ok := s.Strategy.(GlobalStrategy); ok {
		global.ActGlobal(s.Workers, s.Belts, s.Stations)
	} else {
		for pair, station := range s.Stations {
			belt := s.Belts[station.Belt]
			first, second := s.Workers[2*pair], s.Workers[2*pair+1]
			s.Strategy.Act(first, second, belt, station.Slot)
			s.Strategy.Act(second, first, belt, station.Slot)
		}
	}

	for _, w := range s.Workers {
		w.StepAssembly()
	}
	for _, b := range s.Belts {
		b.StepWithRefill()
	}

	s.Clock++
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("[tick %07d] belt=%v missedA=%d missedB=%d",
			s.Clock, s.Belts[0].Slots, s.Belts[0].MissedA, s.Belts[0].MissedB)
	}
}

// Run executes ticks until the configured horizon. Callers that render
// between ticks drive Tick directly instead.
func (s *Simulation) Run() {
	for s.Clock < s.Config.Ticks {
		s.Tick()
	}
	logrus.Infof("simulation finished after %d ticks", s.Clock)
}
