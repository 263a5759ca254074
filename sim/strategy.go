package sim

import (
	"fmt"
	"sort"
)

// Strategy decides and commits at most one action for a worker in a turn.
// Act receives the worker's pair partner and the slot the pair is stationed
// at. Implementations read state only through the passed views and must not
// retain them across calls.
type Strategy interface {
	Act(worker, partner *Worker, belt *ConveyorBelt, stationSlot int)
}

// GlobalStrategy is the optional capability of strategies that decide for
// the whole roster at once, committing a single action per tick system-wide.
// The driver checks for it explicitly each tick instead of calling Act per
// worker.
type GlobalStrategy interface {
	ActGlobal(workers []*Worker, belts []*ConveyorBelt, stations []Station)
}

// Strategy names accepted by NewStrategy and Config.Validate.
const (
	StrategyIndividual = "individual"
	StrategyTeam       = "team"
	StrategyHiveMind   = "hivemind"
)

// ValidStrategies is the set of recognized strategy names.
// Shared by Config.Validate and NewStrategy to avoid duplication.
var ValidStrategies = map[string]bool{
	StrategyIndividual: true,
	StrategyTeam:       true,
	StrategyHiveMind:   true,
}

// IsValidStrategy reports whether name is a recognized strategy name.
func IsValidStrategy(name string) bool {
	return ValidStrategies[name]
}

// ValidStrategyNames returns the recognized strategy names in sorted order.
func ValidStrategyNames() []string {
	names := make([]string, 0, len(ValidStrategies))
	for name := range ValidStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewStrategy creates a strategy by name. Valid names are defined in
// ValidStrategies; Config.Validate rejects anything else before
// construction. Panics on unrecognized names.
func NewStrategy(name string) Strategy {
	if !IsValidStrategy(name) {
		panic(fmt.Sprintf("unknown strategy %q", name))
	}
	switch name {
	case StrategyIndividual:
		return &Individual{}
	case StrategyTeam:
		return &Team{}
	case StrategyHiveMind:
		return &HiveMind{}
	default:
		panic(fmt.Sprintf("unhandled strategy %q", name))
	}
}

// Individual is the baseline strategy: every worker acts alone against its
// own station slot, following a fixed priority cascade. First match wins:
//
//  1. an assembling worker waits,
//  2. a held product goes into an empty station slot,
//  3. a worker holding both components starts assembling,
//  4. a needed component in the station slot is picked up.
type Individual struct{}

// Act implements Strategy for Individual.
func (in *Individual) Act(worker, partner *Worker, belt *ConveyorBelt, stationSlot int) {
	if worker.IsAssembling() {
		return
	}

	if worker.IsHoldingProduct() && belt.Slots[stationSlot] == ItemNone {
		Action{Kind: ActionPlaceProduct, Worker: worker, Belt: belt, Slot: stationSlot}.Apply()
		return
	}

	if worker.CanAssemble() {
		Action{Kind: ActionStartAssembly, Worker: worker}.Apply()
		return
	}

	if !worker.IsFull() {
		item := belt.Slots[stationSlot]
		if item.IsComponent() && worker.NeedsComponent(item) {
			Action{Kind: ActionPickupComponent, Worker: worker, Belt: belt, Slot: stationSlot, Item: item}.Apply()
		}
	}
}

// Team scores every action available to the acting worker, including
// cooperative hand-offs to its pair partner, and commits the single best
// one. The pair's station slot is the only belt position it touches.
// Scores are in action.go; ties resolve to the first enumerated candidate.
type Team struct{}

// Act implements Strategy for Team.
func (t *Team) Act(worker, partner *Worker, belt *ConveyorBelt, stationSlot int) {
	if action, ok := bestAction(candidateActions(worker, partner, belt, stationSlot, false)); ok {
		action.Apply()
	}
}

// HiveMind scores the candidates of every worker in the system, pickups
// scanned across all slots of the worker's belt with the score decaying by
// distance from its station, then commits only the single best action in
// the whole system this tick. Everyone else idles. One action per tick is
// the point of the strategy: the report command makes the resulting
// throughput collapse on larger rosters visible.
type HiveMind struct{}

// Act implements Strategy for HiveMind. Decisions are global, so the
// per-worker entry point commits nothing; the driver uses ActGlobal.
func (h *HiveMind) Act(worker, partner *Worker, belt *ConveyorBelt, stationSlot int) {
}

// ActGlobal implements GlobalStrategy for HiveMind. Workers are laid out in
// pair order (2k and 2k+1 form pair k, stationed at stations[k]); candidates
// are enumerated in roster order, so equal scores resolve to the earliest
// worker's earliest candidate.
func (h *HiveMind) ActGlobal(workers []*Worker, belts []*ConveyorBelt, stations []Station) {
	if len(workers) != 2*len(stations) {
		panic(fmt.Sprintf("HiveMind.ActGlobal: %d workers for %d stations", len(workers), len(stations)))
	}

	var (
		best      Action
		bestScore int
		found     bool
	)
	for i, worker := range workers {
		station := stations[i/2]
		partner := workers[i^1]
		belt := belts[station.Belt]
		for _, c := range candidateActions(worker, partner, belt, station.Slot, true) {
			if !found || c.score > bestScore {
				best, bestScore, found = c.action, c.score, true
			}
		}
	}
	if found {
		best.Apply()
	}
}
