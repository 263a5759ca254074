package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ActionKind enumerates the mutations a strategy can commit.
type ActionKind uint8

const (
	// ActionPlaceProduct puts a held product into an empty station slot.
	ActionPlaceProduct ActionKind = iota
	// ActionStartAssembly begins the worker's assembly countdown.
	ActionStartAssembly
	// ActionGiveComponent hands a surplus component to the pair partner.
	ActionGiveComponent
	// ActionPickupComponent takes a component out of a belt slot.
	ActionPickupComponent
)

// String returns the action name used in logs.
func (k ActionKind) String() string {
	switch k {
	case ActionPlaceProduct:
		return "place_product"
	case ActionStartAssembly:
		return "start_assembly"
	case ActionGiveComponent:
		return "give_component"
	case ActionPickupComponent:
		return "pickup_component"
	default:
		panic(fmt.Sprintf("unknown action kind %d", uint8(k)))
	}
}

// Action is one committed worker mutation. Strategies build candidate
// Actions, pick one, and Apply it. Apply performs exactly the mutation the
// kind describes and nothing else.
type Action struct {
	Kind    ActionKind
	Worker  *Worker
	Partner *Worker       // give target, nil for other kinds
	Belt    *ConveyorBelt // place/pickup belt, nil for other kinds
	Slot    int           // place/pickup slot index
	Item    Item          // component given or picked up
}

// Apply commits the action.
func (a Action) Apply() {
	switch a.Kind {
	case ActionPlaceProduct:
		a.Belt.Slots[a.Slot] = a.Worker.PlaceProduct()
		logrus.Debugf("worker %d placed a product in slot %d", a.Worker.ID, a.Slot)
	case ActionStartAssembly:
		a.Worker.StartAssembly()
		logrus.Debugf("worker %d started assembling", a.Worker.ID)
	case ActionGiveComponent:
		if a.Worker.HandLeft == a.Item {
			a.Worker.HandLeft = ItemNone
		} else {
			a.Worker.HandRight = ItemNone
		}
		a.Partner.Receive(a.Item)
		logrus.Debugf("worker %d gave %s to worker %d", a.Worker.ID, a.Item, a.Partner.ID)
	case ActionPickupComponent:
		a.Belt.Slots[a.Slot] = ItemNone
		a.Worker.Pickup(a.Item)
		logrus.Debugf("worker %d picked up %s from slot %d", a.Worker.ID, a.Item, a.Slot)
	default:
		panic(fmt.Sprintf("unhandled action kind %q", a.Kind))
	}
}

// Action scores for the scored strategies (Team, HiveMind). Higher wins;
// ties resolve to the first candidate in enumeration order.
const (
	scorePlaceProduct  = 100
	scoreStartAssembly = 90
	scoreGiveComponent = 80
	scorePickupBase    = 70

	// scoreSelfNeed is added to a pickup when the acting worker itself,
	// not merely its partner, needs the component.
	scoreSelfNeed = 5
)

// scoredAction pairs a candidate action with its score.
type scoredAction struct {
	score  int
	action Action
}

// candidateActions enumerates the scored actions available to worker at its
// station, in fixed order: place, assemble, give (left hand before right),
// then pickups by ascending slot index. scanAll widens the pickup scan from
// the station slot to every slot of the belt, the score falling by one per
// slot of distance from the station. Assembling workers have no candidates.
func candidateActions(worker, partner *Worker, belt *ConveyorBelt, stationSlot int, scanAll bool) []scoredAction {
	if worker.IsAssembling() {
		return nil
	}

	var candidates []scoredAction

	if worker.IsHoldingProduct() && belt.Slots[stationSlot] == ItemNone {
		candidates = append(candidates, scoredAction{
			score:  scorePlaceProduct,
			action: Action{Kind: ActionPlaceProduct, Worker: worker, Belt: belt, Slot: stationSlot},
		})
	}

	if worker.CanAssemble() {
		candidates = append(candidates, scoredAction{
			score:  scoreStartAssembly,
			action: Action{Kind: ActionStartAssembly, Worker: worker},
		})
	}

	if partner != nil && !partner.IsFull() {
		for _, item := range []Item{worker.HandLeft, worker.HandRight} {
			if item.IsComponent() && partner.NeedsComponent(item) && hasSurplus(worker, item) {
				candidates = append(candidates, scoredAction{
					score:  scoreGiveComponent,
					action: Action{Kind: ActionGiveComponent, Worker: worker, Partner: partner, Item: item},
				})
				break // one hand-off per turn
			}
		}
	}

	if !worker.IsFull() {
		lo, hi := stationSlot, stationSlot
		if scanAll {
			lo, hi = 0, belt.Len()-1
		}
		for slot := lo; slot <= hi; slot++ {
			item := belt.Slots[slot]
			if !item.IsComponent() {
				continue
			}
			selfNeed := worker.NeedsComponent(item)
			partnerNeed := partner != nil && partner.NeedsComponent(item)
			if !selfNeed && !partnerNeed {
				continue
			}
			score := scorePickupBase - slotDistance(slot, stationSlot)
			if selfNeed {
				score += scoreSelfNeed
			}
			candidates = append(candidates, scoredAction{
				score:  score,
				action: Action{Kind: ActionPickupComponent, Worker: worker, Belt: belt, Slot: slot, Item: item},
			})
		}
	}

	return candidates
}

// hasSurplus reports whether w can spare item without stalling its own
// assembly: both hands hold item, or the other hand holds a finished
// product.
func hasSurplus(w *Worker, item Item) bool {
	switch item {
	case w.HandLeft:
		return w.HandRight == item || w.HandRight == ItemC
	case w.HandRight:
		return w.HandLeft == item || w.HandLeft == ItemC
	default:
		return false
	}
}

// bestAction returns the highest-scoring candidate. Ties resolve to the
// first occurrence (strict >), keeping selection deterministic.
func bestAction(candidates []scoredAction) (Action, bool) {
	if len(candidates) == 0 {
		return Action{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best.action, true
}

func slotDistance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
