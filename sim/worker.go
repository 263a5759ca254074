package sim

import "fmt"

// Worker is one assembly worker: two hands and an assembly countdown.
// Workers are pure state; every decision lives in a Strategy, every
// mutation goes through an Action or the driver's timer phase.
type Worker struct {
	ID        int
	HandLeft  Item
	HandRight Item

	// AssemblyTime is the configured number of ticks one product takes.
	// AssemblingTimeLeft counts down from it; zero means no assembly is
	// running.
	AssemblyTime       int
	AssemblingTimeLeft int

	ProductsMade int
}

// NewWorker creates an empty-handed worker.
func NewWorker(id, assemblyTime int) *Worker {
	return &Worker{ID: id, AssemblyTime: assemblyTime}
}

// EmptyHanded reports whether both hands are free.
func (w *Worker) EmptyHanded() bool {
	return w.HandLeft == ItemNone && w.HandRight == ItemNone
}

// IsFull reports whether both hands are occupied.
func (w *Worker) IsFull() bool {
	return w.HandLeft != ItemNone && w.HandRight != ItemNone
}

// IsHolding reports whether either hand holds item.
func (w *Worker) IsHolding(item Item) bool {
	return w.HandLeft == item || w.HandRight == item
}

// NeedsComponent reports whether taking item would progress this worker
// toward a product: with empty hands any component is needed, with one
// component in hand only its counterpart is. Full, assembling and
// product-holding workers need nothing.
func (w *Worker) NeedsComponent(item Item) bool {
	if !item.IsComponent() {
		return false
	}
	if w.IsFull() || w.IsAssembling() || w.IsHoldingProduct() {
		return false
	}
	if w.EmptyHanded() {
		return true
	}
	held := w.HandLeft
	if held == ItemNone {
		held = w.HandRight
	}
	return held != item
}

// Needs returns the components the worker currently needs, always in A,B
// order so callers iterate deterministically.
func (w *Worker) Needs() []Item {
	var needs []Item
	for _, c := range []Item{ItemA, ItemB} {
		if w.NeedsComponent(c) {
			needs = append(needs, c)
		}
	}
	return needs
}

// Pickup places item in the first free hand, left before right.
// Both hands full is a strategy bug: strategies gate pickups on !IsFull,
// so this panics rather than dropping the item.
func (w *Worker) Pickup(item Item) {
	switch {
	case w.HandLeft == ItemNone:
		w.HandLeft = item
	case w.HandRight == ItemNone:
		w.HandRight = item
	default:
		panic(fmt.Sprintf("worker %d: pickup %s with both hands full", w.ID, item))
	}
}

// Receive accepts a component handed over by the partner. Same filling
// rule as Pickup.
func (w *Worker) Receive(item Item) {
	w.Pickup(item)
}

// CanAssemble reports whether the worker holds exactly one A and one B and
// has no assembly running.
func (w *Worker) CanAssemble() bool {
	if w.IsAssembling() {
		return false
	}
	return (w.HandLeft == ItemA && w.HandRight == ItemB) ||
		(w.HandLeft == ItemB && w.HandRight == ItemA)
}

// StartAssembly begins the countdown. No-op unless CanAssemble.
func (w *Worker) StartAssembly() {
	if w.CanAssemble() {
		w.AssemblingTimeLeft = w.AssemblyTime
	}
}

// IsAssembling reports whether an assembly is running. While it runs the
// hands stay locked on the consumed components.
func (w *Worker) IsAssembling() bool {
	return w.AssemblingTimeLeft > 0
}

// StepAssembly advances a running assembly by one tick. On reaching zero
// the components are consumed: the left hand holds the product, the right
// empties, and ProductsMade increments. Fires exactly once per assembly;
// a worker not assembling is untouched.
func (w *Worker) StepAssembly() {
	if !w.IsAssembling() {
		return
	}
	w.AssemblingTimeLeft--
	if w.AssemblingTimeLeft == 0 {
		w.HandLeft = ItemC
		w.HandRight = ItemNone
		w.ProductsMade++
	}
}

// IsHoldingProduct reports whether either hand holds a finished product.
func (w *Worker) IsHoldingProduct() bool {
	return w.HandLeft == ItemC || w.HandRight == ItemC
}

// PlaceProduct clears the hand holding the product and returns ItemC, or
// returns ItemNone when no product is held.
func (w *Worker) PlaceProduct() Item {
	switch {
	case w.HandLeft == ItemC:
		w.HandLeft = ItemNone
	case w.HandRight == ItemC:
		w.HandRight = ItemNone
	default:
		return ItemNone
	}
	return ItemC
}
