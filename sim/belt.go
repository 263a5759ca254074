package sim

import (
	"fmt"
	"math/rand"
)

// RefillSource produces the item that enters a belt's head slot after each
// advance. Implementations must be deterministic for a given seed.
type RefillSource interface {
	Next() Item
}

// UniformRefill draws each refill independently and uniformly: component A
// with probability 1/3, component B with 1/3, nothing with 1/3.
type UniformRefill struct {
	rng *rand.Rand
}

// NewUniformRefill creates a UniformRefill drawing from rng.
func NewUniformRefill(rng *rand.Rand) *UniformRefill {
	return &UniformRefill{rng: rng}
}

// Next implements RefillSource for UniformRefill. Exactly one draw per call.
func (u *UniformRefill) Next() Item {
	switch u.rng.Intn(3) {
	case 0:
		return ItemA
	case 1:
		return ItemB
	default:
		return ItemNone
	}
}

// ScriptedRefill replays a fixed item sequence, then yields empty slots
// forever. Tests use it to drive exact belt states.
type ScriptedRefill struct {
	items []Item
	next  int
}

// NewScriptedRefill creates a ScriptedRefill that yields items in order.
func NewScriptedRefill(items ...Item) *ScriptedRefill {
	return &ScriptedRefill{items: items}
}

// Next implements RefillSource for ScriptedRefill.
func (s *ScriptedRefill) Next() Item {
	if s.next >= len(s.items) {
		return ItemNone
	}
	it := s.items[s.next]
	s.next++
	return it
}

// CountingRefill wraps another source and tallies the components it hands
// out. Conservation checks compare the tallies against missed, held,
// on-belt and consumed counts.
type CountingRefill struct {
	Source RefillSource
	DrawnA int
	DrawnB int
}

// Next implements RefillSource for CountingRefill.
func (c *CountingRefill) Next() Item {
	it := c.Source.Next()
	switch it {
	case ItemA:
		c.DrawnA++
	case ItemB:
		c.DrawnB++
	}
	return it
}

// ConveyorBelt is a fixed-length slot array that advances one position per
// tick. Slot 0 is the head, where refills enter; the last slot is the tail,
// where items fall off. Length never changes after construction.
type ConveyorBelt struct {
	Slots []Item

	// MissedA and MissedB count components lost off the tail. A finished
	// product falling off is removed for free and never counted.
	MissedA int
	MissedB int

	refill RefillSource
}

// NewConveyorBelt creates an empty belt of the given length. The refill
// source feeds StepWithRefill; Step alone never consults it.
// Panics on non-positive length (Config.Validate rejects it first).
func NewConveyorBelt(length int, refill RefillSource) *ConveyorBelt {
	if length <= 0 {
		panic(fmt.Sprintf("belt length must be positive, got %d", length))
	}
	return &ConveyorBelt{
		Slots:  make([]Item, length),
		refill: refill,
	}
}

// Len returns the number of slots.
func (b *ConveyorBelt) Len() int {
	return len(b.Slots)
}

// IsEmpty reports whether every slot is empty.
func (b *ConveyorBelt) IsEmpty() bool {
	for _, it := range b.Slots {
		if it != ItemNone {
			return false
		}
	}
	return true
}

// CountItem returns how many slots currently hold item.
func (b *ConveyorBelt) CountItem(item Item) int {
	n := 0
	for _, it := range b.Slots {
		if it == item {
			n++
		}
	}
	return n
}

// Step advances the belt one position: the tail item falls off, every other
// item shifts one slot toward the tail, and the head becomes empty.
// A fallen component is counted missed and returned. A fallen product was
// already counted when assembled, so it is dropped for free and reported
// as ItemNone.
func (b *ConveyorBelt) Step() Item {
	fallen := b.Slots[len(b.Slots)-1]
	copy(b.Slots[1:], b.Slots[:len(b.Slots)-1])
	b.Slots[0] = ItemNone

	switch fallen {
	case ItemA:
		b.MissedA++
	case ItemB:
		b.MissedB++
	case ItemC:
		return ItemNone
	}
	return fallen
}

// StepWithRefill advances the belt and fills the head from the refill
// source. Exactly one draw per call, whatever falls off, so a run's draw
// sequence depends only on tick count.
func (b *ConveyorBelt) StepWithRefill() Item {
	fallen := b.Step()
	b.Slots[0] = b.refill.Next()
	return fallen
}

// PushItem places item in the head slot unconditionally, overwriting
// whatever is there.
func (b *ConveyorBelt) PushItem(item Item) {
	b.Slots[0] = item
}
