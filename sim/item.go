package sim

import (
	"encoding/json"
	"fmt"
)

// Item is the content of one belt slot or one worker hand.
type Item uint8

const (
	// ItemNone marks an empty slot or an empty hand.
	ItemNone Item = iota
	// ItemA is raw component A.
	ItemA
	// ItemB is raw component B.
	ItemB
	// ItemC is a finished product, assembled from one A and one B.
	ItemC
)

// IsComponent reports whether the item is a raw component (A or B).
func (it Item) IsComponent() bool {
	return it == ItemA || it == ItemB
}

// IsProduct reports whether the item is a finished product.
func (it Item) IsProduct() bool {
	return it == ItemC
}

// String returns the short form used in logs and rendered views.
func (it Item) String() string {
	switch it {
	case ItemNone:
		return "empty"
	case ItemA:
		return "A"
	case ItemB:
		return "B"
	case ItemC:
		return "C"
	default:
		panic(fmt.Sprintf("unknown item %d", uint8(it)))
	}
}

// MarshalJSON encodes the item as its string form, so snapshots read as
// "A"/"B"/"C"/"empty" instead of raw enum values.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.String())
}
