package value

import "fmt"

// Attribute is a named Value. Attributes are tracked in half-point
// increments: two increments of Rank equal one full game point.
//
// An invariant attribute never changes rank and produces no display form.
type Attribute struct {
	Value
	Name      string `json:"name"`
	Invariant bool   `json:"invariant,omitempty"`
}

// NewAttribute creates an attribute with the given derived base rank.
func NewAttribute(name string, baseRank int, invariant bool) *Attribute {
	return &Attribute{
		Value:     Value{BaseRank: baseRank},
		Name:      name,
		Invariant: invariant,
	}
}

// IncrementRank adds one half-point of invested rank.
// No-op on invariant attributes.
func (a *Attribute) IncrementRank() {
	if a.Invariant {
		return
	}
	a.Rank++
}

// DecrementRank removes one half-point of invested rank.
// No-op on invariant attributes and when Rank is already zero.
func (a *Attribute) DecrementRank() {
	if a.Invariant || a.Rank == 0 {
		return
	}
	a.Rank--
}

// IncreaseRank bulk-adjusts the invested rank by step half-points. This is
// the administrative path used during profile merges; it bypasses the
// per-unit checks of IncrementRank. No-op on invariant attributes.
// The resulting rank clamps at zero.
func (a *Attribute) IncreaseRank(step int) {
	if a.Invariant {
		return
	}
	a.Rank += step
	if a.Rank < 0 {
		a.Rank = 0
	}
}

// RealRank returns the display-oriented value: FullRank halved, so a full
// rank of 5 reads as 2.5 game points.
func (a *Attribute) RealRank() float64 {
	return float64(a.FullRank()) / 2
}

// DisplayRank renders the attribute for a character sheet: the truncated
// real rank, followed by "+" when the full rank holds an odd half-point
// and a space otherwise. Invariant attributes have no display form and
// yield the empty string.
//
// Postcondition: Returns "" iff a.Invariant.
func (a *Attribute) DisplayRank() string {
	if a.Invariant {
		return ""
	}
	if a.FullRank()%2 != 0 {
		return fmt.Sprintf("%d+", a.FullRank()/2)
	}
	return fmt.Sprintf("%d ", a.FullRank()/2)
}
