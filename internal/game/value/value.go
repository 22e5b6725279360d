// Package value defines the rank accounting model shared by every number
// on a scox character sheet: attributes, skills, powers, and side values.
//
// Every entity carries two integers: a derived base rank, recomputed from
// the entity's dependencies, and an invested rank accumulated through
// profile merges and player edits. The sum of the two is the full rank,
// the unit all derivation rules operate on. Attributes are tracked in
// half-points: two full-rank steps equal one displayed game point.
package value

// Value is the base rank accounting record.
//
// Invariant: Rank is never negative.
type Value struct {
	// BaseRank is the derived portion of the value, recomputed by
	// derivation rules (governing attributes, side-value formulas).
	BaseRank int `json:"base_rank"`
	// Rank is the invested portion, accumulated via merges and edits.
	Rank int `json:"rank"`
}

// FullRank returns BaseRank + Rank, the internal accounting unit.
func (v *Value) FullRank() int {
	return v.BaseRank + v.Rank
}

// SetRank replaces the invested rank outright. Used by side-value merges,
// which set rather than accumulate. Negative inputs clamp to zero.
func (v *Value) SetRank(rank int) {
	if rank < 0 {
		rank = 0
	}
	v.Rank = rank
}
