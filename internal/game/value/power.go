package value

// Power is a supernatural ability granted by an archetype. Flat powers are
// invariant all-or-nothing grants; ranked powers carry a base rank of
// twice their table-specified rank (table ranks are full game points,
// internal accounting is half-points).
type Power struct {
	Attribute

	// Cost is the human-readable activation cost descriptor, e.g. "2 PP".
	Cost string `json:"cost"`
	// Ordinal is the stable position of the power in acquisition order,
	// used downstream for sheet layout.
	Ordinal int `json:"ordinal"`
}

// NewFlatPower creates an invariant, non-rankable power grant.
func NewFlatPower(name, cost string) *Power {
	return &Power{
		Attribute: Attribute{Name: name, Invariant: true},
		Cost:      cost,
	}
}

// NewRankedPower creates a power whose base rank is twice the given
// table rank.
func NewRankedPower(name, cost string, rank int) *Power {
	return &Power{
		Attribute: Attribute{
			Value: Value{BaseRank: 2 * rank},
			Name:  name,
		},
		Cost: cost,
	}
}
