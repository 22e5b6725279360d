// Package profile holds a character's value maps and implements profile
// archive loading: parsing the tabular sections of a .scx archive and
// merging them additively into the existing catalogue.
package profile

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/scox/internal/game/catalogue"
	"github.com/cory-johannsen/scox/internal/game/power"
	"github.com/cory-johannsen/scox/internal/game/value"
)

// Nature is the character's side of the war.
type Nature string

// The two playable natures.
const (
	NatureAngel Nature = "Angel"
	NatureDemon Nature = "Demon"
)

// ParseNature converts a case-insensitive nature name.
func ParseNature(s string) (Nature, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "angel":
		return NatureAngel, nil
	case "demon":
		return NatureDemon, nil
	default:
		return "", fmt.Errorf("unknown nature %q: must be Angel or Demon", s)
	}
}

// WoundBonus returns the flat bonus added to Force when deriving wound
// thresholds: demons are tougher in body, angels in spirit.
func (n Nature) WoundBonus() float64 {
	switch n {
	case NatureDemon:
		return 2
	case NatureAngel:
		return 3
	default:
		return 0
	}
}

// Profile is the full set of ordered value maps backing a character:
// attributes, side values, the three skill sections, and powers. Insertion
// order is significant for sheet layout, not for correctness.
type Profile struct {
	Nature Nature `json:"nature"`
	// Superior is the name of the loaded superior template, empty until a
	// superior profile has been applied.
	Superior string `json:"superior,omitempty"`

	Attributes      *OrderedMap[*value.Attribute] `json:"attributes"`
	Values          *OrderedMap[*value.Attribute] `json:"values"`
	PrimarySkills   *OrderedMap[*value.Skill]     `json:"primary_skills"`
	SecondarySkills *OrderedMap[*value.Skill]     `json:"secondary_skills"`
	ExoticSkills    *OrderedMap[*value.Skill]     `json:"exotic_skills"`
	Powers          *OrderedMap[*value.Power]     `json:"powers"`

	// PowerTable is built only when an archetype profile is loaded. It is
	// a creation-time artifact, not part of the persisted state.
	PowerTable *power.Table `json:"-"`
}

// New returns an empty profile of the given nature.
func New(nature Nature) *Profile {
	return &Profile{
		Nature:          nature,
		Attributes:      NewOrderedMap[*value.Attribute](),
		Values:          NewOrderedMap[*value.Attribute](),
		PrimarySkills:   NewOrderedMap[*value.Skill](),
		SecondarySkills: NewOrderedMap[*value.Skill](),
		ExoticSkills:    NewOrderedMap[*value.Skill](),
		Powers:          NewOrderedMap[*value.Power](),
	}
}

// HasPower reports whether a power with the given name is already owned.
func (p *Profile) HasPower(name string) bool {
	return p.Powers.Has(name)
}

// AddPower records a power, assigning it the next stable ordinal position.
func (p *Profile) AddPower(pw *value.Power) {
	if !p.Powers.Has(pw.Name) {
		pw.Ordinal = p.Powers.Len()
	}
	p.Powers.Set(pw.Name, pw)
}

// AwardResource increases the PP side value pool. No-op when the profile
// has no PP side value (never the case for catalogued profiles).
func (p *Profile) AwardResource(pp int) {
	if v, ok := p.Values.Get(catalogue.SidePP); ok {
		v.IncreaseRank(pp)
	}
}

// Skills returns the primary, secondary, and exotic skill maps, in that
// order. Convenience for callers that walk every skill.
func (p *Profile) Skills() []*OrderedMap[*value.Skill] {
	return []*OrderedMap[*value.Skill]{p.PrimarySkills, p.SecondarySkills, p.ExoticSkills}
}

// Relink restores the in-memory pointers a decoded snapshot cannot carry:
// each skill's governing attribute and each specialization's master.
//
// Postcondition: returns an error naming the first skill whose governing
// attribute key resolves to nothing.
func (p *Profile) Relink() error {
	for _, section := range p.Skills() {
		for _, s := range section.Values() {
			if err := p.relinkSkill(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Profile) relinkSkill(s *value.Skill) error {
	if s.GoverningName != "" {
		attr, ok := p.Attributes.Get(s.GoverningName)
		if !ok {
			return fmt.Errorf("skill %q: governing attribute %q not found", s.Name, s.GoverningName)
		}
		s.Governing = attr
	}
	if s.Specialization != nil {
		s.Specialization.Master = s
		return p.relinkSkill(s.Specialization)
	}
	return nil
}
