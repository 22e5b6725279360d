// Package character composes profiles into a playable NPC: catalogue
// initialization, template layering, power draws, and recomputation of
// every derived rank.
package character

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/scox/internal/game/catalogue"
	"github.com/cory-johannsen/scox/internal/game/profile"
	"github.com/cory-johannsen/scox/internal/game/value"
)

// Character is a profile with an identity. Name, nature, and level are
// fixed at creation; the value maps stay mutable for the character's
// lifetime (rank edits, specialization and variety renames, recompute).
//
// ID is set by the persistence layer; uuid.Nil indicates an unsaved
// character.
type Character struct {
	ID      uuid.UUID        `json:"id"`
	Name    string           `json:"name"`
	Level   int              `json:"level"`
	Profile *profile.Profile `json:"profile"`
}

// New creates a character with the fixed catalogue applied: every
// catalogued attribute at its base rank, every side value at zero, and
// every skill constructed with its governing attribute and flags.
//
// Precondition: name must be non-empty; cat must validate.
// Postcondition: returns a character ready for profile loading, or a
// non-nil error.
func New(name string, nature profile.Nature, level int, cat *catalogue.Catalogue) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if cat == nil {
		return nil, errors.New("catalogue must not be nil")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	p := profile.New(nature)
	for _, spec := range cat.Attributes {
		p.Attributes.Set(spec.Key, value.NewAttribute(spec.Key, spec.BaseRank, spec.Invariant))
	}
	for _, key := range cat.SideValues {
		p.Values.Set(key, value.NewAttribute(key, 0, false))
	}

	sections := []struct {
		specs []catalogue.SkillSpec
		into  *profile.OrderedMap[*value.Skill]
	}{
		{cat.Primary, p.PrimarySkills},
		{cat.Secondary, p.SecondarySkills},
		{cat.Exotic, p.ExoticSkills},
	}
	for _, section := range sections {
		for _, spec := range section.specs {
			var governing *value.Attribute
			if spec.Governing != "" {
				governing, _ = p.Attributes.Get(spec.Governing)
			}
			section.into.Set(spec.Key, value.NewSkill(value.SkillConfig{
				Name:      spec.Key,
				Governing: governing,
				Specific:  spec.Specific,
				Multiple:  spec.Multiple,
				Acquired:  spec.Acquired,
				Invariant: spec.Invariant,
			}))
		}
	}

	return &Character{Name: name, Level: level, Profile: p}, nil
}

// Recompute walks every skill and re-derives its base rank from its
// governing attribute, then recomputes the side values:
//
//	PF = floor(Force + Volonte)      (real ranks)
//	PP = floor(Foi + Volonte)        (plus accumulated power draw awards)
//	wound = Force + 2 (Demon) or 3 (Angel)
//	BL = wound, BG = 2*wound, BF = 3*wound, MS = 4*wound (floored)
//
// Must be called after every load or manual edit that can change a
// governing attribute or a side-value dependency.
func (c *Character) Recompute() {
	p := c.Profile
	for _, section := range p.Skills() {
		for _, s := range section.Values() {
			s.ComputeBaseRank()
		}
	}

	force, okF := p.Attributes.Get(catalogue.AttrForce)
	volonte, okV := p.Attributes.Get(catalogue.AttrVolonte)
	foi, okO := p.Attributes.Get(catalogue.AttrFoi)
	if !okF || !okV || !okO {
		return
	}

	setSideBase(p, catalogue.SidePF, math.Floor(force.RealRank()+volonte.RealRank()))
	setSideBase(p, catalogue.SidePP, math.Floor(foi.RealRank()+volonte.RealRank()))

	wound := force.RealRank() + p.Nature.WoundBonus()
	setSideBase(p, catalogue.SideBL, math.Floor(wound))
	setSideBase(p, catalogue.SideBG, math.Floor(2*wound))
	setSideBase(p, catalogue.SideBF, math.Floor(3*wound))
	setSideBase(p, catalogue.SideMS, math.Floor(4*wound))
}

func setSideBase(p *profile.Profile, key string, v float64) {
	if side, ok := p.Values.Get(key); ok {
		side.BaseRank = int(v)
	}
}

// Snapshot serializes the full character object graph. Cross-references
// between skills, specializations, and governing attributes are stored as
// lookup keys and restored by FromSnapshot.
func (c *Character) Snapshot() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding character snapshot: %w", err)
	}
	return data, nil
}

// FromSnapshot reconstructs a character from a Snapshot payload,
// relinking the skill graph.
//
// Postcondition: the returned character's specialization and governing
// pointers are resolved against its own maps.
func FromSnapshot(data []byte) (*Character, error) {
	var c Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding character snapshot: %w", err)
	}
	if c.Profile == nil {
		return nil, errors.New("character snapshot has no profile")
	}
	if err := c.Profile.Relink(); err != nil {
		return nil, fmt.Errorf("relinking character snapshot: %w", err)
	}
	return &c, nil
}
