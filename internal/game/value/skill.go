package value

// DefaultSkillBase is the flat base rank of a non-invariant skill with no
// governing attribute.
const DefaultSkillBase = 2

// Skill is an attribute-like value with a derivation rule and usability
// gates. A specific skill owns a nested specialization Skill; a multiple
// skill tracks named varieties instead. A skill is never both.
//
// Cross-references (governing attribute, specialization master) are stored
// twice: as lookup keys for serialization, and as in-memory pointers that
// the owning profile relinks after decoding a snapshot.
//
// Invariant: when Specialization is non-nil,
// Specialization.FullRank() >= FullRank() after every mutation.
type Skill struct {
	Attribute

	// GoverningName is the key of the governing attribute, empty when the
	// skill is ungoverned.
	GoverningName string `json:"governing,omitempty"`
	// Governing is the resolved governing attribute. Not serialized;
	// restored by Profile.Relink.
	Governing *Attribute `json:"-"`

	// Acquired skills are unusable until at least one rank is invested,
	// or their specialization or variety set makes them usable.
	Acquired bool `json:"acquired,omitempty"`
	// Specific skills carry a specialization sub-skill.
	Specific bool `json:"specific,omitempty"`
	// Multiple skills track free-text varieties.
	Multiple bool `json:"multiple,omitempty"`

	// Varieties holds the named instances of a multiple skill, in the
	// order they were recorded.
	Varieties []string `json:"varieties,omitempty"`

	// Specialization is the nested sub-skill of a specific skill.
	Specialization *Skill `json:"specialization,omitempty"`
	// MasterName is set only on specialization instances: the key of the
	// owning skill.
	MasterName string `json:"master,omitempty"`
	// Master is the resolved owning skill of a specialization. Not
	// serialized; restored by Profile.Relink.
	Master *Skill `json:"-"`
}

// SkillConfig describes a skill to construct. Exactly one of Specific and
// Multiple may be set.
type SkillConfig struct {
	Name      string
	Governing *Attribute // nil for ungoverned skills
	Specific  bool
	Multiple  bool
	Acquired  bool
	Invariant bool
}

// NewSkill builds a skill from cfg. Specific skills receive a
// specialization sharing the same governing attribute, with its master
// links already set. Base ranks start at their derived value.
func NewSkill(cfg SkillConfig) *Skill {
	s := &Skill{
		Attribute: Attribute{
			Name:      cfg.Name,
			Invariant: cfg.Invariant,
		},
		Governing: cfg.Governing,
		Acquired:  cfg.Acquired,
		Specific:  cfg.Specific,
		Multiple:  cfg.Multiple,
	}
	if cfg.Governing != nil {
		s.GoverningName = cfg.Governing.Name
	}
	if cfg.Specific {
		s.Specialization = &Skill{
			Attribute: Attribute{
				Name:      cfg.Name,
				Invariant: cfg.Invariant,
			},
			Governing:     cfg.Governing,
			GoverningName: s.GoverningName,
			Acquired:      cfg.Acquired,
			MasterName:    cfg.Name,
			Master:        s,
		}
	}
	s.ComputeBaseRank()
	return s
}

// IncrementRank adds one half-point of invested rank. No-op when the skill
// is invariant, or when a specialization exists whose full rank is not
// strictly greater than this skill's.
func (s *Skill) IncrementRank() {
	if s.Invariant {
		return
	}
	if s.Specialization != nil && s.Specialization.FullRank() <= s.FullRank() {
		return
	}
	s.Rank++
}

// DecrementRank removes one half-point of invested rank. No-op when the
// skill is invariant or at zero rank, or, on a specialization, when its
// full rank would fall to or below its master's.
func (s *Skill) DecrementRank() {
	if s.Invariant || s.Rank == 0 {
		return
	}
	if s.Master != nil && s.Master.FullRank() >= s.FullRank() {
		return
	}
	s.Rank--
}

// ComputeBaseRank derives the skill's base rank: half the governing
// attribute's full rank (floored) when governed, DefaultSkillBase when
// ungoverned, zero when invariant. Always cascades into an existing
// specialization.
//
// Postcondition: idempotent for an unchanged governing attribute.
func (s *Skill) ComputeBaseRank() {
	switch {
	case s.Invariant:
		s.BaseRank = 0
	case s.Governing != nil:
		s.BaseRank = s.Governing.FullRank() / 2
	default:
		s.BaseRank = DefaultSkillBase
	}
	if s.Specialization != nil {
		s.Specialization.ComputeBaseRank()
	}
}

// IsUsable reports whether the skill can be rolled at all. Non-acquired
// skills and skills with invested rank are always usable; an acquired
// skill at zero rank is usable only through a usable specialization or a
// recorded variety.
func (s *Skill) IsUsable() bool {
	if !s.Acquired || s.Rank != 0 {
		return true
	}
	if s.Specific && s.Specialization != nil {
		return s.Specialization.IsUsable()
	}
	if s.Multiple {
		return len(s.Varieties) > 0
	}
	return false
}

// AddVariety records a named instance of a multiple skill. Duplicates and
// calls on non-multiple skills are no-ops; the return value reports
// whether the variety was recorded.
func (s *Skill) AddVariety(name string) bool {
	if !s.Multiple || name == "" {
		return false
	}
	for _, v := range s.Varieties {
		if v == name {
			return false
		}
	}
	s.Varieties = append(s.Varieties, name)
	return true
}
