// Package catalogue defines the fixed rulebook catalogue a character
// starts from: the six attributes, the side values, and the primary,
// secondary, and exotic skill tables with their governing attributes and
// capability flags. The built-in catalogue follows the INS/MV rulebook;
// custom catalogues can be loaded from YAML files.
package catalogue

import (
	"fmt"
	"strings"
)

// Attribute keys of the built-in catalogue.
const (
	AttrForce      = "Force"
	AttrAgilite    = "Agilite"
	AttrPerception = "Perception"
	AttrVolonte    = "Volonte"
	AttrPresence   = "Presence"
	AttrFoi        = "Foi"
)

// Side value keys. PF is the action point pool, PP the power point pool,
// BL/BG/BF/MS the light/severe/fatal wound and death thresholds.
const (
	SidePF = "PF"
	SidePP = "PP"
	SideBL = "BL"
	SideBG = "BG"
	SideBF = "BF"
	SideMS = "MS"
)

// baseAttributeRank is the starting base rank of every attribute
// (2 game points in half-point accounting).
const baseAttributeRank = 4

// AttributeSpec declares one catalogue attribute.
type AttributeSpec struct {
	Key       string `yaml:"key"`
	BaseRank  int    `yaml:"base_rank"`
	Invariant bool   `yaml:"invariant"`
}

// SkillSpec declares one catalogue skill. Governing is an attribute key,
// empty for ungoverned skills. Specific and Multiple are mutually
// exclusive.
type SkillSpec struct {
	Key       string `yaml:"key"`
	Governing string `yaml:"governing"`
	Specific  bool   `yaml:"specific"`
	Multiple  bool   `yaml:"multiple"`
	Acquired  bool   `yaml:"acquired"`
	Invariant bool   `yaml:"invariant"`
}

// Catalogue is the full set of declarative tables consumed by character
// initialization.
type Catalogue struct {
	Attributes []AttributeSpec `yaml:"attributes"`
	SideValues []string        `yaml:"side_values"`
	Primary    []SkillSpec     `yaml:"primary_skills"`
	Secondary  []SkillSpec     `yaml:"secondary_skills"`
	Exotic     []SkillSpec     `yaml:"exotic_skills"`
}

// Default returns the built-in INS/MV catalogue.
func Default() *Catalogue {
	return &Catalogue{
		Attributes: []AttributeSpec{
			{Key: AttrForce, BaseRank: baseAttributeRank},
			{Key: AttrAgilite, BaseRank: baseAttributeRank},
			{Key: AttrPerception, BaseRank: baseAttributeRank},
			{Key: AttrVolonte, BaseRank: baseAttributeRank},
			{Key: AttrPresence, BaseRank: baseAttributeRank},
			{Key: AttrFoi, BaseRank: baseAttributeRank},
		},
		SideValues: []string{SidePF, SidePP, SideBL, SideBG, SideBF, SideMS},
		Primary: []SkillSpec{
			{Key: "Baratin", Governing: AttrPresence},
			{Key: "Combat", Governing: AttrAgilite, Specific: true},
			{Key: "Course", Governing: AttrForce},
			{Key: "Defense", Governing: AttrAgilite},
			{Key: "Discretion", Governing: AttrAgilite},
			{Key: "Discussion", Governing: AttrVolonte},
			{Key: "Enquete", Governing: AttrPerception},
			{Key: "Intrusion", Governing: AttrAgilite, Acquired: true},
			{Key: "Medecine", Governing: AttrPerception, Acquired: true},
			{Key: "Seduction", Governing: AttrPresence},
			{Key: "Tir", Governing: AttrPerception, Specific: true},
			{Key: "Vigilance", Governing: AttrPerception},
			{Key: "Vol", Governing: AttrAgilite, Acquired: true},
		},
		Secondary: []SkillSpec{
			{Key: "Acrobatie", Governing: AttrAgilite},
			{Key: "Art", Governing: AttrPresence, Multiple: true, Acquired: true},
			{Key: "Athletisme", Governing: AttrForce},
			{Key: "Bricolage", Governing: AttrPerception},
			{Key: "Conduite", Governing: AttrAgilite, Specific: true, Acquired: true},
			{Key: "Connaissance", Governing: AttrPerception, Multiple: true, Acquired: true},
			{Key: "Cuisine", Governing: AttrPerception},
			{Key: "Deguisement", Governing: AttrPresence, Acquired: true},
			{Key: "Hobby", Multiple: true, Acquired: true},
			{Key: "Informatique", Governing: AttrPerception, Acquired: true},
			{Key: "Jeu", Governing: AttrPerception},
			{Key: "Langue", Governing: AttrPerception, Multiple: true, Acquired: true},
			{Key: "Metier", Multiple: true, Acquired: true},
			{Key: "Natation", Governing: AttrForce, Acquired: true},
			{Key: "Premiers Secours", Governing: AttrPerception},
			{Key: "Survie", Governing: AttrPerception, Specific: true, Acquired: true},
		},
		Exotic: []SkillSpec{
			{Key: "Chance", Invariant: true, Acquired: true},
			{Key: "Contorsion", Governing: AttrAgilite, Acquired: true},
			{Key: "Hypnose", Governing: AttrVolonte, Acquired: true},
			{Key: "Langage Animal", Governing: AttrPerception, Acquired: true},
			{Key: "Lecture Labiale", Governing: AttrPerception, Acquired: true},
			{Key: "Passe-Passe", Governing: AttrAgilite, Acquired: true},
			{Key: "Sixieme Sens", Invariant: true, Acquired: true},
			{Key: "Torture", Governing: AttrPerception, Acquired: true},
			{Key: "Ventriloquie", Governing: AttrPresence, Acquired: true},
		},
	}
}

// Validate checks catalogue invariants: unique keys, known governing
// attribute references, and mutually exclusive specific/multiple flags.
//
// Postcondition: returns nil iff the catalogue is safe to initialize a
// character from.
func (c *Catalogue) Validate() error {
	var errs []string

	attrs := make(map[string]bool, len(c.Attributes))
	for _, a := range c.Attributes {
		if a.Key == "" {
			errs = append(errs, "attribute with empty key")
			continue
		}
		if attrs[a.Key] {
			errs = append(errs, fmt.Sprintf("duplicate attribute %q", a.Key))
		}
		attrs[a.Key] = true
	}

	sides := make(map[string]bool, len(c.SideValues))
	for _, s := range c.SideValues {
		if sides[s] {
			errs = append(errs, fmt.Sprintf("duplicate side value %q", s))
		}
		sides[s] = true
	}

	skills := make(map[string]bool)
	check := func(section string, specs []SkillSpec) {
		for _, s := range specs {
			if s.Key == "" {
				errs = append(errs, section+" skill with empty key")
				continue
			}
			if skills[s.Key] {
				errs = append(errs, fmt.Sprintf("duplicate skill %q", s.Key))
			}
			skills[s.Key] = true
			if s.Governing != "" && !attrs[s.Governing] {
				errs = append(errs, fmt.Sprintf("skill %q governed by unknown attribute %q", s.Key, s.Governing))
			}
			if s.Specific && s.Multiple {
				errs = append(errs, fmt.Sprintf("skill %q is both specific and multiple", s.Key))
			}
		}
	}
	check("primary", c.Primary)
	check("secondary", c.Secondary)
	check("exotic", c.Exotic)

	if len(errs) > 0 {
		return fmt.Errorf("catalogue validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
