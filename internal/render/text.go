// Package render formats characters as plain-text sheets. It consumes
// only the read surface of a character; nothing here mutates game state.
package render

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/scox/internal/game/character"
	"github.com/cory-johannsen/scox/internal/game/profile"
	"github.com/cory-johannsen/scox/internal/game/value"
)

// Sheet renders the full character sheet: identity header, attributes,
// side values, the three skill sections, and powers in acquisition order.
func Sheet(c *character.Character) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", c.Name)
	fmt.Fprintf(&b, "%s", c.Profile.Nature)
	if c.Profile.Superior != "" {
		fmt.Fprintf(&b, " — %s", c.Profile.Superior)
	}
	fmt.Fprintf(&b, ", niveau %d\n\n", c.Level)

	writeSection(&b, "Caracteristiques", func() {
		for _, a := range c.Profile.Attributes.Values() {
			if a.Invariant {
				continue
			}
			fmt.Fprintf(&b, "  %-16s %s\n", a.Name, a.DisplayRank())
		}
	})

	writeSection(&b, "Valeurs", func() {
		for _, v := range c.Profile.Values.Values() {
			fmt.Fprintf(&b, "  %-16s %d\n", v.Name, v.FullRank())
		}
	})

	writeSkills(&b, "Talents principaux", c.Profile.PrimarySkills)
	writeSkills(&b, "Talents secondaires", c.Profile.SecondarySkills)
	writeSkills(&b, "Talents exotiques", c.Profile.ExoticSkills)

	writeSection(&b, "Pouvoirs", func() {
		for _, p := range c.Profile.Powers.Values() {
			rank := p.DisplayRank()
			if p.Invariant {
				rank = "— "
			}
			fmt.Fprintf(&b, "  %-24s %s (%s)\n", p.Name, rank, p.Cost)
		}
	})

	return b.String()
}

func writeSection(b *strings.Builder, title string, body func()) {
	fmt.Fprintf(b, "%s\n", title)
	body()
	b.WriteByte('\n')
}

func writeSkills(b *strings.Builder, title string, skills *profile.OrderedMap[*value.Skill]) {
	writeSection(b, title, func() {
		for _, s := range skills.Values() {
			writeSkill(b, s)
		}
	})
}

func writeSkill(b *strings.Builder, s *value.Skill) {
	if !s.IsUsable() {
		return
	}
	if s.Invariant {
		fmt.Fprintf(b, "  %-24s oui\n", s.Name)
		return
	}
	label := s.Name
	if s.Multiple && len(s.Varieties) > 0 {
		label = fmt.Sprintf("%s (%s)", s.Name, strings.Join(s.Varieties, ", "))
	}
	fmt.Fprintf(b, "  %-24s %s\n", label, s.DisplayRank())
	if s.Specialization != nil && s.Specialization.FullRank() > s.FullRank() {
		fmt.Fprintf(b, "    %-22s %s\n", s.Specialization.Name+" (spe)", s.Specialization.DisplayRank())
	}
}
