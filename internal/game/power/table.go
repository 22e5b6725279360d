package power

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/scox/internal/game/dice"
	"github.com/cory-johannsen/scox/internal/game/value"
)

// ErrTableNotGenerated is returned when Draw is called before a table has
// been generated from archetype rows.
var ErrTableNotGenerated = errors.New("power table not generated")

// Recipient is the profile surface the draw algorithm mutates: power
// ownership checks, power insertion, and resource-pool awards.
type Recipient interface {
	// HasPower reports whether a power with the given name is already
	// owned.
	HasPower(name string) bool
	// AddPower records a newly drawn power.
	AddPower(p *value.Power)
	// AwardResource increases the resource pool (PP side value) by pp.
	AwardResource(pp int)
}

type entry struct {
	powers []Candidate
	pp     int
}

// Table maps every declared die face to the powers and resource award
// granted when that face is drawn. The per-superior pp overrides are
// resolved at generation time against the profile's superior.
type Table struct {
	faces  map[int]entry
	keys   []int
	logger *zap.Logger
}

// Generate builds a Table from parsed rows for a profile whose superior
// is the given name. A face declared by more than one row keeps the later
// row's entry (source rows are disjoint by construction). Superior bonus
// keys match case-insensitively.
//
// Precondition: logger must be non-nil.
func Generate(rows []Row, superior string, logger *zap.Logger) *Table {
	t := &Table{
		faces:  make(map[int]entry),
		logger: logger,
	}
	for _, row := range rows {
		pp := row.PP
		for name, override := range row.Bonus {
			if strings.EqualFold(name, superior) {
				pp = override
				break
			}
		}
		for _, face := range row.Faces {
			t.faces[face] = entry{powers: row.Powers, pp: pp}
		}
	}
	t.keys = make([]int, 0, len(t.faces))
	for face := range t.faces {
		t.keys = append(t.keys, face)
	}
	sort.Ints(t.keys)
	return t
}

// Faces returns the declared die faces in ascending order.
func (t *Table) Faces() []int {
	out := make([]int, len(t.keys))
	copy(out, t.keys)
	return out
}

// Award returns the resolved pp award for a face, and whether the face is
// declared.
func (t *Table) Award(face int) (int, bool) {
	e, ok := t.faces[face]
	return e.pp, ok
}

// Candidates returns the candidate powers for a face, or nil when the
// face is not declared.
func (t *Table) Candidates(face int) []Candidate {
	return t.faces[face].powers
}

// Draw attempts n successful draws against rec. Each attempt samples one
// declared face uniformly. When any candidate power of the sampled face
// is already owned, the whole drawing process stops immediately: earlier
// successes are kept and no error is raised. A committed attempt awards
// the face's pp and inserts every candidate power.
//
// Returns the number of successful draws, and ErrTableNotGenerated when
// called on a nil or empty table.
//
// Postcondition: the resource pool never decreases; no already-owned
// power name is ever inserted.
func (t *Table) Draw(rec Recipient, n int, src dice.Source) (int, error) {
	if t == nil || len(t.keys) == 0 {
		return 0, ErrTableNotGenerated
	}

	successes := 0
	for successes < n {
		face := t.keys[src.Intn(len(t.keys))]
		e := t.faces[face]

		if owned := firstOwned(rec, e.powers); owned != "" {
			t.logger.Debug("power draw collision, stopping",
				zap.Int("face", face),
				zap.String("power", owned),
				zap.Int("successes", successes),
			)
			return successes, nil
		}

		rec.AwardResource(e.pp)
		for _, c := range e.powers {
			if c.Flat {
				rec.AddPower(value.NewFlatPower(c.Name, c.Cost))
			} else {
				rec.AddPower(value.NewRankedPower(c.Name, c.Cost, c.Rank))
			}
		}
		successes++

		t.logger.Debug("power draw committed",
			zap.Int("face", face),
			zap.Int("pp", e.pp),
			zap.Int("powers", len(e.powers)),
		)
	}
	return successes, nil
}

func firstOwned(rec Recipient, powers []Candidate) string {
	for _, c := range powers {
		if rec.HasPower(c.Name) {
			return c.Name
		}
	}
	return ""
}
