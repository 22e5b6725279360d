// Package power implements the weighted random power table used during
// archetype assignment: parsing of tabular table rows, table generation
// with per-superior resource awards, and the constrained draw algorithm.
package power

import (
	"fmt"
	"strconv"
	"strings"
)

// Candidate is one power granted when its row's face is drawn.
type Candidate struct {
	Name string
	// Flat powers are invariant all-or-nothing grants with no rank.
	Flat bool
	// Rank is the table-specified rank of a non-flat power, in game
	// points (the value model doubles it into half-point accounting).
	Rank int
	// Cost is the human-readable activation cost descriptor.
	Cost string
}

// Row is one parsed power-table row: the die faces it covers, the powers
// granted together, the base resource-pool award, and per-superior
// overrides of that award.
type Row struct {
	Faces  []int
	Powers []Candidate
	PP     int
	Bonus  map[string]int
}

// ParseRows converts raw records (already split on the section's ';'
// delimiter, header removed) into Rows.
//
// Record layout: value;powers;pp;bonus with
//
//	value  = "[1,2,3]"
//	powers = "{Name:[flag,rank,cost]|Name2:[...]}"
//	pp     = integer
//	bonus  = "{Superior:pp|Superior2:pp}" (may be empty or "{}")
//
// Postcondition: returns an error naming the offending record on any
// syntax violation; never returns a partially parsed row set alongside
// a nil error.
func ParseRows(records [][]string) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if len(rec) < 3 {
			return nil, fmt.Errorf("table record %d: want at least 3 fields, got %d", i+1, len(rec))
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("table record %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	faces, err := parseFaces(rec[0])
	if err != nil {
		return Row{}, err
	}
	powers, err := parseCandidates(rec[1])
	if err != nil {
		return Row{}, err
	}
	pp, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil {
		return Row{}, fmt.Errorf("pp award %q: %w", rec[2], err)
	}

	row := Row{Faces: faces, Powers: powers, PP: pp}
	if len(rec) > 3 {
		row.Bonus, err = parseBonus(rec[3])
		if err != nil {
			return Row{}, err
		}
	}
	return row, nil
}

// parseFaces parses a bracketed comma-separated face list, e.g. "[1,2,3]".
func parseFaces(field string) ([]int, error) {
	inner, err := unwrap(field, '[', ']')
	if err != nil {
		return nil, fmt.Errorf("face list %q: %w", field, err)
	}
	if inner == "" {
		return nil, fmt.Errorf("face list %q: empty", field)
	}
	parts := strings.Split(inner, ",")
	faces := make([]int, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("face %q: %w", p, err)
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// parseCandidates parses the brace-delimited power set, e.g.
// "{Flammes:[false,2,2 PP]|Aura de Peur:[true,0,1 PP]}".
func parseCandidates(field string) ([]Candidate, error) {
	inner, err := unwrap(field, '{', '}')
	if err != nil {
		return nil, fmt.Errorf("power set %q: %w", field, err)
	}
	if inner == "" {
		return nil, fmt.Errorf("power set %q: empty", field)
	}
	entries := strings.Split(inner, "|")
	powers := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		name, spec, ok := strings.Cut(e, ":")
		if !ok {
			return nil, fmt.Errorf("power entry %q: missing ':'", e)
		}
		specInner, err := unwrap(strings.TrimSpace(spec), '[', ']')
		if err != nil {
			return nil, fmt.Errorf("power entry %q: %w", e, err)
		}
		parts := strings.SplitN(specInner, ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("power entry %q: want [flag,rank,cost]", e)
		}
		flat, err := strconv.ParseBool(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("power entry %q: flat flag: %w", e, err)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("power entry %q: rank: %w", e, err)
		}
		powers = append(powers, Candidate{
			Name: strings.TrimSpace(name),
			Flat: flat,
			Rank: rank,
			Cost: strings.TrimSpace(parts[2]),
		})
	}
	return powers, nil
}

// parseBonus parses the per-superior pp override map, e.g. "{Baal:3}".
// Empty fields and "{}" yield a nil map.
func parseBonus(field string) (map[string]int, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	inner, err := unwrap(field, '{', '}')
	if err != nil {
		return nil, fmt.Errorf("bonus map %q: %w", field, err)
	}
	if inner == "" {
		return nil, nil
	}
	bonus := make(map[string]int)
	for _, e := range strings.Split(inner, "|") {
		name, val, ok := strings.Cut(e, ":")
		if !ok {
			return nil, fmt.Errorf("bonus entry %q: missing ':'", e)
		}
		pp, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("bonus entry %q: %w", e, err)
		}
		bonus[strings.TrimSpace(name)] = pp
	}
	return bonus, nil
}

func unwrap(s string, opening, closing byte) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != opening || s[len(s)-1] != closing {
		return "", fmt.Errorf("not delimited by %c...%c", opening, closing)
	}
	return strings.TrimSpace(s[1 : len(s)-1]), nil
}
