package profile

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cory-johannsen/scox/internal/game/power"
	"github.com/cory-johannsen/scox/internal/game/value"
)

// Archive extension and section names of a .scx profile archive.
const (
	archiveExt = ".scx"

	sectionAttributes = "attributes.csv"
	sectionValues     = "values.csv"
	sectionPrimary    = "primary_skills.csv"
	sectionSecondary  = "secondary_skills.csv"
	sectionExotic     = "exotic_skills.csv"
	sectionPowers     = "powers.csv"

	// Archetype archives carry one nature-specific power table section,
	// table_angel.csv or table_demon.csv, delimited by ';'.
	tableSectionPrefix = "table_"
)

// specializationSuffix marks a primary-skill row that targets the named
// skill's specialization ("Combat_spe").
const specializationSuffix = "spe"

// Schema violation sentinels. Loads abort on these with no rollback of
// already-merged sections.
var (
	// ErrUnknownName is returned when a row references an attribute,
	// primary skill, exotic skill, or side value absent from the
	// catalogue established at character initialization.
	ErrUnknownName = errors.New("name not found in catalogue")
	// ErrDuplicatePower is returned when an archive redefines a power
	// name the profile already owns.
	ErrDuplicatePower = errors.New("power already defined")
	// ErrMissingSection is returned when an archive lacks a required
	// tabular section.
	ErrMissingSection = errors.New("archive section missing")
)

// Store loads .scx profile archives from a directory and merges them into
// profiles.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a Store reading archives from dir. Relative references
// resolve against dir; the .scx extension is appended when absent.
//
// Precondition: logger must be non-nil.
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Load reads the archive referenced by ref and merges its six tabular
// sections into p. After a superior (non-archetype) load the profile's
// Superior is set to the template's display name; after an archetype load
// the nature-specific power table is parsed and generated instead.
//
// Schema violations (unknown names, duplicate powers, missing sections,
// malformed rows) are fatal: the error is returned and sections merged
// before the violation remain applied.
func (s *Store) Load(p *Profile, ref string, isArchetype bool) error {
	path := s.resolvePath(ref)
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening profile archive %s: %w", path, err)
	}
	defer zr.Close()

	sections := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		sections[f.Name] = f
	}

	steps := []struct {
		name  string
		merge func(*Profile, []record) error
	}{
		{sectionAttributes, s.mergeAttributes},
		{sectionValues, s.mergeValues},
		{sectionPrimary, s.mergePrimarySkills},
		{sectionSecondary, s.mergeSecondarySkills},
		{sectionExotic, s.mergeExoticSkills},
		{sectionPowers, s.mergePowers},
	}
	for _, step := range steps {
		recs, err := readSection(sections, step.name, ',')
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := step.merge(p, recs); err != nil {
			return fmt.Errorf("%s %s: %w", path, step.name, err)
		}
	}

	if isArchetype {
		return s.loadPowerTable(p, sections, path)
	}
	p.Superior = displayName(path)
	return nil
}

func (s *Store) resolvePath(ref string) string {
	path := ref
	if !strings.HasSuffix(path, archiveExt) {
		path += archiveExt
	}
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	return path
}

// displayName derives the human-readable template identity from the
// archive path: base name without extension, underscores as spaces, first
// letter upper-cased.
func displayName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), archiveExt)
	name = strings.ReplaceAll(name, "_", " ")
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// record is one parsed CSV row of a simple section.
type record struct {
	Name      string
	Rank      int
	Cost      string
	Invariant bool
}

// readSection parses the named CSV section into records using its header
// row for column lookup. Power rows additionally carry Cost and Invariant
// columns.
func readSection(sections map[string]*zip.File, name string, comma rune) ([]record, error) {
	raw, err := readRecords(sections, name, comma)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("section %s: missing header row", name)
	}
	cols := make(map[string]int, len(raw[0]))
	for i, h := range raw[0] {
		cols[strings.TrimSpace(h)] = i
	}
	nameCol, ok := cols["Name"]
	if !ok {
		return nil, fmt.Errorf("section %s: no Name column", name)
	}
	rankCol, ok := cols["Rank"]
	if !ok {
		return nil, fmt.Errorf("section %s: no Rank column", name)
	}
	costCol, hasCost := cols["Cost"]
	invCol, hasInv := cols["Invariant"]

	recs := make([]record, 0, len(raw)-1)
	for i, row := range raw[1:] {
		if len(row) < len(raw[0]) {
			return nil, fmt.Errorf("section %s row %d: want %d fields, got %d", name, i+1, len(raw[0]), len(row))
		}
		var r record
		r.Name = strings.TrimSpace(row[nameCol])
		if r.Name == "" {
			return nil, fmt.Errorf("section %s row %d: empty name", name, i+1)
		}
		if hasInv {
			r.Invariant, err = strconv.ParseBool(strings.TrimSpace(row[invCol]))
			if err != nil {
				return nil, fmt.Errorf("section %s row %d: invariant flag: %w", name, i+1, err)
			}
		}
		if rank := strings.TrimSpace(row[rankCol]); rank != "" {
			r.Rank, err = strconv.Atoi(rank)
			if err != nil {
				return nil, fmt.Errorf("section %s row %d: rank: %w", name, i+1, err)
			}
		} else if !r.Invariant {
			return nil, fmt.Errorf("section %s row %d: empty rank", name, i+1)
		}
		if hasCost {
			r.Cost = strings.TrimSpace(row[costCol])
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// readRecords reads all rows of a section, header included.
func readRecords(sections map[string]*zip.File, name string, comma rune) ([][]string, error) {
	f, ok := sections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening section %s: %w", name, err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.Comma = comma
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing section %s: %w", name, err)
		}
		rows = append(rows, row)
	}
}

// mergeAttributes adds each row's rank to an existing attribute. Unknown
// names are fatal: archives may only reference the fixed catalogue.
func (s *Store) mergeAttributes(p *Profile, recs []record) error {
	for _, r := range recs {
		attr, ok := p.Attributes.Get(r.Name)
		if !ok {
			return fmt.Errorf("attribute %q: %w", r.Name, ErrUnknownName)
		}
		attr.IncreaseRank(r.Rank)
	}
	return nil
}

// mergeValues sets each side value's invested rank outright.
func (s *Store) mergeValues(p *Profile, recs []record) error {
	for _, r := range recs {
		v, ok := p.Values.Get(r.Name)
		if !ok {
			return fmt.Errorf("side value %q: %w", r.Name, ErrUnknownName)
		}
		v.SetRank(r.Rank)
	}
	return nil
}

// mergePrimarySkills adds each row's rank to an existing primary skill.
// A row named "<skill>_spe" targets the skill's specialization directly.
func (s *Store) mergePrimarySkills(p *Profile, recs []record) error {
	for _, r := range recs {
		if sk, ok := p.PrimarySkills.Get(r.Name); ok {
			sk.IncreaseRank(r.Rank)
			continue
		}
		base, suffix, hasSuffix := strings.Cut(r.Name, "_")
		sk, ok := p.PrimarySkills.Get(base)
		if !ok || !hasSuffix || suffix != specializationSuffix {
			return fmt.Errorf("primary skill %q: %w", r.Name, ErrUnknownName)
		}
		if sk.Specialization == nil {
			return fmt.Errorf("primary skill %q is not specific: %w", base, ErrUnknownName)
		}
		sk.Specialization.IncreaseRank(r.Rank)
	}
	return nil
}

// secondaryLookup classifies a secondary-skill row name.
type secondaryLookup int

const (
	secondaryFound secondaryLookup = iota
	secondarySubEntity
	secondaryCreatable
)

// mergeSecondarySkills is the permissive merge: known skills merge
// normally, "<skill>_<suffix>" rows target a specialization or record a
// new variety, and unknown names create acquired bonus skills on the fly.
// A suffix on a skill that is neither specific nor multiple is ignored
// with a warning.
func (s *Store) mergeSecondarySkills(p *Profile, recs []record) error {
	for _, r := range recs {
		outcome, sk, suffix := resolveSecondary(p, r.Name)
		switch outcome {
		case secondaryFound:
			sk.IncreaseRank(r.Rank)
		case secondarySubEntity:
			switch {
			case sk.Specific:
				sk.Specialization.IncreaseRank(r.Rank)
			case sk.Multiple:
				sk.AddVariety(suffix)
				sk.IncreaseRank(r.Rank)
			default:
				s.logger.Warn("skill is neither specific nor multiple, suffix ignored",
					zap.String("skill", sk.Name),
					zap.String("row", r.Name),
				)
			}
		case secondaryCreatable:
			ns := value.NewSkill(value.SkillConfig{Name: r.Name, Acquired: true})
			ns.IncreaseRank(r.Rank)
			p.SecondarySkills.Set(r.Name, ns)
		}
	}
	return nil
}

func resolveSecondary(p *Profile, name string) (secondaryLookup, *value.Skill, string) {
	if sk, ok := p.SecondarySkills.Get(name); ok {
		return secondaryFound, sk, ""
	}
	if base, suffix, ok := strings.Cut(name, "_"); ok {
		if sk, found := p.SecondarySkills.Get(base); found {
			return secondarySubEntity, sk, suffix
		}
	}
	return secondaryCreatable, nil, ""
}

// mergeExoticSkills adds each row's rank to an existing exotic skill.
func (s *Store) mergeExoticSkills(p *Profile, recs []record) error {
	for _, r := range recs {
		sk, ok := p.ExoticSkills.Get(r.Name)
		if !ok {
			return fmt.Errorf("exotic skill %q: %w", r.Name, ErrUnknownName)
		}
		sk.IncreaseRank(r.Rank)
	}
	return nil
}

// mergePowers defines new powers. Redefining an existing power name is a
// hard error.
func (s *Store) mergePowers(p *Profile, recs []record) error {
	for _, r := range recs {
		if p.HasPower(r.Name) {
			return fmt.Errorf("power %q: %w", r.Name, ErrDuplicatePower)
		}
		if r.Invariant {
			p.AddPower(value.NewFlatPower(r.Name, r.Cost))
		} else {
			p.AddPower(value.NewRankedPower(r.Name, r.Cost, r.Rank))
		}
	}
	return nil
}

// loadPowerTable reads the nature-specific table section and generates the
// profile's power table, resolving pp awards against the loaded superior.
func (s *Store) loadPowerTable(p *Profile, sections map[string]*zip.File, path string) error {
	name := tableSectionPrefix + strings.ToLower(string(p.Nature)) + ".csv"
	raw, err := readRecords(sections, name, ';')
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%s section %s: missing header row", path, name)
	}
	rows, err := power.ParseRows(raw[1:])
	if err != nil {
		return fmt.Errorf("%s section %s: %w", path, name, err)
	}
	p.PowerTable = power.Generate(rows, p.Superior, s.logger)
	s.logger.Debug("power table generated",
		zap.String("archive", path),
		zap.Int("faces", len(p.PowerTable.Faces())),
		zap.String("superior", p.Superior),
	)
	return nil
}
