package catalogue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads all .yaml files in dir and merges each into a single
// Catalogue: sections are appended in file name order, so a catalogue may
// be split across files (attributes.yaml, skills.yaml, ...).
//
// Precondition: dir must be a readable directory path.
// Postcondition: returns a validated Catalogue or a non-nil error.
func Load(dir string) (*Catalogue, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalogue files in %s", dir)
	}

	var cat Catalogue
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var part Catalogue
		if err := yaml.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("parsing catalogue file %s: %w", path, err)
		}
		cat.Attributes = append(cat.Attributes, part.Attributes...)
		cat.SideValues = append(cat.SideValues, part.SideValues...)
		cat.Primary = append(cat.Primary, part.Primary...)
		cat.Secondary = append(cat.Secondary, part.Secondary...)
		cat.Exotic = append(cat.Exotic, part.Exotic...)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
