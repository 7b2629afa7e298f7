package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"trustdebt/internal/errors"
)

// catalogFile is the on-disk shape of a taxonomy file.
type catalogFile struct {
	Version    int             `yaml:"version" toml:"version"`
	Categories []categoryEntry `yaml:"categories" toml:"categories"`
}

type categoryEntry struct {
	ID       string   `yaml:"id" toml:"id"`
	Name     string   `yaml:"name" toml:"name"`
	Parent   string   `yaml:"parent,omitempty" toml:"parent,omitempty"`
	Keywords []string `yaml:"keywords" toml:"keywords"`
	Weight   float64  `yaml:"weight" toml:"weight"`
}

// LoadCatalog reads and validates a category taxonomy file. YAML and
// TOML are supported, chosen by extension. Malformed files and entries
// are rejected up front rather than defaulted silently.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid,
			fmt.Sprintf("Category file not readable: %s", path), err)
	}

	var file catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.New(errors.ConfigInvalid,
				fmt.Sprintf("Category file is not valid YAML: %s", path), err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, errors.New(errors.ConfigInvalid,
				fmt.Sprintf("Category file is not valid TOML: %s", path), err)
		}
	default:
		return nil, errors.New(errors.ConfigInvalid,
			fmt.Sprintf("Unsupported category file format: %s (use .yaml, .yml, or .toml)", path), nil)
	}

	catalog, err := buildCatalog(file.Categories)
	if err != nil {
		return nil, err
	}
	catalog.SourcePath = path
	catalog.LoadedAt = time.Now()
	return catalog, nil
}

// buildCatalog validates entries and resolves parent depths.
func buildCatalog(entries []categoryEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errors.New(errors.ConfigInvalid, "Category file defines no categories", nil)
	}

	seen := make(map[string]bool, len(entries))
	categories := make([]Category, 0, len(entries))

	for _, e := range entries {
		if e.ID == "" {
			return nil, errors.New(errors.CategoryInvalid, "Category entry is missing an id", nil).
				WithDetails(map[string]interface{}{"name": e.Name})
		}
		if seen[e.ID] {
			return nil, errors.New(errors.CategoryInvalid,
				fmt.Sprintf("Duplicate category id: %s", e.ID), nil)
		}
		seen[e.ID] = true

		if len(e.Keywords) == 0 {
			return nil, errors.New(errors.CategoryInvalid,
				fmt.Sprintf("Category %s has no keywords", e.ID), nil)
		}
		if e.Weight <= 0 {
			return nil, errors.New(errors.CategoryInvalid,
				fmt.Sprintf("Category %s must have positive weight, got %v", e.ID, e.Weight), nil)
		}

		name := e.Name
		if name == "" {
			name = e.ID
		}

		categories = append(categories, Category{
			ID:       e.ID,
			Name:     name,
			ParentID: e.Parent,
			Keywords: e.Keywords,
			Weight:   e.Weight,
		})
	}

	// Resolve depths once all ids are known
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c.ID] = i
	}
	for i := range categories {
		depth, err := resolveDepth(categories, index, i, 0)
		if err != nil {
			return nil, err
		}
		categories[i].Depth = depth
	}

	return &Catalog{Categories: categories}, nil
}

func resolveDepth(categories []Category, index map[string]int, i, hops int) (int, error) {
	if hops > len(categories) {
		return 0, errors.New(errors.CategoryInvalid,
			fmt.Sprintf("Category %s has a circular parent chain", categories[i].ID), nil)
	}
	parent := categories[i].ParentID
	if parent == "" {
		return 0, nil
	}
	pi, ok := index[parent]
	if !ok {
		return 0, errors.New(errors.CategoryInvalid,
			fmt.Sprintf("Category %s references unknown parent %s", categories[i].ID, parent), nil)
	}
	parentDepth, err := resolveDepth(categories, index, pi, hops+1)
	if err != nil {
		return 0, err
	}
	return parentDepth + 1, nil
}
