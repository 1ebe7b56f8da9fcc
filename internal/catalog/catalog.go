package catalog

import (
	_ "embed"
	"fmt"

	"github.com/mcm-tools/figuregen/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var presets = mustLoad(presetsYAML)

type document struct {
	Presets []models.PresetPrompt `yaml:"presets"`
}

func mustLoad(data []byte) []models.PresetPrompt {
	list, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded preset catalog is invalid: %v", err))
	}
	return list
}

// Parse decodes and validates a preset catalog document
func Parse(data []byte) ([]models.PresetPrompt, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	seen := make(map[string]bool, len(doc.Presets))
	for i, p := range doc.Presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate preset id: %s", p.ID)
		}
		seen[p.ID] = true

		if p.Prompt == "" {
			return nil, fmt.Errorf("preset %s has an empty prompt", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("preset %s has unknown category %q", p.ID, p.Category)
		}
	}

	return doc.Presets, nil
}

// Presets returns the full catalog in declaration order
func Presets() []models.PresetPrompt {
	out := make([]models.PresetPrompt, len(presets))
	copy(out, presets)
	return out
}

// Lookup finds a preset by id
func Lookup(id string) (models.PresetPrompt, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return models.PresetPrompt{}, false
}

// Filters returns the category filter values, "All" first
func Filters() []models.Category {
	return append([]models.Category{models.CategoryAll}, models.AllCategories()...)
}

// ValidFilter reports whether c can be used as a category filter
func ValidFilter(c models.Category) bool {
	return c == models.CategoryAll || c.Valid()
}

// FilterByCategory returns list unchanged for "All", otherwise the presets in
// the selected category with their relative order kept.
func FilterByCategory(list []models.PresetPrompt, selected models.Category) []models.PresetPrompt {
	if selected == models.CategoryAll {
		out := make([]models.PresetPrompt, len(list))
		copy(out, list)
		return out
	}

	filtered := make([]models.PresetPrompt, 0, len(list))
	for _, p := range list {
		if p.Category == selected {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
