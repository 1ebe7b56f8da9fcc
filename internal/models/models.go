package models

import "time"

// Category is the subject area a preset figure belongs to
type Category string

const (
	CategorySystemModel  Category = "System Level Logic"
	CategoryThermal      Category = "Thermal Balance"
	CategoryDecompose    Category = "Power Decomposition"
	CategoryMicroScale   Category = "Microscopic Degradation"
	CategoryAging        Category = "Battery Aging/Swelling"
	CategoryInternal     Category = "Internal Structure"
	CategoryUsageProfile Category = "User Behavior Modeling"

	// CategoryAll is a filter value only, never stored on a record
	CategoryAll Category = "All"
	// CategoryCustom labels gallery entries produced from custom prompts
	CategoryCustom Category = "Custom"
)

var categories = []Category{
	CategoryAging,
	CategoryDecompose,
	CategoryThermal,
	CategoryInternal,
	CategoryMicroScale,
	CategoryUsageProfile,
	CategorySystemModel,
}

// AllCategories returns the closed set of preset categories in display order
func AllCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the preset categories
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// PresetPrompt is a one-click figure description offered to the user
type PresetPrompt struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
}

// GeneratedImage is a gallery entry. It is never modified once added.
type GeneratedImage struct {
	ID        string    `json:"id" yaml:"id"`
	URL       string    `json:"url" yaml:"url"`
	Prompt    string    `json:"prompt" yaml:"prompt"`
	Category  Category  `json:"category" yaml:"category"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Filename is the suggested name when the image is saved locally
func (g GeneratedImage) Filename() string {
	return "MCM_Figure_" + g.ID + ".png"
}

// SessionState is a point-in-time copy of a generation session
type SessionState struct {
	Filter       Category         `json:"filter"`
	CustomPrompt string           `json:"custom_prompt"`
	Busy         string           `json:"busy,omitempty"`
	Error        string           `json:"error,omitempty"`
	Images       []GeneratedImage `json:"images"`
}
