package session

import (
	"fmt"
	"strings"

	"github.com/mcm-tools/figuregen/internal/models"
)

// CustomRequestID is the busy marker used while a custom prompt is rendering
const CustomRequestID = "custom"

// Kind distinguishes preset requests from custom ones
type Kind int

const (
	KindPreset Kind = iota
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPreset:
		return "preset"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Request is either a preset or a raw custom prompt
type Request struct {
	Kind   Kind
	Preset models.PresetPrompt
	Text   string
}

// PresetRequest generates the figure described by p
func PresetRequest(p models.PresetPrompt) Request {
	return Request{Kind: KindPreset, Preset: p}
}

// CustomRequest generates a figure from user text, wrapped in the journal style template
func CustomRequest(text string) Request {
	return Request{Kind: KindCustom, Text: text}
}

// WrapCustomPrompt applies the fixed scientific-journal style to user text
func WrapCustomPrompt(text string) string {
	return "Scientific journal illustration, " + text + ", white background, matte colors, professional labels, clean vector style, high resolution."
}

// resolve derives the prompt sent to the provider, the gallery label and the busy marker
func (r Request) resolve() (prompt string, category models.Category, requestID string, err error) {
	switch r.Kind {
	case KindPreset:
		if r.Preset.ID == "" || strings.TrimSpace(r.Preset.Prompt) == "" {
			return "", "", "", ErrEmptyPrompt
		}
		return r.Preset.Prompt, r.Preset.Category, r.Preset.ID, nil
	case KindCustom:
		if strings.TrimSpace(r.Text) == "" {
			return "", "", "", ErrEmptyPrompt
		}
		return WrapCustomPrompt(r.Text), models.CategoryCustom, CustomRequestID, nil
	default:
		return "", "", "", fmt.Errorf("unhandled request kind %v", r.Kind)
	}
}
