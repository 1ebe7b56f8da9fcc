package providers

import (
	"context"
)

// Config represents the configuration for a single image generation call
type Config struct {
	Model  string
	Prompt string
}

// Generator defines the interface for an image generation provider.
// GenerateImage returns an addressable image reference (an https or data URL).
// An empty reference with a nil error means the provider answered without an image.
type Generator interface {
	GenerateImage(ctx context.Context, config Config) (string, error)
}
