package openai

import (
	"context"
	"fmt"

	"github.com/mcm-tools/figuregen/internal/providers"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is an image provider backed by the OpenAI images API
type OpenAI struct {
	client *openai.Client
	size   string
	hasKey bool
}

// New returns a new OpenAI provider
func New(apiKey, size string) *OpenAI {
	return newProvider(openai.DefaultConfig(apiKey), apiKey != "", size)
}

func newProvider(cfg openai.ClientConfig, hasKey bool, size string) *OpenAI {
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		size:   size,
		hasKey: hasKey,
	}
}

// GenerateImage requests a single image and returns its URL
func (o *OpenAI) GenerateImage(ctx context.Context, config providers.Config) (string, error) {
	if !o.hasKey {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	model := config.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}

	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         config.Prompt,
		Model:          model,
		N:              1,
		Size:           o.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", nil
	}

	image := resp.Data[0]
	if image.URL != "" {
		return image.URL, nil
	}
	if image.B64JSON != "" {
		return "data:image/png;base64," + image.B64JSON, nil
	}

	return "", nil
}
