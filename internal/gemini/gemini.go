package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"github.com/mcm-tools/figuregen/internal/providers"
	"google.golang.org/api/option"
)

// Gemini is an image provider backed by Google Gemini image models
type Gemini struct {
	apiKey string
}

// New returns a new Gemini provider
func New(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey}
}

// GenerateImage renders the prompt and returns the first image part as a data URL
func (g *Gemini) GenerateImage(ctx context.Context, config providers.Config) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)

	resp, err := model.GenerateContent(ctx, genai.Text(config.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return imageFromResponse(resp), nil
}

// imageFromResponse returns "" when the model answered without image data
func imageFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Blob:
			if len(p.Data) > 0 {
				return DataURL(p.MIMEType, p.Data)
			}
		case genai.Text:
			slog.Debug("Gemini returned text part", "length", len(p))
		}
	}

	return ""
}

// DataURL encodes raw image bytes as a data URL
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
