package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcm-tools/figuregen/internal/providers"
	openai "github.com/sashabaranov/go-openai"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return newProvider(cfg, true, "")
}

func TestGenerateImageNoAPIKey(t *testing.T) {
	o := New("", "")
	if _, err := o.GenerateImage(context.Background(), providers.Config{Prompt: "p"}); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestGenerateImage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "url response",
			body:     `{"created":1,"data":[{"url":"https://x/img1.png"}]}`,
			expected: "https://x/img1.png",
		},
		{
			name:     "base64 response",
			body:     `{"created":1,"data":[{"b64_json":"cG5n"}]}`,
			expected: "data:image/png;base64,cG5n",
		},
		{
			name:     "no data",
			body:     `{"created":1,"data":[]}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got openai.ImageRequest
			o := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/images/generations" {
					t.Errorf("Unexpected path %s", r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("Failed to decode request: %v", err)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			url, err := o.GenerateImage(context.Background(), providers.Config{Prompt: "draw"})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if url != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, url)
			}
			if got.Prompt != "draw" {
				t.Errorf("Expected prompt draw, got %q", got.Prompt)
			}
			if got.Model != openai.CreateImageModelDallE3 {
				t.Errorf("Expected default model %s, got %s", openai.CreateImageModelDallE3, got.Model)
			}
			if got.Size != openai.CreateImageSize1024x1024 {
				t.Errorf("Expected default size, got %s", got.Size)
			}
		})
	}
}

func TestGenerateImageAPIError(t *testing.T) {
	o := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"content policy violation","type":"invalid_request_error"}}`))
	})

	_, err := o.GenerateImage(context.Background(), providers.Config{Prompt: "draw"})
	if err == nil {
		t.Fatal("Expected error from API")
	}
}
