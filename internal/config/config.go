package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Provider
	Provider string `env:"FIGURE_PROVIDER" envDefault:"gemini"`

	// Gemini
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image"`

	// OpenAI
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_MODEL" envDefault:"dall-e-3"`
	OpenAIImageSize string `env:"OPENAI_IMAGE_SIZE" envDefault:"1024x1024"`

	// Server
	Port string `env:"PORT" envDefault:"8888"`

	// Sessions idle longer than SessionTTL are dropped, checked every SessionSweepInterval
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	// Output
	OutputDir    string        `env:"OUTPUT_DIR" envDefault:"./figures"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Model returns the model name configured for the selected provider
func (c *Config) Model() string {
	switch c.Provider {
	case "openai":
		return c.OpenAIModel
	default:
		return c.GeminiModel
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
