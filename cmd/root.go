package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mcm-tools/figuregen/internal/config"
	"github.com/mcm-tools/figuregen/internal/gemini"
	"github.com/mcm-tools/figuregen/internal/openai"
	"github.com/mcm-tools/figuregen/internal/providers"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	provider string
	model    string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "figuregen",
		Short: "Scientific figure generator backed by image-generation models",
		Long: `Figuregen renders journal-style scientific figures from a library of preset
prompts or from your own descriptions, using Gemini or OpenAI image models.

Run the web interface with "figuregen serve", or generate figures straight to
disk with "figuregen generate".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.provider, "provider", "", "Image provider (gemini or openai); defaults to FIGURE_PROVIDER")
	cmd.PersistentFlags().StringVar(&opts.model, "model", "", "Model name (defaults to the provider's configured model)")

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newPresetsCmd())
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newManifestCmd())

	return cmd
}

// loadConfig reads the environment and applies command line overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.provider != "" {
		cfg.Provider = o.provider
	}
	if o.model != "" {
		switch cfg.Provider {
		case "openai":
			cfg.OpenAIModel = o.model
		default:
			cfg.GeminiModel = o.model
		}
	}
	return cfg, nil
}

func newGenerator(cfg *config.Config) (providers.Generator, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.New(cfg.GeminiAPIKey), nil
	case "openai":
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIImageSize), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
