package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcm-tools/figuregen/internal/catalog"
	"github.com/mcm-tools/figuregen/internal/images"
	"github.com/mcm-tools/figuregen/internal/manifest"
	"github.com/mcm-tools/figuregen/internal/models"
	"github.com/mcm-tools/figuregen/internal/session"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var presetIDs []string
	var category string
	var all bool
	var custom string
	var outputDir string
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate figures and save them to disk",
		Long: `Generate figures from presets or a custom description and save each one
as MCM_Figure_<id>.png in the output directory.

Requests run one after another. A failed request is reported and the rest
still run; the command exits non-zero if any request failed.`,
		Example: `  # Generate a single preset
  figuregen generate --preset 2rc-ecm-diagram

  # Every thermal preset, with a parquet manifest
  figuregen generate --category "Thermal Balance" --manifest figures/manifest.parquet

  # A custom description, wrapped in the journal style template
  figuregen generate --custom "cross-section of a cylindrical 18650 cell"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := buildRequests(presetIDs, models.Category(category), all, custom)
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}

			generator, err := newGenerator(cfg)
			if err != nil {
				return err
			}

			saver := images.NewDirSaver(outputDir, images.NewFetcher(cfg.FetchTimeout))
			controller := session.New(generator, cfg.Model(), session.WithSaver(saver))

			failures := runGenerate(cmd.Context(), controller, requests, cmd.OutOrStdout())

			if manifestPath != "" {
				if err := manifest.Write(manifestPath, controller.State().Images); err != nil {
					return err
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d generations failed", failures, len(requests))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&presetIDs, "preset", nil, "Preset id to generate (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "Generate every preset in this category")
	cmd.Flags().BoolVar(&all, "all", false, "Generate every preset")
	cmd.Flags().StringVar(&custom, "custom", "", "Custom figure description")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (defaults to OUTPUT_DIR)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Write a manifest of generated figures (.parquet or .yaml)")

	return cmd
}

// buildRequests turns the command line selection into an ordered request list
func buildRequests(presetIDs []string, category models.Category, all bool, custom string) ([]session.Request, error) {
	var requests []session.Request

	for _, id := range presetIDs {
		preset, ok := catalog.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", id)
		}
		requests = append(requests, session.PresetRequest(preset))
	}

	if all || category != "" {
		if category == "" {
			category = models.CategoryAll
		}
		if !catalog.ValidFilter(category) {
			return nil, fmt.Errorf("unknown category: %q", category)
		}
		for _, preset := range catalog.FilterByCategory(catalog.Presets(), category) {
			requests = append(requests, session.PresetRequest(preset))
		}
	}

	if custom != "" {
		requests = append(requests, session.CustomRequest(custom))
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("nothing to generate: use --preset, --category, --all or --custom")
	}
	return requests, nil
}

// runGenerate runs the requests in order and saves each result, returning the failure count
func runGenerate(ctx context.Context, controller *session.Controller, requests []session.Request, out io.Writer) int {
	failures := 0
	for i, req := range requests {
		label := requestLabel(req)
		slog.Debug("Processing request", "request", label, "progress", fmt.Sprintf("%d/%d", i+1, len(requests)))

		image, err := controller.Generate(ctx, req)
		if err != nil {
			failures++
			fmt.Fprintf(out, "✗ %s: %s\n", label, session.UserMessage(err))
			continue
		}

		controller.DownloadImage(ctx, image.URL, image.Filename())
		fmt.Fprintf(out, "✓ %s -> %s\n", label, image.Filename())
	}
	return failures
}

func requestLabel(req session.Request) string {
	switch req.Kind {
	case session.KindPreset:
		return req.Preset.ID
	default:
		return session.CustomRequestID
	}
}
