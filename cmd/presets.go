package cmd

import (
	"fmt"
	"io"

	"github.com/mcm-tools/figuregen/internal/catalog"
	"github.com/mcm-tools/figuregen/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPresetsCmd() *cobra.Command {
	var category string
	var output string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the preset figure prompts",
		Example: `  # List every preset
  figuregen presets

  # Only thermal figures, as YAML
  figuregen presets --category "Thermal Balance" --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := models.Category(category)
			if !catalog.ValidFilter(selected) {
				return fmt.Errorf("unknown category %q (valid: %v)", category, catalog.Filters())
			}
			return printPresets(cmd.OutOrStdout(), catalog.FilterByCategory(catalog.Presets(), selected), output)
		},
	}

	cmd.Flags().StringVar(&category, "category", string(models.CategoryAll), "Category filter")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text or yaml)")

	return cmd
}

func printPresets(w io.Writer, presets []models.PresetPrompt, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(map[string]any{"presets": presets}); err != nil {
			return fmt.Errorf("failed to encode presets: %w", err)
		}
		return nil
	case "text":
		for _, p := range presets {
			fmt.Fprintf(w, "%-26s %-24s %s\n", p.ID, p.Category, p.Title)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
