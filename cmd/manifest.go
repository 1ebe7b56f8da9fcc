package cmd

import (
	"fmt"

	"github.com/mcm-tools/figuregen/internal/manifest"
	"github.com/spf13/cobra"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect manifests written by generate",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "show FILE",
		Short:   "Print the figures recorded in a .parquet or .yaml manifest",
		Args:    cobra.ExactArgs(1),
		Example: `  figuregen manifest show figures/manifest.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := manifest.Read(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-24s %s\n", e.Time().Format("2006-01-02 15:04:05"), e.Category, e.Filename)
			}
			fmt.Fprintf(out, "%d figures\n", len(entries))
			return nil
		},
	})

	return cmd
}
