package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"avaro.dev/internal/config"
	"avaro.dev/internal/export"
	"avaro.dev/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export <output-dir>",
	Short: "Write a static snapshot of the site",
	Long: `Writes index.html, one overlay fragment per project under overlays/,
the JSON API documents under api/ and the static assets under static/.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		renderer, err := render.New()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exporting %d projects to %s...\n", len(cfg.Catalog.Projects()), args[0])
		if err := export.Site(args[0], cfg.Catalog, renderer, out); err != nil {
			return err
		}
		fmt.Fprintln(out, "Done!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
