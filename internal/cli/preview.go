package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"avaro.dev/internal/config"
	"avaro.dev/internal/preview"
)

var (
	previewWidth   int
	previewProject string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the page in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		out, err := preview.Render(cfg.Catalog, preview.Options{
			Width:   previewWidth,
			Project: previewProject,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 80, "terminal width")
	previewCmd.Flags().StringVarP(&previewProject, "project", "p", "", "show one project's detail view")
	rootCmd.AddCommand(previewCmd)
}
