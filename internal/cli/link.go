package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"avaro.dev/internal/media"
)

var linkCmd = &cobra.Command{
	Use:   "link <url>...",
	Short: "Print the direct image link for shared-drive URLs",
	Long: `Rewrites Google Drive share links to direct image links. Any other
URL is printed unchanged.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, raw := range args {
			fmt.Fprintln(cmd.OutOrStdout(), media.DirectLink(raw))
		}
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}
