// Package cli defines the portfolio command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Sebastian Avaro's portfolio site",
	Long: `portfolio serves the single-page portfolio of graphic designer
Sebastian Avaro: project case studies, skills and a contact link, with
the interactive parts of the page driven over a live websocket session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
}

// ExitOnError prints err and exits with status 1 when err is non-nil.
func ExitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
