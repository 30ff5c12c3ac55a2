package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "lastmile",
	Short: "Lastmile - delivery dataset batch pipelines",
	Long: `Lastmile builds the datasets behind the delivery performance analysis.

It generates a synthetic e-commerce order dataset from configurable
statistical distributions, flattens raw last-mile route metadata into
per-route summaries, and can load both outputs into MySQL for analysis.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: search ./deploy/, ., $HOME/.lastmile/, /etc/lastmile/)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
