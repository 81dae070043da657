// Package cli provides the command-line interface using cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/panuwat-dev/docchat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Document question answering over a private corpus",
	Long: `docchat ingests uploaded documents into overlapping text chunks with
vector embeddings, and answers natural-language questions grounded in
the retrieved content.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
