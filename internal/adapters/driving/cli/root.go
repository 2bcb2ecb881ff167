// Package cli provides the command-line interface for zipsight.
// It implements a driving adapter following hexagonal architecture
// principles: commands hold no business logic and delegate to the
// core services injected through the Set*Config functions.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// version is stamped by the build; SetVersion overrides the default.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "zipsight",
	Short: "Analyse business listings against ZIP-level demographics",
	Long: `Zipsight uploads a business listing CSV and a demographic CSV to the
analysis service and presents the combined results: summary statistics,
four paginated result tables, and rendered chart images.

When the service cannot find a ZIP column, zipsight retries once with
the file roles swapped before reporting a failure.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output on stderr")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
