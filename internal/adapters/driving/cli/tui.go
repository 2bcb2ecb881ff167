package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui"
)

var (
	tuiBusiness     string
	tuiDemographics string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for zipsight.

The TUI provides an upload form, the paginated result tables, and the
chart fetch status with keyboard navigation.

Controls:
  Tab        - Switch input field / cycle tables
  Enter      - Analyze
  ←/→        - Previous / next page
  p, n       - Previous / next page block
  Esc        - Back
  ?          - Toggle help
  Ctrl+C     - Quit`,
	RunE: runTUICmd,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiBusiness, "business", "b", "", "preset path for the business listing CSV")
	tuiCmd.Flags().StringVarP(&tuiDemographics, "demographics", "d", "", "preset path for the demographic CSV")
	rootCmd.AddCommand(tuiCmd)
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps the stack trace visible after the alternate
	// screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Analysis: analysisService,
		Charts:   chartService,
		Results:  resultsService,
		Watcher:  inputWatcher,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app.WithContext(ctx)
	app.SetPaths(tuiBusiness, tuiDemographics)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if chartService != nil {
		if err := chartService.ReleaseAll(); err != nil {
			fmt.Fprintf(os.Stderr, "chart cleanup: %v\n", err)
		}
	}
	return nil
}
