package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage zipsight settings",
	Long: `View and change settings stored in the zipsight config file.

Settings:
  server_url      - analysis service base URL
  timeout_seconds - per-request timeout
  page_size       - rows per table page
  block_size      - pagination controls shown at once
  chart_dir       - directory for rendered chart images`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := configStore.Settings()
	cmd.Printf("config file: %s\n\n", configStore.FilePath())
	cmd.Printf("  server_url:      %s\n", settings.ServerURL)
	cmd.Printf("  timeout_seconds: %d\n", settings.TimeoutSeconds)
	cmd.Printf("  page_size:       %d\n", settings.PageSize)
	cmd.Printf("  block_size:      %d\n", settings.BlockSize)
	cmd.Printf("  chart_dir:       %s\n", settings.ChartDir)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	settings := configStore.Settings()

	switch key {
	case "server_url":
		settings.ServerURL = value
	case "chart_dir":
		settings.ChartDir = value
	case "timeout_seconds", "page_size", "block_size":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		switch key {
		case "timeout_seconds":
			settings.TimeoutSeconds = n
		case "page_size":
			settings.PageSize = n
		case "block_size":
			settings.BlockSize = n
		}
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}

	if err := configStore.Update(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("%s set to %s\n", key, value)
	return nil
}
