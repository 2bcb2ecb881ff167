package main

import (
	"fmt"
	"os"
	"time"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driven/analysis/rest"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driven/config/file"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driven/watch"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/cli"
	"github.com/zipsight-labs/zipsight-cli/internal/core/services"
	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := store.Settings()

	client := rest.NewClient(rest.Config{
		BaseURL: settings.ServerURL,
		Timeout: settings.Timeout(),
	})

	analysis := services.NewAnalysisService(client)
	charts := services.NewChartService(client, settings.ChartDir)
	results := services.NewResultsService(settings.PageSize, settings.BlockSize)

	watcher, err := watch.NewWatcher()
	if err != nil {
		// Stale detection is optional; the rest of the app works
		// without it.
		logger.Warn("input watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
		cli.SetInputWatcher(watcher)
	}

	cli.SetConfigStore(store)
	cli.SetAnalysisService(analysis)
	cli.SetChartService(charts)
	cli.SetResultsService(results)
	cli.SetVersion(version)

	start := time.Now()
	err = cli.Execute()
	logger.Debug("command finished in %s", time.Since(start))
	return err
}
