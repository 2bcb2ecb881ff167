// Package tui provides the interactive terminal user interface for
// zipsight. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driven"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
)

// Ports aggregates the service interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis drives the upload-and-analyse request.
	Analysis driving.AnalysisService

	// Charts coordinates the follow-up chart fetches.
	Charts driving.ChartService

	// Results holds the applied run and its paginated bindings.
	Results driving.ResultsService

	// Watcher flags input files changing on disk. Optional; stale
	// detection is simply disabled when nil.
	Watcher driven.InputWatcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Charts == nil {
		return ErrMissingChartService
	}
	if p.Results == nil {
		return ErrMissingResultsService
	}
	return nil
}
