package cli

import (
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driven/config/file"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driven"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
)

// Injected services. Commands check for nil and fail with a clear
// error instead of panicking when wiring is incomplete.
var (
	analysisService driving.AnalysisService
	chartService    driving.ChartService
	resultsService  driving.ResultsService
	inputWatcher    driven.InputWatcher
	configStore     *file.ConfigStore
)

// SetAnalysisService sets the analysis service used by commands.
func SetAnalysisService(s driving.AnalysisService) {
	analysisService = s
}

// SetChartService sets the chart service used by commands.
func SetChartService(s driving.ChartService) {
	chartService = s
}

// SetResultsService sets the results service used by commands.
func SetResultsService(s driving.ResultsService) {
	resultsService = s
}

// SetInputWatcher sets the optional input file watcher used by the TUI.
func SetInputWatcher(w driven.InputWatcher) {
	inputWatcher = w
}

// SetConfigStore sets the settings store used by the config command.
func SetConfigStore(s *file.ConfigStore) {
	configStore = s
}
