// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm
// architecture.
package messages

import "github.com/zipsight-labs/zipsight-cli/internal/core/domain"

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewUpload is the file selection and analyse view.
	ViewUpload ViewType = iota
	// ViewResults shows the paginated result tables.
	ViewResults
	// ViewCharts shows the chart slot statuses.
	ViewCharts
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewUpload:
		return "upload"
	case ViewResults:
		return "results"
	case ViewCharts:
		return "charts"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// AnalysisCompleted carries the analysis outcome back to the model.
// Exactly one of Run and Err is set.
type AnalysisCompleted struct {
	Run *domain.AnalysisRun
	Err error
}

// ChartFetched carries one resolved chart slot.
type ChartFetched struct {
	Update domain.ChartUpdate
}

// ChartCycleDone signals that every slot of the current cycle resolved.
type ChartCycleDone struct{}

// InputFileChanged signals a watched input file changed on disk.
type InputFileChanged struct {
	Path string
}
