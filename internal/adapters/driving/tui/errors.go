package tui

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrMissingChartService is returned when the chart service is not provided.
var ErrMissingChartService = errors.New("tui: chart service is required")

// ErrMissingResultsService is returned when the results service is not provided.
var ErrMissingResultsService = errors.New("tui: results service is required")
