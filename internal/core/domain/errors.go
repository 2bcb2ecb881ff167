package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingInput indicates one or both input files are absent.
	// Analysis fails fast on it without any network call.
	ErrMissingInput = errors.New("both input files are required")

	// ErrServiceUnavailable indicates a network-level fault talking to
	// the analysis service. Raw transport detail is never surfaced.
	ErrServiceUnavailable = errors.New("analysis service unavailable")

	// ErrAnalysisInFlight indicates an analysis is already running.
	ErrAnalysisInFlight = errors.New("analysis already in progress")

	// ErrChartUnavailable indicates a single chart could not be
	// rendered. Other charts are unaffected.
	ErrChartUnavailable = errors.New("chart unavailable")
)

// AnalysisError is a failure reported by the analysis service itself.
// When the swap retry also failed, RetryMessage carries the second
// leg's diagnostic.
type AnalysisError struct {
	Message      string
	RetryMessage string
}

// Error returns the server-provided message, combining both legs when
// a swap retry also failed.
func (e *AnalysisError) Error() string {
	if e.RetryMessage != "" {
		return fmt.Sprintf("analysis failed: %s (retry with swapped files: %s)", e.Message, e.RetryMessage)
	}
	if e.Message == "" {
		return "analysis failed"
	}
	return "analysis failed: " + e.Message
}

// roleMismatchDiagnostic is the exact server wording that signals the
// two files were likely submitted in the wrong roles. The matching is a
// de facto protocol contract with the service: if its wording changes,
// the swap-retry path stops firing.
const roleMismatchDiagnostic = "no valid zip column found"

// IsRoleMismatch reports whether a server failure message indicates the
// files were submitted in swapped roles. This is the single place that
// couples the client to the service's diagnostic wording.
func IsRoleMismatch(message string) bool {
	return strings.Contains(strings.ToLower(message), roleMismatchDiagnostic)
}
