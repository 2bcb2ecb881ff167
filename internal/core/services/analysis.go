package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driven"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService orchestrates the upload-and-analyse request against
// the remote service, including the swap-and-retry recovery.
type AnalysisService struct {
	client driven.AnalysisClient

	mu       sync.Mutex
	inFlight bool
}

// NewAnalysisService creates a new analysis orchestrator.
func NewAnalysisService(client driven.AnalysisClient) *AnalysisService {
	return &AnalysisService{client: client}
}

// Analyze submits the pair to the analysis service.
//
// On a server failure matching the role-mismatch diagnostic it retries
// exactly once with the files' roles swapped; the retry's outcome is
// final. Any other server failure returns immediately, and transport
// faults come back as domain.ErrServiceUnavailable without a retry.
// The caller's pair is never mutated.
func (s *AnalysisService) Analyze(ctx context.Context, pair domain.UploadPair) (*domain.AnalysisRun, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}

	if !s.begin() {
		return nil, domain.ErrAnalysisInFlight
	}
	defer s.end()

	logger.Section("Analysis")
	logger.Debug("Submitting business=%q demographics=%q", pair.Business.Name(), pair.Demographics.Name())

	started := time.Now()

	report, err := s.client.Analyze(ctx, pair)
	if err == nil {
		return s.newRun(pair, report, started), nil
	}

	var srvErr *domain.AnalysisError
	if !errors.As(err, &srvErr) {
		// Transport-level fault, never retried.
		logger.Warn("Analysis transport failure: %v", err)
		return nil, err
	}

	if !domain.IsRoleMismatch(srvErr.Message) {
		logger.Info("Analysis rejected by service: %s", srvErr.Message)
		return nil, srvErr
	}

	// The diagnostic suggests the files were assigned the wrong roles;
	// retry once with the orientation swapped.
	logger.Info("Role mismatch reported, retrying with swapped files")

	report, retryErr := s.client.Analyze(ctx, pair.Swapped())
	if retryErr == nil {
		// The swapped orientation won. This is logged but deliberately
		// not exposed on the run; see NOTES in DESIGN.md.
		logger.Info("Swapped retry succeeded")
		return s.newRun(pair, report, started), nil
	}

	var retrySrvErr *domain.AnalysisError
	if errors.As(retryErr, &retrySrvErr) {
		logger.Warn("Swapped retry rejected: %s", retrySrvErr.Message)
		return nil, &domain.AnalysisError{
			Message:      srvErr.Message,
			RetryMessage: retrySrvErr.Message,
		}
	}

	logger.Warn("Swapped retry transport failure: %v", retryErr)
	return nil, retryErr
}

// Preview returns the parsed rows of one file.
func (s *AnalysisService) Preview(ctx context.Context, file domain.Upload) ([]domain.Record, error) {
	if file.IsZero() {
		return nil, domain.ErrMissingInput
	}

	rows, err := s.client.Preview(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", file.Name(), err)
	}
	return rows, nil
}

// newRun wraps a successful report with a fresh cycle ID.
func (s *AnalysisService) newRun(pair domain.UploadPair, report *domain.AnalysisReport, started time.Time) *domain.AnalysisRun {
	run := &domain.AnalysisRun{
		ID:        uuid.New().String(),
		Pair:      pair,
		Report:    report,
		StartedAt: started,
	}
	logger.Info("Analysis succeeded: cycle=%s zipcodes=%d business_rows=%d demo_rows=%d",
		run.ID, report.TotalZipcodes, len(report.BusinessRows), len(report.DemoRows))
	return run
}

// begin marks an invocation active; it fails when one already is.
// The UI disables its trigger for the duration of a call, but the guard
// keeps overlapping invocations from corrupting downstream state anyway.
func (s *AnalysisService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *AnalysisService) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}
