package driven

import (
	"context"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// AnalysisClient is the remote analysis service contract.
//
// Error contract: failures reported by the service itself come back as
// *domain.AnalysisError carrying the server's message; network-level
// faults (connection refused, non-2xx transport failures, malformed
// bodies) are normalised to domain.ErrServiceUnavailable and never
// expose raw transport detail.
type AnalysisClient interface {
	// Analyze submits both files as a multipart request and returns the
	// structured aggregate on success.
	Analyze(ctx context.Context, pair domain.UploadPair) (*domain.AnalysisReport, error)

	// RenderChart submits the file(s) a chart needs and returns the
	// binary image body.
	RenderChart(ctx context.Context, id domain.ChartID, pair domain.UploadPair) ([]byte, error)

	// Preview submits a single file and returns its parsed rows for a
	// client-side preview table.
	Preview(ctx context.Context, file domain.Upload) ([]domain.Record, error)
}
