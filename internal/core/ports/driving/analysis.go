package driving

import (
	"context"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// AnalysisService drives the upload-and-analyse request, including the
// single automatic retry with swapped file roles.
type AnalysisService interface {
	// Analyze submits the pair and returns a successful run, or an
	// error from the domain taxonomy. At most one invocation may be
	// active at a time.
	Analyze(ctx context.Context, pair domain.UploadPair) (*domain.AnalysisRun, error)

	// Preview returns the parsed rows of a single file for display
	// before analysis.
	Preview(ctx context.Context, file domain.Upload) ([]domain.Record, error)
}
