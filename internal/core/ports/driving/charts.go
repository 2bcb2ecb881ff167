package driving

import (
	"context"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// ChartService coordinates the follow-up chart fetches for a run.
//
// Fetch starts the concurrent per-slot requests and returns a channel
// of updates; the consumer feeds each update back through Apply so that
// chart state is only ever mutated by one task. Apply drops updates
// from superseded cycles.
type ChartService interface {
	// Fetch releases any previous cycle's resources, then issues the
	// chart requests concurrently. The channel yields one update per
	// slot as each resolves, then closes.
	Fetch(ctx context.Context, run *domain.AnalysisRun) <-chan domain.ChartUpdate

	// Apply stores a resolved slot. It returns false, releasing the
	// update's resources, when the update belongs to a superseded cycle.
	Apply(update domain.ChartUpdate) bool

	// Current returns the chart set of the active cycle, or nil before
	// the first fetch.
	Current() *domain.ChartSet

	// ReleaseAll removes every image resource the service owns.
	ReleaseAll() error
}
