package driving

import "github.com/zipsight-labs/zipsight-cli/internal/core/domain"

// ResultsService holds the last successful run and the four paginated
// view bindings over its collections.
type ResultsService interface {
	// ApplyRun replaces every table's backing dataset and resets each
	// binding to page 1.
	ApplyRun(run *domain.AnalysisRun)

	// Run returns the applied run, or nil before the first success.
	Run() *domain.AnalysisRun

	// Rows returns the rows visible on a table's current page.
	Rows(table domain.TableID) []domain.Record

	// Window returns a table's visible pagination controls.
	Window(table domain.TableID) domain.Window

	// GoTo navigates one table, clamped to its valid page range.
	GoTo(table domain.TableID, page int)

	// Page returns a table's current page.
	Page(table domain.TableID) int

	// MarkStale flags the current results as out of date because an
	// input file changed on disk.
	MarkStale(path string)

	// Stale reports whether the current results are flagged stale.
	Stale() bool
}
