package services

import (
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// Ensure ResultsService implements the interface.
var _ driving.ResultsService = (*ResultsService)(nil)

// ResultsService holds the last successful analysis run and one
// pagination cursor per result table. The four bindings are fully
// independent: navigating one never moves another.
type ResultsService struct {
	pageSize  int
	blockSize int

	run     *domain.AnalysisRun
	cursors map[domain.TableID]*domain.Cursor
	stale   bool
}

// NewResultsService creates result bindings with the given page and
// control-block sizes.
func NewResultsService(pageSize, blockSize int) *ResultsService {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if blockSize < 1 {
		blockSize = domain.DefaultBlockSize
	}

	cursors := make(map[domain.TableID]*domain.Cursor, len(domain.AllTables()))
	for _, t := range domain.AllTables() {
		c := domain.NewCursor(pageSize)
		cursors[t] = &c
	}

	return &ResultsService{
		pageSize:  pageSize,
		blockSize: blockSize,
		cursors:   cursors,
	}
}

// ApplyRun replaces every table's dataset and resets each cursor to
// page 1. Prior results are superseded wholesale.
func (s *ResultsService) ApplyRun(run *domain.AnalysisRun) {
	s.run = run
	s.stale = false
	for _, c := range s.cursors {
		c.Reset()
	}
	logger.Debug("Applied run %s to result tables", run.ID)
}

// Run returns the applied run.
func (s *ResultsService) Run() *domain.AnalysisRun {
	return s.run
}

// Rows returns the rows visible on a table's current page.
func (s *ResultsService) Rows(table domain.TableID) []domain.Record {
	rows := s.dataset(table)
	return domain.Paginate(rows, s.cursors[table].Page, s.pageSize)
}

// Window returns a table's visible pagination controls.
func (s *ResultsService) Window(table domain.TableID) domain.Window {
	rows := s.dataset(table)
	return domain.ComputeWindow(s.cursors[table].Page, len(rows), s.pageSize, s.blockSize)
}

// GoTo navigates one table, clamped to its valid range.
func (s *ResultsService) GoTo(table domain.TableID, page int) {
	s.cursors[table].GoTo(page, len(s.dataset(table)))
}

// Page returns a table's current page.
func (s *ResultsService) Page(table domain.TableID) int {
	return s.cursors[table].Page
}

// MarkStale flags the displayed results as out of date.
func (s *ResultsService) MarkStale(path string) {
	if s.run == nil {
		return
	}
	if !s.stale {
		logger.Info("Input %s changed, results are stale", path)
	}
	s.stale = true
}

// Stale reports whether the displayed results are flagged stale.
func (s *ResultsService) Stale() bool {
	return s.stale
}

// dataset returns a table's backing collection for the applied run.
func (s *ResultsService) dataset(table domain.TableID) []domain.Record {
	if s.run == nil {
		return nil
	}
	return table.Rows(s.run.Report)
}
