package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driven"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
	"github.com/zipsight-labs/zipsight-cli/internal/logger"
)

// Ensure ChartService implements the interface.
var _ driving.ChartService = (*ChartService)(nil)

// ChartService fans out the follow-up chart fetches for a successful
// analysis run and owns the rendered images' on-disk lifetime.
//
// Fetch goroutines only download and write files; all chart-set state
// is mutated through Apply on the consuming task, so no locking is
// needed beyond guarding the current-cycle pointer.
type ChartService struct {
	client driven.AnalysisClient
	dir    string

	mu      sync.Mutex
	current *domain.ChartSet
}

// NewChartService creates a chart coordinator writing images under dir.
func NewChartService(client driven.AnalysisClient, dir string) *ChartService {
	return &ChartService{client: client, dir: dir}
}

// Fetch starts one concurrent request per chart slot for the run.
// Any images from the previous cycle are released first. The returned
// channel yields each slot as it resolves and closes when all three
// have; a slower chart never blocks a faster one.
func (s *ChartService) Fetch(ctx context.Context, run *domain.AnalysisRun) <-chan domain.ChartUpdate {
	charts := domain.AllCharts()
	updates := make(chan domain.ChartUpdate, len(charts))

	s.mu.Lock()
	if s.current != nil {
		s.releaseLocked(s.current.CycleID)
	}
	s.current = domain.NewChartSet(run.ID)
	s.mu.Unlock()

	logger.Section("Chart Fetch")
	logger.Debug("Starting %d chart fetches for cycle %s", len(charts), run.ID)

	var wg sync.WaitGroup
	for _, id := range charts {
		wg.Add(1)
		go func(id domain.ChartID) {
			defer wg.Done()
			updates <- domain.ChartUpdate{
				CycleID: run.ID,
				ID:      id,
				Slot:    s.fetchOne(ctx, id, run),
			}
		}(id)
	}

	go func() {
		wg.Wait()
		close(updates)
	}()

	return updates
}

// fetchOne renders a single chart and writes it to the cycle's
// directory. Failure degrades only this slot.
//
// A fetch can outlive its cycle: a newer Fetch releases this cycle's
// directory while the network call is still in flight, and writing
// afterwards would silently recreate it. Cycle currency is therefore
// re-checked around the write, and a superseded image is removed here
// rather than left for a consumer that will never Apply it.
func (s *ChartService) fetchOne(ctx context.Context, id domain.ChartID, run *domain.AnalysisRun) domain.ChartSlot {
	body, err := s.client.RenderChart(ctx, id, run.Pair)
	if err != nil {
		logger.Warn("Chart %s failed: %v", id, err)
		return domain.ChartSlot{Status: domain.SlotUnavailable, Err: err}
	}

	if !s.isCurrent(run.ID) {
		logger.Debug("Discarding superseded chart %s from cycle %s", id, run.ID)
		return domain.ChartSlot{Status: domain.SlotUnavailable, Err: domain.ErrChartUnavailable}
	}

	path, err := s.writeImage(run.ID, id, body)
	if err != nil {
		logger.Warn("Chart %s write failed: %v", id, err)
		return domain.ChartSlot{Status: domain.SlotUnavailable, Err: err}
	}

	if !s.isCurrent(run.ID) {
		logger.Debug("Discarding superseded chart %s from cycle %s", id, run.ID)
		s.discardImage(path)
		return domain.ChartSlot{Status: domain.SlotUnavailable, Err: domain.ErrChartUnavailable}
	}

	logger.Debug("Chart %s saved to %s", id, path)
	return domain.ChartSlot{Status: domain.SlotReady, Path: path}
}

// isCurrent reports whether cycleID is still the active cycle.
func (s *ChartService) isCurrent(cycleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.CycleID == cycleID
}

// Apply stores a resolved slot into the current set. Updates from a
// superseded cycle are dropped and their image file removed.
func (s *ChartService) Apply(update domain.ChartUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.CycleID != update.CycleID {
		logger.Debug("Dropping stale chart %s from cycle %s", update.ID, update.CycleID)
		if update.Slot.Path != "" {
			s.discardImage(update.Slot.Path)
		}
		return false
	}

	s.current.SetSlot(update.ID, update.Slot)
	return true
}

// Current returns the active cycle's chart set.
func (s *ChartService) Current() *domain.ChartSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ReleaseAll removes every image the service owns. Called on teardown.
func (s *ChartService) ReleaseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	cycleID := s.current.CycleID
	s.current = nil

	if err := os.RemoveAll(filepath.Join(s.dir, cycleID)); err != nil {
		return fmt.Errorf("release charts: %w", err)
	}
	return nil
}

// discardImage removes a single superseded image, and its cycle
// directory once the last image in it is gone.
func (s *ChartService) discardImage(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Releasing stale chart %s: %v", path, err)
	}
	// Fails while sibling images remain; the last discard clears it.
	_ = os.Remove(filepath.Dir(path))
}

// releaseLocked removes a cycle's image directory. Caller holds mu.
func (s *ChartService) releaseLocked(cycleID string) {
	path := filepath.Join(s.dir, cycleID)
	logger.Debug("Releasing chart resources for cycle %s", cycleID)
	if err := os.RemoveAll(path); err != nil {
		logger.Warn("Releasing %s: %v", path, err)
	}
}

// writeImage persists one rendered chart under <dir>/<cycle>/<id>.png.
func (s *ChartService) writeImage(cycleID string, id domain.ChartID, body []byte) (string, error) {
	dir := filepath.Join(s.dir, cycleID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	path := filepath.Join(dir, string(id)+".png")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return "", fmt.Errorf("write chart image: %w", err)
	}
	return path, nil
}
