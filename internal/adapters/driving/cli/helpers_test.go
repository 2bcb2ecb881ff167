package cli

import (
	"context"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// stubAnalysis implements driving.AnalysisService for command tests.
type stubAnalysis struct {
	run         *domain.AnalysisRun
	err         error
	previewRows []domain.Record
	previewErr  error
	pairs       []domain.UploadPair
}

func (s *stubAnalysis) Analyze(_ context.Context, pair domain.UploadPair) (*domain.AnalysisRun, error) {
	s.pairs = append(s.pairs, pair)
	if s.err != nil {
		return nil, s.err
	}
	if s.run != nil {
		return s.run, nil
	}
	return &domain.AnalysisRun{ID: "test-cycle", Pair: pair, Report: &domain.AnalysisReport{}}, nil
}

func (s *stubAnalysis) Preview(_ context.Context, _ domain.Upload) ([]domain.Record, error) {
	return s.previewRows, s.previewErr
}

// stubCharts implements driving.ChartService for command tests.
type stubCharts struct {
	updates []domain.ChartUpdate
	set     *domain.ChartSet
}

func (s *stubCharts) Fetch(_ context.Context, run *domain.AnalysisRun) <-chan domain.ChartUpdate {
	s.set = domain.NewChartSet(run.ID)
	ch := make(chan domain.ChartUpdate, len(s.updates))
	for _, u := range s.updates {
		ch <- u
	}
	close(ch)
	return ch
}

func (s *stubCharts) Apply(update domain.ChartUpdate) bool {
	if s.set == nil || s.set.CycleID != update.CycleID {
		return false
	}
	s.set.SetSlot(update.ID, update.Slot)
	return true
}

func (s *stubCharts) Current() *domain.ChartSet { return s.set }
func (s *stubCharts) ReleaseAll() error         { return nil }

// stubResults implements driving.ResultsService for command tests.
type stubResults struct {
	applied []*domain.AnalysisRun
}

func (s *stubResults) ApplyRun(run *domain.AnalysisRun)    { s.applied = append(s.applied, run) }
func (s *stubResults) Run() *domain.AnalysisRun            { return nil }
func (s *stubResults) Rows(domain.TableID) []domain.Record { return nil }
func (s *stubResults) Window(domain.TableID) domain.Window { return domain.Window{} }
func (s *stubResults) GoTo(domain.TableID, int)            {}
func (s *stubResults) Page(domain.TableID) int             { return 1 }
func (s *stubResults) MarkStale(string)                    {}
func (s *stubResults) Stale() bool                         { return false }

// setupTestServices wires stub services into the command package and
// returns a cleanup restoring the previous wiring and flag state.
func setupTestServices(analysis *stubAnalysis) func() {
	prevAnalysis := analysisService
	prevCharts := chartService
	prevResults := resultsService
	prevStore := configStore

	analysisService = analysis
	chartService = &stubCharts{}
	resultsService = &stubResults{}

	return func() {
		analysisService = prevAnalysis
		chartService = prevCharts
		resultsService = prevResults
		configStore = prevStore

		analyzeBusiness = ""
		analyzeDemographics = ""
		analyzeJSON = false
		analyzeCharts = false
		previewPage = 1
		rootCmd.SetArgs(nil)
	}
}
