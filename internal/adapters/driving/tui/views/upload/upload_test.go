package upload

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/messages"
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// stubAnalysisService implements driving.AnalysisService for testing.
type stubAnalysisService struct {
	run   *domain.AnalysisRun
	err   error
	pairs []domain.UploadPair
}

func (s *stubAnalysisService) Analyze(_ context.Context, pair domain.UploadPair) (*domain.AnalysisRun, error) {
	s.pairs = append(s.pairs, pair)
	return s.run, s.err
}

func (s *stubAnalysisService) Preview(_ context.Context, _ domain.Upload) ([]domain.Record, error) {
	return nil, nil
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})

	require.NotNil(t, view)
	assert.False(t, view.Analyzing())
	assert.Empty(t, view.Err())
	assert.True(t, view.Pair().Business.IsZero())
}

func TestView_SetPaths(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})

	view.SetPaths("/tmp/biz.csv", "/tmp/demo.csv")

	pair := view.Pair()
	assert.Equal(t, "/tmp/biz.csv", pair.Business.Path)
	assert.Equal(t, "/tmp/demo.csv", pair.Demographics.Path)
}

func TestView_EnterWithoutFilesShowsError(t *testing.T) {
	service := &stubAnalysisService{}
	view := NewView(nil, nil, service)

	view, cmd := view.Update(enterKey())

	assert.Nil(t, cmd)
	assert.False(t, view.Analyzing())
	assert.Equal(t, "Please upload both files.", view.Err())
	assert.Empty(t, service.pairs, "no request without both files")
}

func TestView_EnterStartsAnalysis(t *testing.T) {
	service := &stubAnalysisService{run: &domain.AnalysisRun{ID: "cycle-1"}}
	view := NewView(nil, nil, service)
	view.SetPaths("/tmp/biz.csv", "/tmp/demo.csv")

	view, cmd := view.Update(enterKey())

	assert.True(t, view.Analyzing())
	assert.NotNil(t, cmd)
}

func TestView_EnterIgnoredWhileAnalyzing(t *testing.T) {
	service := &stubAnalysisService{run: &domain.AnalysisRun{ID: "cycle-1"}}
	view := NewView(nil, nil, service)
	view.SetPaths("/tmp/biz.csv", "/tmp/demo.csv")

	view, _ = view.Update(enterKey())
	require.True(t, view.Analyzing())

	view, cmd := view.Update(enterKey())

	assert.Nil(t, cmd, "enter is inert while a call is in flight")
	assert.True(t, view.Analyzing())
}

func TestView_AnalysisCompletedClearsSpinner(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})
	view.SetPaths("/tmp/biz.csv", "/tmp/demo.csv")
	view, _ = view.Update(enterKey())

	view, _ = view.Update(messages.AnalysisCompleted{Run: &domain.AnalysisRun{ID: "cycle-1"}})

	assert.False(t, view.Analyzing())
	assert.Empty(t, view.Err())
}

func TestView_AnalysisCompletedErrorText(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})

	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrServiceUnavailable, "Network error or server is unavailable."},
		{domain.ErrMissingInput, "Please upload both files."},
		{domain.ErrAnalysisInFlight, "An analysis is already running."},
		{&domain.AnalysisError{Message: "no valid zip column found"}, "analysis failed: no valid zip column found"},
	}
	for _, tc := range cases {
		view, _ = view.Update(messages.AnalysisCompleted{Err: tc.err})
		assert.Equal(t, tc.want, view.Err())
	}
}

func TestView_TabTogglesFocus(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})

	// Typed runes land in the focused field.
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyTab})
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})

	pair := view.Pair()
	assert.Equal(t, "a", pair.Business.Path)
	assert.Equal(t, "b", pair.Demographics.Path)
}

func TestView_EscGoesToResults(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewResults}, cmd())
}

func TestView_ViewRendersErrorAndHelp(t *testing.T) {
	view := NewView(nil, nil, &stubAnalysisService{})
	view.SetDimensions(80, 24)

	view, _ = view.Update(messages.AnalysisCompleted{Err: domain.ErrServiceUnavailable})

	out := view.View()
	assert.Contains(t, out, "Network error or server is unavailable.")
	assert.Contains(t, out, "[enter] analyze")
}
