package charts

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/messages"
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// stubChartService implements driving.ChartService around a fixed set.
type stubChartService struct {
	set *domain.ChartSet
}

func (s *stubChartService) Fetch(_ context.Context, run *domain.AnalysisRun) <-chan domain.ChartUpdate {
	ch := make(chan domain.ChartUpdate)
	close(ch)
	return ch
}

func (s *stubChartService) Apply(update domain.ChartUpdate) bool {
	s.set.SetSlot(update.ID, update.Slot)
	return true
}

func (s *stubChartService) Current() *domain.ChartSet { return s.set }
func (s *stubChartService) ReleaseAll() error         { return nil }

func TestView_NoChartsYet(t *testing.T) {
	view := NewView(nil, nil, &stubChartService{})

	assert.Contains(t, view.View(), "No charts yet")
}

func TestView_RendersSlotStates(t *testing.T) {
	set := domain.NewChartSet("cycle-1")
	set.SetSlot(domain.ChartIndustryPie, domain.ChartSlot{Status: domain.SlotReady, Path: "/tmp/charts/cycle-1/industry_pie.png"})
	set.SetSlot(domain.ChartBusinessPerCapita, domain.ChartSlot{Status: domain.SlotUnavailable})
	view := NewView(nil, nil, &stubChartService{set: set})

	out := view.View()
	assert.Contains(t, out, "Industry Distribution")
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "/tmp/charts/cycle-1/industry_pie.png")
	assert.Contains(t, out, "Businesses per Capita")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "Correlation Heatmap")
	assert.Contains(t, out, "fetching...")
}

func TestView_EscGoesToResults(t *testing.T) {
	view := NewView(nil, nil, &stubChartService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewResults}, cmd())
}
