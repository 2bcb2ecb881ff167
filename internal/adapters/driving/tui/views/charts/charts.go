// Package charts provides the chart slot status view.
package charts

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/messages"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/styles"
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
)

// View shows the three chart slots for the current analysis cycle.
// Each slot resolves independently; a failed slot shows as unavailable
// without affecting the others.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	charts driving.ChartService

	width  int
	height int
}

// NewView creates the charts view.
func NewView(s *styles.Styles, km *keymap.KeyMap, charts driving.ChartService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, charts: charts}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the charts view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keymap.Back) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewResults}
			}
		}
	}

	return v, nil
}

// View renders the charts view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Charts"))
	b.WriteString("\n\n")

	set := v.charts.Current()
	if set == nil {
		b.WriteString(v.styles.Muted.Render("No charts yet. Run an analysis first."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	for _, id := range domain.AllCharts() {
		b.WriteString(v.renderSlot(id, set.Slot(id)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderSlot renders one chart line.
func (v *View) renderSlot(id domain.ChartID, slot domain.ChartSlot) string {
	title := v.styles.Subtitle.Render(id.Title())

	switch slot.Status {
	case domain.SlotReady:
		return title + "  " + v.styles.Success.Render("saved") + "  " + v.styles.Muted.Render(slot.Path)
	case domain.SlotUnavailable:
		return title + "  " + v.styles.Error.Render("unavailable")
	default:
		return title + "  " + v.styles.Muted.Render("fetching...")
	}
}

// renderHelp renders the help footer from the view's keybindings.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(keymap.Hints(v.keymap.ChartsHelp()...))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
