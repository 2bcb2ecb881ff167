// Package upload provides the file selection and analyse view.
package upload

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/messages"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/styles"
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
)

// field indexes the two path inputs.
type field int

const (
	fieldBusiness field = iota
	fieldDemographics
)

// View is the upload view: two file path inputs and the analyse action.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.AnalysisService
	ctx     context.Context

	business     textinput.Model
	demographics textinput.Model
	spinner      spinner.Model

	focused   field
	analyzing bool
	errText   string
	width     int
	height    int
}

// NewView creates the upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	business := textinput.New()
	business.Placeholder = "path/to/businesses.csv"
	business.CharLimit = 512
	business.Width = 60
	business.Focus()

	demographics := textinput.New()
	demographics.Placeholder = "path/to/demographics.csv"
	demographics.CharLimit = 512
	demographics.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:       s,
		keymap:       km,
		service:      service,
		ctx:          context.Background(),
		business:     business,
		demographics: demographics,
		spinner:      sp,
		focused:      fieldBusiness,
	}
}

// WithContext sets the context used for analysis requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Pair returns the currently entered upload pair.
func (v *View) Pair() domain.UploadPair {
	return domain.UploadPair{
		Business:     domain.Upload{Path: strings.TrimSpace(v.business.Value())},
		Demographics: domain.Upload{Path: strings.TrimSpace(v.demographics.Value())},
	}
}

// SetPaths pre-fills the two path inputs.
func (v *View) SetPaths(business, demographics string) {
	v.business.SetValue(business)
	v.demographics.SetValue(demographics)
}

// Analyzing reports whether an analysis is in flight.
func (v *View) Analyzing() bool {
	return v.analyzing
}

// Err returns the last displayed error text.
func (v *View) Err() string {
	return v.errText
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.analyzing {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnalysisCompleted:
		v.analyzing = false
		if msg.Err != nil {
			v.errText = displayError(msg.Err)
		} else {
			v.errText = ""
		}
		return v, nil
	}

	return v, v.updateInputs(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.NextField):
		v.toggleFocus()
		return v, nil

	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewResults}
		}

	case key.Matches(msg, v.keymap.Analyze):
		// The analyse control stays disabled while a call is in
		// flight; re-triggering must wait for the outcome.
		if v.analyzing {
			return v, nil
		}

		pair := v.Pair()
		if err := pair.Validate(); err != nil {
			v.errText = displayError(err)
			return v, nil
		}

		v.analyzing = true
		v.errText = ""
		return v, tea.Batch(v.spinner.Tick, v.analyzeCmd(pair))
	}

	return v, v.updateInputs(msg)
}

// analyzeCmd runs the analysis and reports its outcome.
func (v *View) analyzeCmd(pair domain.UploadPair) tea.Cmd {
	return func() tea.Msg {
		run, err := v.service.Analyze(v.ctx, pair)
		return messages.AnalysisCompleted{Run: run, Err: err}
	}
}

// toggleFocus moves focus between the two inputs.
func (v *View) toggleFocus() {
	if v.focused == fieldBusiness {
		v.focused = fieldDemographics
		v.business.Blur()
		v.demographics.Focus()
	} else {
		v.focused = fieldBusiness
		v.demographics.Blur()
		v.business.Focus()
	}
}

// updateInputs forwards a message to the focused input.
func (v *View) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.focused == fieldBusiness {
		v.business, cmd = v.business.Update(msg)
	} else {
		v.demographics, cmd = v.demographics.Update(msg)
	}
	return cmd
}

// View renders the upload view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("ZIP Business & Demographics Analyzer"))
	b.WriteString("\n\n")

	if v.errText != "" {
		b.WriteString(v.styles.Error.Render(v.errText))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Subtitle.Render("Businesses CSV"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.business.View()))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Demographics CSV"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.demographics.View()))
	b.WriteString("\n\n")

	if v.analyzing {
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" analyzing..."))
	} else {
		b.WriteString(v.styles.Help.Render(keymap.Hints(v.keymap.UploadHelp()...)))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// displayError maps domain errors to user-facing text. Transport
// detail is never shown.
func displayError(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return "Please upload both files."
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "Network error or server is unavailable."
	case errors.Is(err, domain.ErrAnalysisInFlight):
		return "An analysis is already running."
	default:
		var srvErr *domain.AnalysisError
		if errors.As(err, &srvErr) {
			return srvErr.Error()
		}
		return err.Error()
	}
}
