package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/messages"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/styles"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/views/charts"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/views/results"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/views/upload"
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// All service state (pagination cursors, the chart set) is mutated only
// from Update in response to resolved messages, so the cooperative
// single-task model of the services holds.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	uploadView  *upload.View
	resultsView *results.View
	chartsView  *charts.View

	currentView messages.ViewType

	// chartCh streams slot updates for the active fetch cycle.
	chartCh <-chan domain.ChartUpdate

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		uploadView:  upload.NewView(s, km, ports.Analysis),
		resultsView: results.NewView(s, km, ports.Results),
		chartsView:  charts.NewView(s, km, ports.Charts),
		currentView: messages.ViewUpload,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	return a
}

// SetPaths pre-fills the upload view's path inputs.
func (a *App) SetPaths(business, demographics string) {
	a.uploadView.SetPaths(business, demographics)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("zipsight - Business & Demographics"),
		a.uploadView.Init(),
	}
	if cmd := a.waitForInputChange(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.uploadView.SetDimensions(msg.Width, msg.Height)
		a.resultsView.SetDimensions(msg.Width, msg.Height)
		a.chartsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.AnalysisCompleted:
		return a.handleAnalysisCompleted(msg)

	case messages.ChartFetched:
		// Stale updates from a superseded cycle are dropped (and their
		// resources released) inside Apply.
		a.ports.Charts.Apply(msg.Update)
		return a, a.waitForChart()

	case messages.ChartCycleDone:
		a.chartCh = nil
		return a, nil

	case messages.InputFileChanged:
		a.ports.Results.MarkStale(msg.Path)
		return a, a.waitForInputChange()

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil
	}

	// Forward other messages (spinner ticks, blink) to the active view.
	switch a.currentView {
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewCharts:
		a.chartsView, cmd = a.chartsView.Update(msg)
	case messages.ViewHelp:
		// Help view is static.
	}

	return a, cmd
}

// handleKeyMsg routes keys globally and to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if key.Matches(msg, a.keymap.Quit) {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewUpload:
		// View switching from upload, unless the user is typing into a
		// path field: plain letters belong to the inputs.
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.ViewResults:
		switch {
		case key.Matches(msg, a.keymap.Charts):
			a.currentView = messages.ViewCharts
			return a, nil
		case key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.resultsView, cmd = a.resultsView.Update(msg)
		return a, cmd

	case messages.ViewCharts:
		switch {
		case key.Matches(msg, a.keymap.Results):
			a.currentView = messages.ViewResults
			return a, nil
		case key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.chartsView, cmd = a.chartsView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if key.Matches(msg, a.keymap.Back) {
			a.currentView = messages.ViewResults
		}
		return a, nil
	}

	return a, nil
}

// handleAnalysisCompleted applies a successful run: every table binding
// resets to page 1, the input files go under watch, and the chart fetch
// cycle starts. Failures surface on the upload view and leave any prior
// results displayed.
func (a *App) handleAnalysisCompleted(msg messages.AnalysisCompleted) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.uploadView, cmd = a.uploadView.Update(msg)

	if msg.Err != nil {
		return a, cmd
	}

	a.ports.Results.ApplyRun(msg.Run)

	if a.ports.Watcher != nil {
		if err := a.ports.Watcher.Watch(msg.Run.Pair.Business.Path, msg.Run.Pair.Demographics.Path); err != nil {
			a.err = err
		}
	}

	a.chartCh = a.ports.Charts.Fetch(a.ctx, msg.Run)
	a.currentView = messages.ViewResults

	return a, tea.Batch(cmd, a.waitForChart())
}

// waitForChart returns a command that delivers the next chart update.
func (a *App) waitForChart() tea.Cmd {
	ch := a.chartCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return messages.ChartCycleDone{}
		}
		return messages.ChartFetched{Update: update}
	}
}

// waitForInputChange returns a command that delivers the next watched
// file change, or nil when no watcher is wired.
func (a *App) waitForInputChange() tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	ch := a.ports.Watcher.Events()
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return messages.InputFileChanged{Path: path}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewResults:
		return a.resultsView.View()
	case messages.ViewCharts:
		return a.chartsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.uploadView.View()
	}
}

// viewHelp renders the help view from the keymap's bindings.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	section := func(name string, bindings []key.Binding) {
		b.WriteString(a.styles.Subtitle.Render(name))
		b.WriteString("\n")
		for _, binding := range bindings {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	section("Upload", a.keymap.UploadHelp())
	section("Results", a.keymap.ResultsHelp())
	section("Charts", a.keymap.ChartsHelp())

	b.WriteString(a.styles.Help.Render(keymap.Hints(a.keymap.Back, a.keymap.Quit)))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.uploadView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
	a.chartsView.SetDimensions(width, height)
}
