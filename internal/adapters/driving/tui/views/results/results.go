// Package results provides the paginated result tables view.
package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/keymap"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/messages"
	"github.com/zipsight-labs/zipsight-cli/internal/adapters/driving/tui/styles"
	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
	"github.com/zipsight-labs/zipsight-cli/internal/core/ports/driving"
)

// column maps a header to the cell it renders for a record.
type column struct {
	header string
	cell   func(domain.Record) string
}

// tableColumns fixes the displayed columns per table. The report schema
// is open-ended, so anything absent renders as the fallback value.
var tableColumns = map[domain.TableID][]column{
	domain.TableBusiness: {
		{"Business Name", func(r domain.Record) string { return r.Field("Business Name") }},
		{"Industry", func(r domain.Record) string { return r.Field("Industry") }},
		{"ZIP", func(r domain.Record) string { return r.Field("ZIP") }},
		{"Address", func(r domain.Record) string {
			return strings.TrimSpace(r.Field("Address Building") + " " + r.Field("Address Street Name"))
		}},
	},
	domain.TableDemo: {
		{"ZIP", func(r domain.Record) string { return r.Field("ZIP") }},
		{"Gender (M/F)", func(r domain.Record) string {
			return r.Field("PERCENT MALE") + " / " + r.Field("PERCENT FEMALE")
		}},
		{"Ethnicity", func(r domain.Record) string { return r.Field("PERCENT BLACK NON HISPANIC") }},
	},
	domain.TableZipIndustry: {
		{"ZIP", func(r domain.Record) string { return r.Field("ZIP") }},
		{"Industry", func(r domain.Record) string { return r.Field("Industry") }},
		{"Count", func(r domain.Record) string { return r.Field("count_by_zip_industry") }},
	},
	domain.TableTopIndividual: {
		{"ZIP", func(r domain.Record) string { return r.Field("ZIP") }},
		{"Individuals", func(r domain.Record) string { return r.Field("individual_count") }},
	},
}

// View renders the analysis summary and the four paginated tables, one
// table visible at a time.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	results driving.ResultsService

	active int // index into domain.AllTables()
	width  int
	height int
}

// NewView creates the results view.
func NewView(s *styles.Styles, km *keymap.KeyMap, results driving.ResultsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, results: results}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// ActiveTable returns the table currently displayed.
func (v *View) ActiveTable() domain.TableID {
	return domain.AllTables()[v.active]
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg processes table navigation.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	table := v.ActiveTable()
	window := v.results.Window(table)

	switch {
	case key.Matches(msg, v.keymap.NextTable):
		v.active = (v.active + 1) % len(domain.AllTables())

	case key.Matches(msg, v.keymap.PageLeft):
		v.results.GoTo(table, v.results.Page(table)-1)

	case key.Matches(msg, v.keymap.PageRight):
		v.results.GoTo(table, v.results.Page(table)+1)

	case key.Matches(msg, v.keymap.BlockPrev):
		if !window.PrevDisabled {
			v.results.GoTo(table, window.PrevTarget)
		}

	case key.Matches(msg, v.keymap.BlockNext):
		if !window.NextDisabled {
			v.results.GoTo(table, window.NextTarget)
		}

	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewUpload}
		}
	}

	return v, nil
}

// View renders the results view.
func (v *View) View() string {
	run := v.results.Run()
	if run == nil {
		return v.styles.Muted.Render("No results yet. Run an analysis first.") +
			"\n\n" + v.renderHelp()
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Results"))
	if v.results.Stale() {
		b.WriteString("  ")
		b.WriteString(v.styles.Warning.Render("(input files changed, results may be stale)"))
	}
	b.WriteString("\n\n")

	b.WriteString(v.renderSummary(run.Report))
	b.WriteString("\n")
	b.WriteString(v.renderTable(v.ActiveTable()))
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderSummary renders the scalar fields and the top-ZIP list.
func (v *View) renderSummary(report *domain.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Total ZIPs analyzed: %d", report.TotalZipcodes)))
	b.WriteString("\n")

	correlation := "Not available"
	if report.CorrelationWithIncome != nil {
		correlation = strconv.FormatFloat(*report.CorrelationWithIncome, 'f', 4, 64)
	}
	b.WriteString(v.styles.Normal.Render("Correlation with median income: " + correlation))
	b.WriteString("\n\n")

	if len(report.TopZipcodes) > 0 {
		b.WriteString(v.styles.Subtitle.Render("Top ZIPs with Most Businesses"))
		b.WriteString("\n")
		for _, zip := range report.TopZipcodes {
			b.WriteString(v.styles.Normal.Render(
				fmt.Sprintf("  %s: %s businesses", zip.Field("ZIP"), zip.Field("business_count"))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderTable renders the active table with its pagination controls.
func (v *View) renderTable(table domain.TableID) string {
	var b strings.Builder

	cols := tableColumns[table]
	rows := v.results.Rows(table)
	window := v.results.Window(table)

	b.WriteString(v.styles.Subtitle.Render(table.String()))
	b.WriteString(v.styles.Muted.Render(
		fmt.Sprintf("  (page %d of %d)", v.results.Page(table), window.TotalPages)))
	b.WriteString("\n")

	widths := v.columnWidths(cols, rows)

	var header strings.Builder
	for i, col := range cols {
		header.WriteString(pad(col.header, widths[i]))
		header.WriteString("  ")
	}
	b.WriteString(v.styles.TableHeader.Render(header.String()))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(v.styles.Muted.Render("  (no rows)"))
		b.WriteString("\n")
	}
	for _, row := range rows {
		var line strings.Builder
		for i, col := range cols {
			line.WriteString(pad(col.cell(row), widths[i]))
			line.WriteString("  ")
		}
		b.WriteString(v.styles.Normal.Render(line.String()))
		b.WriteString("\n")
	}

	b.WriteString(v.renderPagination(window, v.results.Page(table)))
	b.WriteString("\n")

	return b.String()
}

// renderPagination renders the block-windowed control row: a Previous
// control, one block of page numbers, and a Next control.
func (v *View) renderPagination(window domain.Window, current int) string {
	var parts []string

	if window.PrevDisabled {
		parts = append(parts, v.styles.DisabledControl.Render("[Prev]"))
	} else {
		parts = append(parts, v.styles.Normal.Render("[Prev]"))
	}

	for _, page := range window.Pages {
		label := strconv.Itoa(page)
		if page == current {
			parts = append(parts, v.styles.ActivePage.Render(label))
		} else {
			parts = append(parts, v.styles.Muted.Render(label))
		}
	}

	if window.NextDisabled {
		parts = append(parts, v.styles.DisabledControl.Render("[Next]"))
	} else {
		parts = append(parts, v.styles.Normal.Render("[Next]"))
	}

	return strings.Join(parts, " ")
}

// columnWidths sizes each column to its widest visible cell.
func (v *View) columnWidths(cols []column, rows []domain.Record) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = len(col.header)
	}
	for _, row := range rows {
		for i, col := range cols {
			if l := len(col.cell(row)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	// Cap cells so wide datasets stay within the terminal.
	maxWidth := 40
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}
	return widths
}

// pad truncates or right-pads a cell to the column width.
func pad(s string, width int) string {
	if len(s) > width {
		if width <= 3 {
			return s[:width]
		}
		return s[:width-3] + "..."
	}
	return s + strings.Repeat(" ", width-len(s))
}

// renderHelp renders the help footer from the view's keybindings.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(keymap.Hints(v.keymap.ResultsHelp()...))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
