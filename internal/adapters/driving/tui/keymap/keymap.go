// Package keymap defines keybindings for the TUI. Views match incoming
// keys against the bindings and render their help footers from the
// bindings' help texts, so a key and its hint can never drift apart.
package keymap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Analyze submits the selected files for analysis.
	Analyze key.Binding

	// NextField moves focus between the file path inputs.
	NextField key.Binding

	// NextTable cycles through the result tables.
	NextTable key.Binding

	// PageLeft steps one page back in the active table.
	PageLeft key.Binding

	// PageRight steps one page forward in the active table.
	PageRight key.Binding

	// BlockPrev jumps to the page before the visible control block.
	BlockPrev key.Binding

	// BlockNext jumps to the page after the visible control block.
	BlockNext key.Binding

	// Results switches to the results view.
	Results key.Binding

	// Charts switches to the charts view.
	Charts key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch field"),
		),
		NextTable: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next table"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		BlockPrev: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "prev block"),
		),
		BlockNext: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next block"),
		),
		Results: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "results"),
		),
		Charts: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "charts"),
		),
	}
}

// UploadHelp returns the bindings shown on the upload view's footer.
func (k *KeyMap) UploadHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Analyze, k.Back, k.Quit}
}

// ResultsHelp returns the bindings shown on the results view's footer.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NextTable, k.PageLeft, k.PageRight, k.BlockPrev, k.BlockNext, k.Charts, k.Help, k.Back, k.Quit}
}

// ChartsHelp returns the bindings shown on the charts view's footer.
func (k *KeyMap) ChartsHelp() []key.Binding {
	return []key.Binding{k.Results, k.Help, k.Back, k.Quit}
}

// Hints renders bindings as a one-line help footer.
func Hints(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
