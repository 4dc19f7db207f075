package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Views
	ViewConfig key.Binding
	ViewLog    key.Binding

	// Labels
	Paste       key.Binding
	Clear       key.Binding
	PrevPrinter key.Binding
	NextPrinter key.Binding
	Focus       key.Binding
	Print       key.Binding

	// Log view
	WarningsOnly key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to labels"),
		),

		ViewConfig: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "View config"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "View log"),
		),

		Paste: key.NewBinding(
			key.WithKeys("v", "ctrl+v"),
			key.WithHelp("v", "Paste"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear"),
		),
		PrevPrinter: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous printer"),
		),
		NextPrinter: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next printer"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Table/first/last"),
		),
		Print: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p/enter", "Print range"),
		),

		WarningsOnly: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Warnings only"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Paste, k.Print, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Paste, k.Clear, k.PrevPrinter, k.NextPrinter, k.Focus, k.Print},
		{k.ViewConfig, k.ViewLog, k.WarningsOnly, k.Escape},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
