package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Logs       key.Binding
	Refresh    key.Binding

	// Search
	FocusSearch key.Binding
	Confirm     key.Binding

	// Lists
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Recipe
	ServingsUp   key.Binding
	ServingsDown key.Binding
	Bookmark     key.Binding

	// Upload form
	Upload     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	SubmitForm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
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
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next panel"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous panel"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input"),
		),

		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Session log"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search recipes"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "Next page"),
		),

		ServingsUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More servings"),
		),
		ServingsDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Fewer servings"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Toggle bookmark"),
		),

		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload recipe"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		SubmitForm: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Upload"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSearch, k.Tab, k.ServingsUp, k.ServingsDown, k.Bookmark, k.Upload, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusSearch, k.Tab, k.ShiftTab, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.Confirm},
		{k.PrevPage, k.NextPage},
		{k.ServingsUp, k.ServingsDown, k.Bookmark},
		{k.Upload, k.SubmitForm},
		{k.Logs, k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
