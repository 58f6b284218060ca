package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Chart
	CycleMode key.Binding
	CycleKind key.Binding

	// Playback
	PlayPause   key.Binding
	StepBack    key.Binding
	StepForward key.Binding
	Faster      key.Binding
	Slower      key.Binding

	// View
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Fullscreen key.Binding
	ToggleView key.Binding

	// Application
	Refresh key.Binding
	Export  key.Binding
	Help    key.Binding
	Close   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous region"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next region"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select region"),
		),

		// Chart
		CycleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "historical/forecast"),
		),
		CycleKind: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chart kind"),
		),

		// Playback
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "play/pause"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous day"),
		),
		StepForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),

		// View
		ZoomIn: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "zoom out"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen chart"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "map/list"),
		),

		// Application
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export chart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.PlayPause, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Refresh},
		{k.CycleMode, k.CycleKind, k.Export, k.Fullscreen},
		{k.PlayPause, k.StepBack, k.StepForward, k.Faster, k.Slower},
		{k.ZoomIn, k.ZoomOut, k.ToggleView},
		{k.Help, k.Close, k.Quit},
	}
}
