package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Earlier key.Binding
	Later   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp is shown in the status bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Earlier, k.Later, k.Help, k.Quit}
}

// FullHelp is shown when help is toggled on
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Earlier, k.Later},
		{k.Refresh, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Earlier: key.NewBinding(
		key.WithKeys("k", "up", "pgup"),
		key.WithHelp("↑/k", "earlier flights"),
	),
	Later: key.NewBinding(
		key.WithKeys("j", "down", "pgdown"),
		key.WithHelp("↓/j", "later flights"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
