package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the board's key bindings.
type keyMap struct {
	Theme   key.Binding
	Animate key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Theme, k.Animate},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "next theme"),
	),
	Animate: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle motion"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}
