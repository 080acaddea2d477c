package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the key bindings for the dashboard.
type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

// keys is the global key map.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// helpText is the full help string displayed in the footer when help is toggled on.
const helpText = "q/ctrl+c: quit  ?: toggle help — the run stops on its own when the duration elapses"
