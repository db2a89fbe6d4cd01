package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	Toggle   key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

var defaultKeys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Toggle:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "suggestions")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
}

// suggestionKeys selects the n-th suggestion.
var suggestionKeys = []key.Binding{
	key.NewBinding(key.WithKeys("f1")),
	key.NewBinding(key.WithKeys("f2")),
	key.NewBinding(key.WithKeys("f3")),
	key.NewBinding(key.WithKeys("f4")),
	key.NewBinding(key.WithKeys("f5")),
	key.NewBinding(key.WithKeys("f6")),
}
