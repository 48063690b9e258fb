package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	Quit           key.Binding
	Tab            key.Binding
	Up             key.Binding
	Down           key.Binding
	ToggleFissure  key.Binding
	ToggleInvasion key.Binding
	TestSound      key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ToggleFissure: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle void capture alerts"),
		),
		ToggleInvasion: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle invasion alerts"),
		),
		TestSound: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "test sound"),
		),
	}
}
