package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the app-level bindings. Panel-local keys (scrolling,
// search, copy mode) live with their panels.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	FocusNext key.Binding
	AddScript key.Binding
	Input     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "panel left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "panel right"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next panel"),
		),
		AddScript: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add script"),
		),
		Input: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "send input"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}
