package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the task manager responds to.
type keyMap struct {
	Submit    key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add task"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to input"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// focusedHelp adapts keyMap to help.KeyMap for the current focus.
type focusedHelp struct {
	keys  keyMap
	focus focus
}

func (h focusedHelp) ShortHelp() []key.Binding {
	if h.focus == focusList {
		return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Toggle, h.keys.Delete, h.keys.Back, h.keys.Quit}
	}
	return []key.Binding{h.keys.Submit, h.keys.NextFocus, h.keys.ForceQuit}
}

func (h focusedHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
