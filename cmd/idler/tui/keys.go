package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the session actions. Rendered in the footer by
// bubbles/help.
type keyMap struct {
	Click key.Binding
	Save  key.Binding
	Pause key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Click: key.NewBinding(
			key.WithKeys(" ", "c", "enter"),
			key.WithHelp("space", "click"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/resume"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Save, k.Pause, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Click, k.Save}, {k.Pause, k.Reset, k.Quit}}
}
