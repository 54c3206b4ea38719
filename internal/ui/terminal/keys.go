package terminal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Skip    key.Binding
	Work    key.Binding
	Break   key.Binding
	Presets key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "take a break"),
		),
		Work: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "work"),
		),
		Break: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "break"),
		),
		Presets: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "preset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Reset, keys.Skip, keys.Presets, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Toggle, keys.Reset, keys.Skip},
		{keys.Work, keys.Break, keys.Presets, keys.Quit},
	}
}
