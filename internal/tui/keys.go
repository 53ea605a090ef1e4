package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Minimize  key.Binding
	Maximize  key.Binding
	Close     key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Launchpad key.Binding
	Settings  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
		Minimize:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
		Maximize:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "maximize")),
		Close:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "close")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Launchpad: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "launchpad")),
		Settings:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "dock settings")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Minimize, k.Maximize, k.Close, k.Launchpad, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Minimize, k.Maximize, k.Close},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Launchpad, k.Settings, k.Help, k.Quit},
	}
}
