package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Up         key.Binding
	Down       key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	IncreaseLg key.Binding
	DecreaseLg key.Binding
	White      key.Binding
	Send       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "Previous channel"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "Next channel"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Decrease"),
		),
		IncreaseLg: key.NewBinding(
			key.WithKeys("shift+right", "L", "pgup"),
			key.WithHelp("L", "Increase by 16"),
		),
		DecreaseLg: key.NewBinding(
			key.WithKeys("shift+left", "H", "pgdown"),
			key.WithHelp("H", "Decrease by 16"),
		),
		White: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Toggle white"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Send RGB"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.White, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Increase, k.Decrease, k.IncreaseLg, k.DecreaseLg},
		{k.White, k.Send, k.Help, k.Quit},
	}
}
