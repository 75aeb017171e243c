package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Submit   key.Binding
	Mode     key.Binding
	ModePrev key.Binding
	Focus    key.Binding
	Left     key.Binding
	Right    key.Binding
	Copy     key.Binding
	CopyN    key.Binding
	Scroll   key.Binding
	Help     key.Binding

	// inResults switches the short help to the results bindings
	inResults bool
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back/quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "enhance"),
	),
	Mode: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "mode"),
	),
	ModePrev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev mode"),
	),
	Focus: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "results/editor"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "enter"),
		key.WithHelp("c", "copy"),
	),
	CopyN: key.NewBinding(
		key.WithKeys("1", "2", "3"),
		key.WithHelp("1-3", "copy #"),
	),
	Scroll: key.NewBinding(
		key.WithKeys("up", "down", "k", "j", "pgup", "pgdown"),
		key.WithHelp("↑/↓", "scroll"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.inResults {
		return []key.Binding{k.Left, k.Right, k.Copy, k.CopyN, k.Scroll, k.Help, k.Back, k.Quit}
	}
	return []key.Binding{k.Submit, k.Mode, k.Focus, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Mode, k.ModePrev, k.Focus},
		{k.Left, k.Right, k.Copy, k.CopyN, k.Scroll, k.Help},
		{k.Back, k.Quit},
	}
}
