package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Today    key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Delete   key.Binding
	Carry    key.Binding
	Mark     key.Binding
	Save     key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	PrevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev day"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next day"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PrevWeek: key.NewBinding(
		key.WithKeys("shift+left", "H", "pgup"),
		key.WithHelp("H", "prev week"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("shift+right", "L", "pgdown"),
		key.WithHelp("L", "next week"),
	),
	PrevYear: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev year"),
	),
	NextYear: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next year"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "n"),
		key.WithHelp("a", "add todo"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Carry: key.NewBinding(
		key.WithKeys(">"),
		key.WithHelp(">", "carry open todos"),
	),
	Mark: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "cycle mark"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s", "w"),
		key.WithHelp("w", "save"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Mark, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Up, k.Down},
		{k.PrevWeek, k.NextWeek, k.PrevYear, k.NextYear, k.Today},
		{k.Toggle, k.Add, k.Delete, k.Carry, k.Mark},
		{k.Save, k.Help, k.Quit},
	}
}
