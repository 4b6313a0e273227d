package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the calendar reacts to. It satisfies
// help.KeyMap so the footer can render it.
type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Select    key.Binding
	NextFest  key.Binding
	PrevFest  key.Binding
	Jump      key.Binding
	Theme     key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("⇧←/H", "prev day")),
		Right:     key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("⇧→/L", "next day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		NextFest:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next festival")),
		PrevFest:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev festival")),
		Jump:      key.NewBinding(key.WithKeys("g", "/"), key.WithHelp("g", "go to date")),
		Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Select, k.Jump, k.Help, k.Close}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Select, k.NextFest, k.PrevFest},
		{k.Jump, k.Theme},
		{k.Help, k.Close, k.Quit},
	}
}

// promptKeys drive the go-to-date prompt.
type promptKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultPromptKeys() promptKeys {
	return promptKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
