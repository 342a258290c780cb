package tui

import "charm.land/bubbles/v2/key"

type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Add      key.Binding
	Sort     key.Binding
	Filter   key.Binding
	Match    key.Binding
	Settings key.Binding
	Quit     key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "open")),
		Add:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Filter:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "expand next")),
		Match:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "match")),
		Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Add, k.Sort, k.Filter, k.Match, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
