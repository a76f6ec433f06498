package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Center key.Binding
	Reload key.Binding
	Jump   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("]", "right", "l"), key.WithHelp("]/→", "next scene")),
		Prev:   key.NewBinding(key.WithKeys("[", "left", "h"), key.WithHelp("[/←", "prev scene")),
		Center: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "center anchor")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Jump:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("0-9 enter", "go to scene")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear input")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Jump, k.Center, k.Reload, k.Quit}
}
