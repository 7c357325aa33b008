package cli

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the chart's global keys.
type keyMap struct {
	Quit    key.Binding
	Compact key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Filter  key.Binding
	Reload  key.Binding
	Cancel  key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Today   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Compact: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "parent filter")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→↑↓", "scroll")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

// ShortHelp returns the hints shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.ZoomIn, k.Today, k.Filter, k.Compact, k.Reload, k.Quit}
}
