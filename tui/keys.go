package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the dashboard reacts to.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Switch key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch list"),
		),
		PgUp: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("pgup/[", "charts up"),
		),
		PgDown: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("pgdn/]", "charts down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpLine renders "key: action" pairs separated by bullets.
func (k keyMap) helpLine() string {
	bindings := []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.None, k.Switch, k.PgUp, k.PgDown, k.Quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		out += b.Help().Key + ": " + b.Help().Desc
	}
	return out
}
