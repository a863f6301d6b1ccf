package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the TUI.
type KeyMap struct {
	Fetch      key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// DefaultKeyMap returns the default bindings. Printable keys are left to the
// URL field.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Fetch: key.NewBinding(
			key.WithKeys("enter", "ctrl+r"),
			key.WithHelp("enter", "fetch"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup/pgdn", "page"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.ScrollUp, k.PageUp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fetch, k.Dismiss},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Quit},
	}
}

// modalHelp lists the bindings active while the warning overlay is shown.
func (k KeyMap) modalHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Quit}
}
