package playground

import "github.com/charmbracelet/bubbles/key"

// keyMap is the playground's top-level keymap. Single letters are safe
// here: panel content, the palette and the settings form all capture input
// before these bindings are consulted.
type keyMap struct {
	Help      key.Binding
	Palette   key.Binding
	Settings  key.Binding
	Inspector key.Binding
	Theme     key.Binding
	Tab       key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Palette:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "palette")),
	Settings:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	Inspector: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspector")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpOrder is the order bindings appear in rendered key listings.
func helpOrder() []key.Binding {
	return []key.Binding{
		keys.Help, keys.Palette, keys.Settings, keys.Inspector,
		keys.Theme, keys.Tab, keys.Quit,
	}
}
