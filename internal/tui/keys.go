package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings.
// List navigation (j/k, g/G, ctrl+u/d) is handled inside the components.
type KeyMap struct {
	// Actions
	Quit     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	LoadMore key.Binding
	Retry    key.Binding
	Home     key.Binding
	Open     key.Binding

	// Inspector overview scrolling
	ScrollDown key.Binding
	ScrollUp   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/clear"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "home"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "scroll details"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "scroll details"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
