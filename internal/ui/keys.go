package ui

import "github.com/charmbracelet/bubbles/key"

// headerKeyMap holds the key bindings of the header screen
type headerKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	SeeAll   key.Binding
	ViewBlog key.Binding
	Avatar   key.Binding
	Up       key.Binding
	Down     key.Binding
	OpenRepo key.Binding
	Refresh  key.Binding
	Dismiss  key.Binding
	Close    key.Binding
	OpenPage key.Binding
	Quit     key.Binding
}

func newHeaderKeyMap() headerKeyMap {
	return headerKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/→", "focus"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "focus"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		SeeAll: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "see all"),
		),
		ViewBlog: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "view blog"),
		),
		Avatar: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "avatar"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "repos"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		OpenRepo: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open repo"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "ok"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "backspace"),
			key.WithHelp("esc", "back"),
		),
		OpenPage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// headerHelp is shown beneath the header
func (k headerKeyMap) headerHelp(canRefresh bool) []key.Binding {
	bindings := []key.Binding{k.Left, k.Activate, k.SeeAll, k.ViewBlog, k.Avatar, k.Up, k.OpenRepo}
	if canRefresh {
		bindings = append(bindings, k.Refresh)
	}
	return append(bindings, k.Quit)
}

// viewerHelp is shown while the blog page is mounted
func (k headerKeyMap) viewerHelp() []key.Binding {
	scroll := key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓/pgup/pgdn", "scroll"))
	return []key.Binding{scroll, k.OpenPage, k.Close}
}

// dialogHelp is shown while the not-found notice is open
func (k headerKeyMap) dialogHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}
