package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/leanback-cli/leanback/color"
	"github.com/leanback-cli/leanback/style"
)

// Keymap holds every binding the client reacts to.
type Keymap struct {
	Quit, ForceQuit,
	OpenMenu, Skip, TogglePlay, ToggleFullscreen, Retry, OpenManagement, OpenInBrowser,
	MenuUp, MenuDown, Select, Close,
	Up, Down, Back,
	New, Delete, CycleOrder, Sources, Rebuild, RebuildAll,
	Top, Bottom, NextPage, PrevPage,
	ShowHelp key.Binding
}

func NewKeymap() *Keymap {
	return &Keymap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		OpenMenu: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "channels"),
		),
		Skip: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "skip"),
		),
		TogglePlay: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pause/resume"),
		),
		ToggleFullscreen: key.NewBinding(
			key.WithKeys("enter", "f"),
			key.WithHelp("enter", "fullscreen"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		OpenManagement: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manage"),
		),
		OpenInBrowser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("watch")),
		),
		Close: key.NewBinding(
			key.WithKeys("left", "esc"),
			key.WithHelp("esc", "close"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CycleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "play order"),
		),
		Sources: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "sources"),
		),
		Rebuild: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rebuild queue"),
		),
		RebuildAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rebuild all"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "prev page"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ForList adapts the keymap to bubbles/list. Filtering is disabled.
func (k *Keymap) ForList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.Up,
		CursorDown:    k.Down,
		NextPage:      k.NextPage,
		PrevPage:      k.PrevPage,
		GoToStart:     k.Top,
		GoToEnd:       k.Bottom,
		ShowFullHelp:  k.ShowHelp,
		CloseFullHelp: k.ShowHelp,
		ForceQuit:     k.ForceQuit,
	}
}

// WithDescription copies b with a different help text.
func WithDescription(b key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys()...),
		key.WithHelp(b.Help().Key, description),
	)
}
