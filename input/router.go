// Package input maps key presses to intents. One table keyed by session mode decides who owns
// the keyboard, so a key is never handled twice.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/session"
	"github.com/samber/lo"
)

// Intent is what a key press means in the current mode.
type Intent int

const (
	// None means the router did not claim the key; the focused component may use it.
	None Intent = iota
	Quit

	OpenMenu
	Skip
	TogglePlay
	ToggleFullscreen
	Retry
	OpenManagement
	OpenInBrowser

	MenuUp
	MenuDown
	MenuSelect
	MenuClose

	ManageBack
	ManageNew
	ManageDelete
	ManageCycleOrder
	ManageSources
	ManageRebuild
	ManageRebuildAll
)

var intentNames = map[Intent]string{
	None:             "none",
	Quit:             "quit",
	OpenMenu:         "open-menu",
	Skip:             "skip",
	TogglePlay:       "toggle-play",
	ToggleFullscreen: "toggle-fullscreen",
	Retry:            "retry",
	OpenManagement:   "open-management",
	OpenInBrowser:    "open-in-browser",
	MenuUp:           "menu-up",
	MenuDown:         "menu-down",
	MenuSelect:       "menu-select",
	MenuClose:        "menu-close",
	ManageBack:       "manage-back",
	ManageNew:        "manage-new",
	ManageDelete:     "manage-delete",
	ManageCycleOrder: "manage-cycle-order",
	ManageSources:    "manage-sources",
	ManageRebuild:    "manage-rebuild",
	ManageRebuildAll: "manage-rebuild-all",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

type route struct {
	binding key.Binding
	intent  Intent
}

// Router resolves key presses against the table of the current mode. The first matching route wins.
type Router struct {
	keymap    *Keymap
	table     map[session.Mode][]route
	textFocus bool
}

func NewRouter(keymap *Keymap) *Router {
	r := &Router{keymap: keymap}
	r.table = map[session.Mode][]route{
		session.ModeWatching: {
			{keymap.ForceQuit, Quit},
			{keymap.Quit, Quit},
			{keymap.OpenMenu, OpenMenu},
			{keymap.Skip, Skip},
			{keymap.TogglePlay, TogglePlay},
			{keymap.ToggleFullscreen, ToggleFullscreen},
			{keymap.Retry, Retry},
			{keymap.OpenManagement, OpenManagement},
			{keymap.OpenInBrowser, OpenInBrowser},
		},
		session.ModeMenu: {
			{keymap.ForceQuit, Quit},
			{keymap.MenuUp, MenuUp},
			{keymap.MenuDown, MenuDown},
			{keymap.Select, MenuSelect},
			{keymap.Close, MenuClose},
		},
		session.ModeManagement: {
			{keymap.ForceQuit, Quit},
			{keymap.Back, ManageBack},
			{keymap.New, ManageNew},
			{keymap.Delete, ManageDelete},
			{keymap.CycleOrder, ManageCycleOrder},
			{keymap.Sources, ManageSources},
			{keymap.Rebuild, ManageRebuild},
			{keymap.RebuildAll, ManageRebuildAll},
		},
	}
	return r
}

// Keymap returns the bindings the router was built with.
func (r *Router) Keymap() *Keymap {
	return r.keymap
}

// SetTextFocus disables routing while a text field is being edited. Only force quit still works.
func (r *Router) SetTextFocus(focused bool) {
	r.textFocus = focused
}

func (r *Router) TextFocus() bool {
	return r.textFocus
}

// Route returns the intent of msg in mode.
func (r *Router) Route(mode session.Mode, msg tea.KeyMsg) Intent {
	if r.textFocus {
		if key.Matches(msg, r.keymap.ForceQuit) {
			return Quit
		}
		return None
	}

	for _, rt := range r.table[mode] {
		if key.Matches(msg, rt.binding) {
			return rt.intent
		}
	}
	return None
}

// Bindings lists the bindings reachable in mode, in table order, for help rendering.
func (r *Router) Bindings(mode session.Mode) []key.Binding {
	if r.textFocus {
		return []key.Binding{r.keymap.ForceQuit}
	}

	return lo.Map(r.table[mode], func(rt route, _ int) key.Binding {
		return rt.binding
	})
}
