package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/session"
	. "github.com/smartystreets/goconvey/convey"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func TestRouter(t *testing.T) {
	Convey("Given a router", t, func() {
		r := NewRouter(NewKeymap())

		Convey("Watching keys map to playback intents", func() {
			mode := session.ModeWatching
			So(r.Route(mode, left), ShouldEqual, OpenMenu)
			So(r.Route(mode, right), ShouldEqual, Skip)
			So(r.Route(mode, space), ShouldEqual, TogglePlay)
			So(r.Route(mode, enter), ShouldEqual, ToggleFullscreen)
			So(r.Route(mode, runes("r")), ShouldEqual, Retry)
			So(r.Route(mode, runes("m")), ShouldEqual, OpenManagement)
			So(r.Route(mode, runes("o")), ShouldEqual, OpenInBrowser)
			So(r.Route(mode, runes("q")), ShouldEqual, Quit)
			So(r.Route(mode, ctrlC), ShouldEqual, Quit)
			So(r.Route(mode, runes("z")), ShouldEqual, None)
		})

		Convey("The menu owns its keys while open", func() {
			mode := session.ModeMenu
			So(r.Route(mode, up), ShouldEqual, MenuUp)
			So(r.Route(mode, down), ShouldEqual, MenuDown)
			So(r.Route(mode, enter), ShouldEqual, MenuSelect)
			So(r.Route(mode, left), ShouldEqual, MenuClose)
			So(r.Route(mode, esc), ShouldEqual, MenuClose)

			Convey("And playback intents are unreachable", func() {
				So(r.Route(mode, right), ShouldEqual, None)
				So(r.Route(mode, space), ShouldEqual, None)
				So(r.Route(mode, runes("q")), ShouldEqual, None)
			})
		})

		Convey("Management has its own table", func() {
			mode := session.ModeManagement
			So(r.Route(mode, esc), ShouldEqual, ManageBack)
			So(r.Route(mode, runes("n")), ShouldEqual, ManageNew)
			So(r.Route(mode, runes("d")), ShouldEqual, ManageDelete)
			So(r.Route(mode, runes("o")), ShouldEqual, ManageCycleOrder)
			So(r.Route(mode, runes("s")), ShouldEqual, ManageSources)
			So(r.Route(mode, runes("r")), ShouldEqual, ManageRebuild)
			So(r.Route(mode, runes("R")), ShouldEqual, ManageRebuildAll)

			Convey("And the menu cannot be opened from it", func() {
				So(r.Route(mode, left), ShouldEqual, None)
			})
		})

		Convey("Text focus disables everything but force quit", func() {
			r.SetTextFocus(true)
			So(r.TextFocus(), ShouldBeTrue)
			So(r.Route(session.ModeManagement, runes("n")), ShouldEqual, None)
			So(r.Route(session.ModeManagement, esc), ShouldEqual, None)
			So(r.Route(session.ModeWatching, runes("q")), ShouldEqual, None)
			So(r.Route(session.ModeManagement, ctrlC), ShouldEqual, Quit)
			So(r.Bindings(session.ModeManagement), ShouldHaveLength, 1)

			r.SetTextFocus(false)
			So(r.Route(session.ModeManagement, runes("n")), ShouldEqual, ManageNew)
		})

		Convey("Help bindings follow the table", func() {
			So(r.Bindings(session.ModeMenu), ShouldHaveLength, 5)
			So(r.Bindings(session.ModeWatching)[2].Help().Desc, ShouldEqual, "channels")
		})

		Convey("Intents have names", func() {
			So(Skip.String(), ShouldEqual, "skip")
			So(Intent(999).String(), ShouldEqual, "unknown")
		})
	})
}
