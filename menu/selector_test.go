package menu

import (
	"testing"

	"github.com/leanback-cli/leanback/backend"
	. "github.com/smartystreets/goconvey/convey"
)

var channels = []backend.Channel{
	{ID: "1", Name: "Music"},
	{ID: "2", Name: "Talks"},
	{ID: "3", Name: "Documentaries"},
	{ID: "4", Name: "Music Videos"},
}

func TestSelector(t *testing.T) {
	Convey("Given a selector", t, func() {
		var s Selector

		Convey("An empty selector is safe to use", func() {
			s.Open(nil, "1")
			s.Up()
			s.Down()
			So(s.Index, ShouldEqual, 0)
			So(s.Selected().IsAbsent(), ShouldBeTrue)
			So(s.Find("music"), ShouldBeFalse)
		})

		Convey("Opening highlights the current channel", func() {
			s.Open(channels, "3")
			So(s.Index, ShouldEqual, 2)
			So(s.Selected().MustGet().Name, ShouldEqual, "Documentaries")
		})

		Convey("Opening without a known current channel highlights the first", func() {
			s.Open(channels, "99")
			So(s.Index, ShouldEqual, 0)

			s.Open(channels, "")
			So(s.Index, ShouldEqual, 0)
		})

		Convey("Navigation wraps at both ends", func() {
			s.Open(channels, "1")
			s.Up()
			So(s.Index, ShouldEqual, len(channels)-1)
			s.Down()
			So(s.Index, ShouldEqual, 0)
			s.Down()
			s.Down()
			So(s.Selected().MustGet().ID, ShouldEqual, backend.ID("3"))
		})

		Convey("Find jumps to the best match", func() {
			s.Open(channels, "1")

			So(s.Find("doc"), ShouldBeTrue)
			So(s.Index, ShouldEqual, 2)

			So(s.Find("mv"), ShouldBeTrue)
			So(s.Selected().MustGet().Name, ShouldEqual, "Music Videos")

			So(s.Find("mus"), ShouldBeTrue)
			So(s.Selected().MustGet().Name, ShouldEqual, "Music")

			Convey("And keeps the highlight when nothing matches", func() {
				So(s.Find("zzz"), ShouldBeFalse)
				So(s.Selected().MustGet().Name, ShouldEqual, "Music")
			})
		})
	})
}

func TestClosest(t *testing.T) {
	Convey("Closest resolves ids before names", t, func() {
		So(Closest(channels, "2").MustGet().Name, ShouldEqual, "Talks")
		So(Closest(channels, "talk").MustGet().ID, ShouldEqual, backend.ID("2"))
		So(Closest(channels, "nothing like it").IsAbsent(), ShouldBeTrue)
		So(Closest(nil, "music").IsAbsent(), ShouldBeTrue)
	})
}
