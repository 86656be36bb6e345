package util

import (
	"testing"
	"time"

	"github.com/leanback-cli/leanback/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(2, "video", "videos"), ShouldEqual, "2 videos")
		So(Quantify(0, "video", "videos"), ShouldEqual, "0 videos")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("shuffle"), ShouldEqual, "Shuffle")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestAgo(t *testing.T) {
	Convey("Ago", t, func() {
		So(Ago(time.Now()), ShouldEqual, "just now")
		So(Ago(time.Now().Add(-5*time.Minute)), ShouldEqual, "5 minutes ago")
		So(Ago(time.Now().Add(-61*time.Minute)), ShouldEqual, "1 hour ago")
		So(Ago(time.Now().Add(-50*time.Hour)), ShouldEqual, "2 days ago")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
		So(Clamp(12, 0, 10), ShouldEqual, 10)
		So(Clamp(-1, 0, 10), ShouldEqual, 0)
		So(Clamp(4, 0, 10), ShouldEqual, 4)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete removes files and directories", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/leanback/cache/nested", 0o755), ShouldBeNil)
		f := lo.Must(fs.Create("/leanback/cache/history.json"))
		So(f.Close(), ShouldBeNil)

		So(Delete("/leanback/cache/history.json"), ShouldBeNil)
		So(lo.Must(fs.Exists("/leanback/cache/history.json")), ShouldBeFalse)

		So(Delete("/leanback/cache"), ShouldBeNil)
		So(lo.Must(fs.DirExists("/leanback/cache")), ShouldBeFalse)

		So(Delete("/leanback/missing"), ShouldNotBeNil)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		So(s.Pop(), ShouldEqual, 0)
		s.Push(1)
		s.Push(2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}
