package open

import (
	"testing"

	"github.com/leanback-cli/leanback/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Each platform has its own opener", t, func() {
		url := constant.YouTubeWatchURL + "dQw4w9WgXcQ"

		cmd, ok := command(constant.Linux, url)
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"xdg-open", url})

		cmd, ok = command(constant.Darwin, url)
		So(ok, ShouldBeTrue)
		So(cmd.Args, ShouldResemble, []string{"open", url})

		cmd, ok = command(constant.Windows, url)
		So(ok, ShouldBeTrue)
		So(cmd.Args[len(cmd.Args)-1], ShouldEqual, url)

		_, ok = command("plan9", url)
		So(ok, ShouldBeFalse)
	})
}
