package style

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Renderers keep their text", t, func() {
		for _, render := range []func(string) string{Faint, Bold, Italic, Underline, Title, ErrorTitle, Fg(AccentColor), Bg(Surface), Tag(Base, Green)} {
			So(render("leanback"), ShouldContainSubstring, "leanback")
		}
	})

	Convey("Panels wrap content in a border", t, func() {
		out := Panel(ErrorColor, 20).Render("queue empty")
		So(out, ShouldContainSubstring, "queue empty")
		So(strings.Count(out, "\n"), ShouldBeGreaterThan, 2)
	})
}
