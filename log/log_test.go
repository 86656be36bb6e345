package log

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigure(t *testing.T) {
	Convey("Given a configured logger", t, func() {
		var buf bytes.Buffer
		So(Configure(&buf, "warn", false), ShouldBeNil)

		Convey("Entries below the level are dropped", func() {
			Info("queue rebuilt")
			So(buf.String(), ShouldBeEmpty)
		})

		Convey("Entries at the level are written", func() {
			Warnf("skip failed for %s", "c1")
			So(buf.String(), ShouldContainSubstring, "skip failed for c1")
		})

		Convey("Structured fields are rendered", func() {
			With(Fields{"channel": "c1"}).Error("fetch failed")
			So(buf.String(), ShouldContainSubstring, "channel=c1")
		})

		Convey("An unknown level falls back to info", func() {
			So(Configure(&buf, "loud", true), ShouldBeNil)
			Info("hello")
			So(buf.String(), ShouldContainSubstring, `"msg":"hello"`)
		})
	})
}
