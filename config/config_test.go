package config

import (
	"testing"

	"github.com/leanback-cli/leanback/filesystem"
	"github.com/leanback-cli/leanback/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.APIBaseURL), ShouldEqual, "http://localhost:8000/api")
			So(viper.GetString(key.PlayerBinary), ShouldEqual, "mpv")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("api.base_url")
			So(result, ShouldEqual, "api_base_url")
		})

		Convey("Environment should override the backend URL", func() {
			t.Setenv("LEANBACK_API_BASE_URL", "http://tv.local/api")
			_ = Setup()
			So(viper.GetString(key.APIBaseURL), ShouldEqual, "http://tv.local/api")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.APIBaseURL]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "LEANBACK_API_BASE_URL")
		})

		Convey("typeName should reflect the default value", func() {
			So(field.typeName(), ShouldEqual, "string")
			extra := Default[key.PlayerExtraArgs]
			So(extra.typeName(), ShouldEqual, "[]string")
		})
	})
}
