package cmd

import (
	"fmt"

	"github.com/leanback-cli/leanback/history"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/util"
	"github.com/leanback-cli/leanback/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is something on disk that can be wiped.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

var clearTargets = []clearTarget{
	{"history", "history", mo.Some("s"), history.Clear},
	{"cache directory", "cache", mo.Some("c"), func() error {
		return util.Delete(where.Cache())
	}},
	{"player sockets", "sockets", mo.None[string](), func() error {
		return util.Delete(where.Sockets())
	}},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd wipes cached and remembered state.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear remembered history and cached files",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.argLong)) {
				continue
			}

			anyCleared = true
			handleErr(target.clear())
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
