package cmd

import (
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify(commandContext(cmd), cmd.OutOrStdout())
		cmd.Println(buildInfo())
	},
}

// buildInfo renders the version banner with link-time metadata.
func buildInfo() string {
	rows := [][2]string{
		{"Version", constant.Version},
		{"Git Commit", constant.Revision},
		{"Build Date", strings.TrimSpace(constant.BuiltAt)},
		{"Built By", constant.BuiltBy},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
		{"Backend", viper.GetString(key.APIBaseURL)},
	}

	label := style.New().Width(14).Foreground(style.FaintColor)
	lines := lo.Map(rows, func(row [2]string, _ int) string {
		return "  " + label.Render(row[0]) + style.Bold(row[1])
	})

	header := style.Fg(style.AccentColor)("▇▇▇") + " " + style.Fg(style.AccentColor)(constant.Leanback)
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header, ""}, lines...)...)
}
