package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/player"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
	"github.com/spf13/cobra"
)

// ytdlp is what mpv uses to resolve YouTube watch URLs.
const ytdlp = "yt-dlp"

var installHints = map[string]map[string]string{
	"mpv": {
		constant.Darwin:  "brew install mpv",
		constant.Linux:   "sudo apt install mpv",
		constant.Windows: "scoop install mpv",
	},
	ytdlp: {
		constant.Darwin:  "brew install yt-dlp",
		constant.Linux:   "pipx install yt-dlp",
		constant.Windows: "scoop install yt-dlp",
	},
}

// CheckDependencies exits with an install hint when the configured player is not on PATH.
func CheckDependencies(factory *player.MPVFactory) {
	if _, err := factory.Path(); err != nil {
		printMissingDependencyError(factory.Binary())
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	installCmd := installHints[dep][runtime.GOOS]

	box := style.Panel(style.ErrorColor, 0).Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkResult is one line of the check report.
type checkResult struct {
	name   string
	detail string
	err    error
}

// checkCmd reports whether everything needed to watch is in place.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the video player and the channel backend are reachable",
	Run: func(cmd *cobra.Command, args []string) {
		results := runChecks(commandContext(cmd), player.FactoryFromConfig(), backend.FromConfig())

		failed := false
		for _, r := range results {
			if r.err != nil {
				failed = true
				cmd.Printf("%s %s %s\n", style.Fg(style.ErrorColor)(icon.Get(icon.Fail)), style.Bold(r.name), backend.Message(r.err))
				if hint := installHints[r.name][runtime.GOOS]; hint != "" {
					cmd.Printf("  %s %s\n", style.Faint("install with"), hint)
				}
				continue
			}
			cmd.Printf("%s %s %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), style.Bold(r.name), style.Faint(r.detail))
		}

		if failed {
			os.Exit(1)
		}
	},
}

func runChecks(ctx context.Context, factory *player.MPVFactory, client *backend.Client) []checkResult {
	var results []checkResult

	path, err := factory.Path()
	results = append(results, checkResult{name: factory.Binary(), detail: path, err: err})

	if path, err := exec.LookPath(ytdlp); err == nil {
		results = append(results, checkResult{name: ytdlp, detail: path})
	} else {
		results = append(results, checkResult{name: ytdlp, err: fmt.Errorf("not found, the player cannot resolve YouTube links without it")})
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	started := time.Now()
	channels, err := client.Channels(ctx)
	results = append(results, checkResult{
		name: "backend",
		detail: fmt.Sprintf("%s, %s in %s",
			client.BaseURL(),
			util.Quantify(len(channels), "channel", "channels"),
			time.Since(started).Round(time.Millisecond),
		),
		err: err,
	})

	return results
}
