package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queueCmd)
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect and rebuild channel queues",
}

func init() {
	queueCmd.AddCommand(queueStatusCmd)
	queueStatusCmd.SetOut(os.Stdout)
}

var queueStatusCmd = &cobra.Command{
	Use:               "status CHANNEL",
	Short:             "Show how much of a channel's queue has been played",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(queueStatus(commandContext(cmd), backend.FromConfig(), cmd.OutOrStdout(), args[0]))
	},
}

func queueStatus(ctx context.Context, client *backend.Client, w io.Writer, ref string) error {
	channel, err := resolveChannel(ctx, client, ref)
	if err != nil {
		return err
	}

	status, err := client.Status(ctx, channel.ID)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s %s\n%s\n",
		icon.Get(icon.Queue),
		style.Bold(channel.Name),
		progressBar(status, 30),
	)
	return err
}

// progressBar renders played/total as a bar with the counts after it.
func progressBar(status *backend.QueueStatus, width int) string {
	filled := 0
	if status.Total > 0 {
		filled = util.Clamp(status.Played*width/status.Total, 0, width)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		style.Fg(style.AccentColor)(strings.Repeat("█", filled)),
		style.Fg(style.FaintColor)(strings.Repeat("░", width-filled)),
	)
	return fmt.Sprintf("%s %d/%d played, %s", bar, status.Played, status.Total, util.Quantify(status.Remaining, "video left", "videos left"))
}

func init() {
	queueCmd.AddCommand(queueRebuildCmd)
}

var queueRebuildCmd = &cobra.Command{
	Use:               "rebuild CHANNEL",
	Short:             "Regenerate a channel's queue from its sources",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := commandContext(cmd)
		client := backend.FromConfig()

		channel, err := resolveChannel(ctx, client, args[0])
		handleErr(err)

		fmt.Printf("%s rebuilding %s...\n", icon.Get(icon.Progress), style.Bold(channel.Name))
		result, err := client.Rebuild(ctx, channel.ID)
		handleErr(err)

		fmt.Printf("%s %s, %s added\n",
			style.Fg(style.SuccessColor)(icon.Get(icon.Success)),
			result.Message,
			util.Quantify(result.VideosAdded, "video", "videos"),
		)
	},
}

func init() {
	queueCmd.AddCommand(queueRebuildAllCmd)
	queueRebuildAllCmd.SetOut(os.Stdout)
}

var queueRebuildAllCmd = &cobra.Command{
	Use:   "rebuild-all",
	Short: "Regenerate every channel's queue",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s rebuilding every queue...\n", icon.Get(icon.Progress))
		result, err := backend.FromConfig().RebuildAll(commandContext(cmd))
		handleErr(err)
		handleErr(printRebuildAll(cmd.OutOrStdout(), result))
	},
}

func printRebuildAll(w io.Writer, result *backend.RebuildAllResult) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), result.Message); err != nil {
		return err
	}

	names := lo.Keys(result.Results)
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "  %s %s\n", style.Bold(name), style.Faint(util.Quantify(result.Results[name], "video", "videos"))); err != nil {
			return err
		}
	}
	return nil
}
