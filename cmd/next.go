package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/open"
	"github.com/leanback-cli/leanback/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(nextCmd)
	nextCmd.Flags().BoolP("json", "j", false, "Print the video as JSON")
	nextCmd.Flags().BoolP("open", "o", false, "Open the video in the browser")
	nextCmd.SetOut(os.Stdout)
}

var nextCmd = &cobra.Command{
	Use:               "next CHANNEL",
	Short:             "Show the video a channel would play next, without advancing it",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		video, err := showNext(
			commandContext(cmd),
			backend.FromConfig(),
			cmd.OutOrStdout(),
			args[0],
			lo.Must(cmd.Flags().GetBool("json")),
		)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Video(video.VideoID))
		}
	},
}

func showNext(ctx context.Context, client *backend.Client, w io.Writer, ref string, asJSON bool) (*backend.Video, error) {
	channel, err := resolveChannel(ctx, client, ref)
	if err != nil {
		return nil, err
	}

	video, err := client.Next(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	if asJSON {
		return video, writeJSON(w, video)
	}

	_, err = fmt.Fprintf(w, "%s %s\n  %s\n  %s\n",
		icon.Get(icon.Play),
		style.Bold(video.Title),
		style.Faint(fmt.Sprintf("%s, #%d in queue", lo.CoalesceOrEmpty(video.ChannelName, channel.Name), video.Position+1)),
		constant.YouTubeWatchURL+video.VideoID,
	)
	return video, err
}
