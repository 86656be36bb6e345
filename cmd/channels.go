package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/history"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(channelsCmd)
}

var channelsCmd = &cobra.Command{
	Use:     "channels",
	Aliases: []string{"channel", "ch"},
	Short:   "Manage channels",
}

func init() {
	channelsCmd.AddCommand(channelsListCmd)
	channelsListCmd.Flags().BoolP("json", "j", false, "Print channels as JSON")
	channelsListCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
	channelsListCmd.MarkFlagsMutuallyExclusive("json", "schema")
	channelsListCmd.SetOut(os.Stdout)
}

var channelsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every channel",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(writeJSON(cmd.OutOrStdout(), schemaOf([]backend.Channel{})))
			return
		}

		handleErr(listChannels(
			commandContext(cmd),
			backend.FromConfig(),
			cmd.OutOrStdout(),
			lo.Must(cmd.Flags().GetBool("json")),
		))
	},
}

func listChannels(ctx context.Context, client *backend.Client, w io.Writer, asJSON bool) error {
	channels, err := client.Channels(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(w, channels)
	}

	if len(channels) == 0 {
		_, err := fmt.Fprintln(w, style.Faint("No channels yet. Create one with: channels create NAME"))
		return err
	}

	idWidth := lo.Max(lo.Map(channels, func(c backend.Channel, _ int) int {
		return len(c.ID.String())
	}))

	for _, c := range channels {
		line := fmt.Sprintf("%s %-*s %s %s",
			icon.Get(icon.Channel),
			idWidth, c.ID,
			style.Bold(c.Name),
			style.Faint(c.PlayOrder.Label()),
		)
		if !c.CreatedAt.IsZero() {
			line += style.Faint(", created " + util.Ago(c.CreatedAt.Time))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	channelsCmd.AddCommand(channelsCreateCmd)
	channelsCreateCmd.Flags().StringP("order", "o", string(backend.OrderRandom), "Play order: random, newest or oldest")
	lo.Must0(channelsCreateCmd.RegisterFlagCompletionFunc("order", completionOrders))
}

var channelsCreateCmd = &cobra.Command{
	Use:     "create NAME",
	Aliases: []string{"new"},
	Short:   "Create a channel",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		order, err := backend.ParsePlayOrder(lo.Must(cmd.Flags().GetString("order")))
		handleErr(err)

		channel, err := backend.FromConfig().CreateChannel(commandContext(cmd), backend.ChannelInput{
			Name:      args[0],
			PlayOrder: order,
		})
		handleErr(err)

		fmt.Printf("%s created channel %s %s\n",
			style.Fg(style.SuccessColor)(icon.Get(icon.Success)),
			style.Bold(channel.Name),
			style.Faint("#"+channel.ID.String()),
		)
	},
}

func init() {
	channelsCmd.AddCommand(channelsOrderCmd)
}

var channelsOrderCmd = &cobra.Command{
	Use:               "order CHANNEL ORDER",
	Short:             "Change a channel's play order",
	Long:              "Change a channel's play order. The backend rebuilds the queue in the new order.",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionChannelThenOrder,
	Run: func(cmd *cobra.Command, args []string) {
		order, err := backend.ParsePlayOrder(args[1])
		handleErr(err)

		channel, err := setOrder(commandContext(cmd), backend.FromConfig(), args[0], order)
		handleErr(err)

		fmt.Printf("%s %s now plays %s\n",
			style.Fg(style.SuccessColor)(icon.Get(icon.Success)),
			style.Bold(channel.Name),
			channel.PlayOrder.Label(),
		)
	},
}

func setOrder(ctx context.Context, client *backend.Client, ref string, order backend.PlayOrder) (*backend.Channel, error) {
	channel, err := resolveChannel(ctx, client, ref)
	if err != nil {
		return nil, err
	}

	return client.UpdateChannel(ctx, channel.ID, backend.ChannelInput{
		Name:      channel.Name,
		PlayOrder: order,
	})
}

func init() {
	channelsCmd.AddCommand(channelsDeleteCmd)
	channelsDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var channelsDeleteCmd = &cobra.Command{
	Use:               "delete CHANNEL",
	Aliases:           []string{"rm"},
	Short:             "Delete a channel with its sources and queue",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := commandContext(cmd)
		client := backend.FromConfig()

		channel, err := resolveChannel(ctx, client, args[0])
		handleErr(err)

		if !confirm(cmd, fmt.Sprintf("Delete channel %q with its sources and queue?", channel.Name)) {
			return
		}

		handleErr(deleteChannel(ctx, client, channel))
		fmt.Printf("%s deleted channel %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), style.Bold(channel.Name))
	},
}

// deleteChannel removes the channel remotely and forgets it locally.
func deleteChannel(ctx context.Context, client *backend.Client, channel backend.Channel) error {
	if err := client.DeleteChannel(ctx, channel.ID); err != nil {
		return err
	}

	if err := history.ForgetChannel(channel.ID); err != nil {
		log.Warnf("forget channel %s: %v", channel.ID, err)
	}
	return nil
}

func completionOrders(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"random", "newest", "oldest"}, cobra.ShellCompDirectiveNoFileComp
}

func completionChannelThenOrder(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completionChannels(cmd, args, toComplete)
	}
	return completionOrders(cmd, args, toComplete)
}
