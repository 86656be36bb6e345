package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"source", "src"},
	Short:   "Manage the YouTube channels and playlists feeding each channel",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().StringP("channel", "c", "", "Only list sources of this channel (id or name)")
	lo.Must0(sourcesListCmd.RegisterFlagCompletionFunc("channel", completionChannels))
	sourcesListCmd.Flags().BoolP("json", "j", false, "Print sources as JSON")
	sourcesListCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
	sourcesListCmd.MarkFlagsMutuallyExclusive("json", "schema")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sources",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(writeJSON(cmd.OutOrStdout(), schemaOf([]backend.Source{})))
			return
		}

		handleErr(listSources(
			commandContext(cmd),
			backend.FromConfig(),
			cmd.OutOrStdout(),
			lo.Must(cmd.Flags().GetString("channel")),
			lo.Must(cmd.Flags().GetBool("json")),
		))
	},
}

func listSources(ctx context.Context, client *backend.Client, w io.Writer, channelRef string, asJSON bool) error {
	filter := mo.None[backend.ID]()
	names := make(map[backend.ID]string)

	channels, err := client.Channels(ctx)
	if err != nil {
		return err
	}
	for _, c := range channels {
		names[c.ID] = c.Name
	}

	if channelRef != "" {
		channel, err := resolveChannel(ctx, client, channelRef)
		if err != nil {
			return err
		}
		filter = mo.Some(channel.ID)
	}

	sources, err := client.Sources(ctx, filter)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(w, sources)
	}

	for _, s := range sources {
		kind := icon.Get(icon.Source)
		if s.Kind == backend.KindPlaylist {
			kind = icon.Get(icon.Playlist)
		}

		line := fmt.Sprintf("%s %s %s", kind, s.ID, style.Bold(s.Label()))
		if s.Name != "" {
			line += " " + style.Faint(s.YoutubeID)
		}
		if name, ok := names[s.ChannelID]; ok && channelRef == "" {
			line += style.Faint(" in " + name)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesAddCmd.Flags().BoolP("playlist", "p", false, "The reference is a playlist rather than a YouTube channel")
	sourcesAddCmd.Flags().StringP("name", "n", "", "Display name for the source")
}

var sourcesAddCmd = &cobra.Command{
	Use:               "add CHANNEL REF",
	Short:             "Attach a YouTube channel (id, handle or URL) or playlist to a channel",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		kind := backend.KindChannel
		if lo.Must(cmd.Flags().GetBool("playlist")) {
			kind = backend.KindPlaylist
		}

		source, err := addSource(commandContext(cmd), backend.FromConfig(), args[0], backend.SourceInput{
			YoutubeID: args[1],
			Kind:      kind,
			Name:      lo.Must(cmd.Flags().GetString("name")),
		})
		handleErr(err)

		fmt.Printf("%s added %s %s\n",
			style.Fg(style.SuccessColor)(icon.Get(icon.Success)),
			style.Bold(source.Label()),
			style.Faint("#"+source.ID.String()),
		)
	},
}

func addSource(ctx context.Context, client *backend.Client, channelRef string, in backend.SourceInput) (*backend.Source, error) {
	channel, err := resolveChannel(ctx, client, channelRef)
	if err != nil {
		return nil, err
	}

	in.ChannelID = channel.ID
	return client.CreateSource(ctx, in)
}

func init() {
	sourcesCmd.AddCommand(sourcesDeleteCmd)
	sourcesDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var sourcesDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Detach a source",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !confirm(cmd, fmt.Sprintf("Delete source %s?", args[0])) {
			return
		}

		handleErr(backend.FromConfig().DeleteSource(commandContext(cmd), backend.ID(args[0])))
		fmt.Printf("%s deleted source %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), args[0])
	},
}
