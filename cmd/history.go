package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/leanback-cli/leanback/history"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Bool("clear", false, "Forget the last channel and every played video")
	historyCmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	historyCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
	historyCmd.MarkFlagsMutuallyExclusive("clear", "json", "schema")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played videos",
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case lo.Must(cmd.Flags().GetBool("clear")):
			handleErr(history.Clear())
			cmd.Printf("%s history cleared\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)))
		case lo.Must(cmd.Flags().GetBool("schema")):
			handleErr(writeJSON(cmd.OutOrStdout(), schemaOf(&history.Record{})))
		default:
			record, err := history.Get()
			handleErr(err)

			if lo.Must(cmd.Flags().GetBool("json")) {
				handleErr(writeJSON(cmd.OutOrStdout(), record))
				return
			}
			handleErr(printHistory(cmd.OutOrStdout(), record))
		}
	},
}

func printHistory(w io.Writer, record *history.Record) error {
	if record.LastChannel == nil && len(record.Played) == 0 {
		_, err := fmt.Fprintln(w, style.Faint("Nothing watched yet"))
		return err
	}

	if last := record.LastChannel; last != nil {
		if _, err := fmt.Fprintf(w, "%s %s %s\n\n",
			icon.Get(icon.Channel),
			style.Bold(last.Name),
			style.Faint("selected "+util.Ago(last.SelectedAt)),
		); err != nil {
			return err
		}
	}

	for _, played := range record.Played {
		if _, err := fmt.Fprintf(w, "%s %s\n", played, style.Faint(util.Ago(played.PlayedAt))); err != nil {
			return err
		}
	}
	return nil
}
