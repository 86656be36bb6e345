// Package cmd implements the command-line interface for leanback.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/color"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/player"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/tui"
	"github.com/leanback-cli/leanback/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("api", "", "Base URL of the channel backend")
	lo.Must0(viper.BindPFlag(key.APIBaseURL, rootCmd.PersistentFlags().Lookup("api")))

	rootCmd.Flags().StringP("channel", "c", "", "Start on this channel (id or name) instead of the remembered one")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("channel", completionChannels))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background(), cmd.OutOrStdout())
	})
}

// rootCmd starts the lean-back player.
var rootCmd = &cobra.Command{
	Use:   constant.Leanback,
	Short: "Lean back and watch your YouTube channels like TV",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Lean back and watch your YouTube channels like TV"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		factory := player.FactoryFromConfig()
		CheckDependencies(factory)

		client := backend.FromConfig()
		watchConfig(client)

		options := tui.Options{
			Channel: lo.Must(cmd.Flags().GetString("channel")),
			Client:  client,
			Factory: factory,
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(backend.Message(err), " \n"))
		os.Exit(1)
	}
}
