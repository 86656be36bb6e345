package cmd

import (
	"os"
	"slices"

	"github.com/leanback-cli/leanback/color"
	"github.com/leanback-cli/leanback/config"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envName maps a config key to the variable that overrides it.
func envName(k string) string {
	field, ok := config.Default[k]
	if !ok {
		return k
	}
	return field.Env()
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		names := lo.Map(append(slices.Clone(config.EnvExposed), where.EnvConfigPath), func(k string, _ int) string {
			return envName(k)
		})
		slices.Sort(names)

		for _, env := range names {
			value := os.Getenv(env)
			present := value != ""

			if (!present && setOnly) || (present && unsetOnly) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
