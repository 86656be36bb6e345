package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/config"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/menu"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const completionTimeout = 2 * time.Second

// commandContext is the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveChannel finds a channel by id, or by the closest name when no id matches.
func resolveChannel(ctx context.Context, client *backend.Client, ref string) (backend.Channel, error) {
	channels, err := client.Channels(ctx)
	if err != nil {
		return backend.Channel{}, err
	}

	channel, ok := menu.Closest(channels, ref).Get()
	if !ok {
		return backend.Channel{}, fmt.Errorf("no channel matches %q", ref)
	}
	return channel, nil
}

func completionChannels(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	ctx, cancel := context.WithTimeout(commandContext(cmd), completionTimeout)
	defer cancel()

	channels, err := backend.FromConfig().Channels(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(channels, func(c backend.Channel, _ int) string {
		return c.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

// confirm asks a yes/no question unless cli.confirm is off or the answer was given with --yes.
func confirm(cmd *cobra.Command, message string) bool {
	if yes, err := cmd.Flags().GetBool("yes"); err == nil && yes {
		return true
	}
	if !viper.GetBool(key.CliConfirm) {
		return true
	}

	prompt := survey.Confirm{
		Message: message,
		Default: false,
	}
	var response bool
	handleErr(survey.AskOne(&prompt, &response))
	return response
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// schemaOf reflects the JSON schema of what a --json flag prints.
func schemaOf(v any) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "channel", "source", "video", "record":
			return t.PkgPath()[strings.LastIndex(t.PkgPath(), "/")+1:] + "." + name
		}
		return name
	}
	return reflector.Reflect(v)
}

// watchConfig applies config file edits to a running session.
func watchConfig(client *backend.Client) {
	config.Watch(func(keys []string) {
		applyConfigChange(client, keys)
	})
}

func applyConfigChange(client *backend.Client, keys []string) {
	for _, k := range keys {
		switch {
		case k == key.APIBaseURL:
			client.SetBaseURL(viper.GetString(key.APIBaseURL))
			log.Infof("channel backend is now %s", client.BaseURL())
		case strings.HasPrefix(k, "logs."):
			if err := log.Setup(); err != nil {
				log.Warnf("reconfigure logs: %v", err)
			}
		default:
			log.Debugf("%s changed", k)
		}
	}
}
