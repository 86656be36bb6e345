package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/leanback-cli/leanback/color"
	"github.com/leanback-cli/leanback/config"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/filesystem"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func lookupField(key string) (config.Field, error) {
	field, ok := config.Default[key]
	if !ok {
		return config.Field{}, errUnknownKey(key)
	}
	return field, nil
}

// keyArg takes the key from the first argument, falling back to --key.
func keyArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if k, _ := cmd.Flags().GetString("key"); k != "" {
		return k, nil
	}
	return "", errors.New("key is required as an argument or --key flag")
}

// parseValue converts raw command line values to the type of the key's default.
func parseValue(key string, raw []string) (any, error) {
	field, err := lookupField(key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("value is required")
	}

	switch field.Value.(type) {
	case int:
		parsed, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return parsed, nil
	case bool:
		parsed, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return parsed, nil
	case []string:
		return raw, nil
	default:
		return raw[0], nil
	}
}

// saveConfig writes the in-memory configuration, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		return viper.SafeWriteConfig()
	}
	return err
}

func configFilePath() string {
	return filepath.Join(where.Config(), constant.Leanback+".toml")
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configSetCmd, configGetCmd, configWriteCmd, configDeleteCmd, configResetCmd)

	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	configInfoCmd.SetOut(os.Stdout)

	configSetCmd.Flags().StringP("key", "k", "", "The key to update")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configGetCmd.Flags().StringP("key", "k", "", "The key to read")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	configGetCmd.SetOut(os.Stdout)

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	configResetCmd.Flags().StringP("key", "k", "", "The key to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)

		if keys := lo.Must(cmd.Flags().GetStringSlice("key")); len(keys) > 0 {
			fields = fields[:0]
			for _, k := range keys {
				field, err := lookupField(k)
				handleErr(err)
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(writeJSON(cmd.OutOrStdout(), lo.ToSlicePtr(fields)))
			return
		}

		for i := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(fields[i].Pretty())
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Change a setting",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := keyArg(cmd, args)
		handleErr(err)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		value, err := parseValue(key, raw)
		handleErr(err)

		viper.Set(key, value)
		handleErr(saveConfig())
		success("set %s to %s", style.Fg(color.Purple)(key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := keyArg(cmd, args)
		handleErr(err)

		_, err = lookupField(key)
		handleErr(err)
		cmd.Println(viper.Get(key))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFilePath()

		if lo.Must(cmd.Flags().GetBool("force")) && lo.Must(filesystem.API().Exists(path)) {
			handleErr(filesystem.API().Remove(path))
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote config to %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFilePath()))
		success("deleted config")
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore settings to their defaults",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			handleErr(errors.New("either --key or --all must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for k, field := range config.Default {
				viper.Set(k, field.Value)
			}
			handleErr(saveConfig())
			success("reset all config values")
			return
		}

		key := lo.Must(cmd.Flags().GetString("key"))
		field, err := lookupField(key)
		handleErr(err)

		viper.Set(key, field.Value)
		handleErr(saveConfig())
		success("reset %s to default value %s", style.Fg(color.Purple)(key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
	},
}
