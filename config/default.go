// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/leanback-cli/leanback/color"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the variable that overrides the field, e.g. LEANBACK_API_BASE_URL.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Leanback + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	return fmt.Sprintf("%T", f.Value)
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.APIBaseURL, "http://localhost:8000/api", "Base URL of the channel backend.\nEvery channel, source and player call is made relative to it")
	register(key.APITimeout, 30, "Timeout in seconds for a single backend request")
	register(key.PlayerBinary, "mpv", "Video player executable.\nMust speak the mpv JSON IPC protocol")
	register(key.PlayerFullscreen, false, "Start every video in fullscreen")
	register(key.PlayerExtraArgs, []string{}, "Extra arguments passed verbatim to the video player")
	register(key.SessionResume, true, "Resume the last watched channel on startup")
	register(key.SessionHistoryLimit, 50, "Number of recently played videos to remember")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, kaomoji, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 0, "Spacing between items in the TUI lists")
	register(key.TUIShowHelp, true, "Show key hints at the bottom of the player screen")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliConfirm, true, "Ask for confirmation before deleting channels and sources from the CLI")
	register(key.CliVersionCheck, true, "Check if a new version is available when running commands")

	if len(Default) != key.DefinedFieldsCount {
		panic(fmt.Sprintf("config: %d fields registered, %d defined", len(Default), key.DefinedFieldsCount))
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
		"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ printf "%T" .Value }}`))
