// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/filesystem"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Leanback)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Leanback)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Watch reloads the configuration file whenever it changes on disk and reports the keys whose values moved.
// It is a no-op when no configuration file was loaded.
func Watch(onChange func(keys []string)) {
	if viper.ConfigFileUsed() == "" {
		return
	}

	snapshot := currentValues()
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		log.Infof("config file %s changed", e.Name)

		next := currentValues()
		var changed []string
		for k, v := range next {
			if snapshot[k] != v {
				changed = append(changed, k)
			}
		}
		snapshot = next

		if len(changed) > 0 && onChange != nil {
			onChange(changed)
		}
	})
	viper.WatchConfig()
}

// currentValues flattens every registered key to its string form for change detection.
func currentValues() map[string]string {
	values := make(map[string]string, len(Default))
	for k := range Default {
		values[k] = viper.GetString(k)
	}
	return values
}
