// Package where resolves the filesystem locations leanback reads from and writes to.
package where

import (
	"os"
	"path/filepath"

	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "LEANBACK_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring LEANBACK_CONFIG_PATH before the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Leanback))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Leanback))
}

// Logs resolves the directory for daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the file holding the last watched channel and recently played videos.
func History() string {
	return filepath.Join(Cache(), "history.json")
}

// Sockets resolves the directory holding player IPC sockets.
// Sockets live in the OS temp dir because unix socket paths are length limited.
func Sockets() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Leanback))
}
