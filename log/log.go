// Package log is the logging facade used across leanback. It writes to a daily file through logrus
// and silently discards everything unless logs.write is enabled.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/leanback-cli/leanback/filesystem"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	enabled bool
	logger  = newDiscardLogger()
)

// Fields is an alias so callers do not have to import logrus for structured entries.
type Fields = logrus.Fields

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup opens today's log file and applies the configured level and format.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	return Configure(f, viper.GetString(key.LogsLevel), viper.GetBool(key.LogsJson))
}

// Configure points the logger at w. Unknown levels fall back to info.
func Configure(w io.Writer, level string, json bool) error {
	enabled = true
	logger.SetOutput(w)

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return nil
}

// With returns an entry carrying structured fields. It is safe to call while logging is disabled.
func With(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...interface{}) {
	if enabled {
		logger.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled {
		logger.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled {
		logger.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		logger.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		logger.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		logger.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled {
		logger.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		logger.Debugf(format, args...)
	}
}
