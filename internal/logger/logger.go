// Package logger provides the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It writes to stderr until Init is called.
var Log = logrus.New()

// Init configures the shared logger.
//
// LOG_LEVEL selects the level (default "info"); LOG_FORMAT=json switches to
// JSON output. The game owns the terminal while running, so callers
// normally pass a file here rather than stdout.
func Init(out io.Writer) {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
}

// OpenFile opens (or creates) the log file at path for appending.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
