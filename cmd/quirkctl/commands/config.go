package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Environment variables providing flag defaults.
const (
	EnvQuirkDir  = "QUIRKCTL_QUIRKS"
	EnvLogLevel  = "QUIRKCTL_LOG_LEVEL"
	EnvLogFormat = "QUIRKCTL_LOG_FORMAT"
)

// Config holds the global settings shared by all commands.
type Config struct {
	QuirkDir  string
	LogLevel  string
	LogFormat string
}

// withEnv fills every setting whose flag was not given explicitly from the
// environment.
func (c Config) withEnv(flags *pflag.FlagSet) Config {
	apply := func(dst *string, flag, env string) {
		if flags != nil && flags.Changed(flag) {
			return
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}
	apply(&c.QuirkDir, "quirks", EnvQuirkDir)
	apply(&c.LogLevel, "log-level", EnvLogLevel)
	apply(&c.LogFormat, "log-format", EnvLogFormat)
	return c
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// NewLogger creates a logger writing to w. Format "json" selects the JSON
// handler, anything else the text handler.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("service", "quirkctl"))
}

// parseLevel converts a string log level to slog.Level.
// Defaults to info if unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
