// Package commands implements the quirkctl CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     Config
	logger  *slog.Logger
)

// Execute runs the quirkctl root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "quirkctl",
		Short:         "Zigbee device quirk tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(envFile); err != nil {
				return err
			}
			cfg = cfg.withEnv(cmd.Flags())
			logger = NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load")
	root.PersistentFlags().StringVar(&cfg.QuirkDir, "quirks", "", "quirk file directory (env QUIRKCTL_QUIRKS)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error (env QUIRKCTL_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", "text", "log format: text, json (env QUIRKCTL_LOG_FORMAT)")

	root.AddCommand(validateCmd(), resolveCmd(), traceCmd())
	return root.Execute()
}
