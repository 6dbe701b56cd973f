package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"desknotes/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "desknotes",
	Short: "Local note-taking backend",
	Long: `desknotes keeps notes in a local SQLite database and embedded images
in a content-addressed attachments directory. It serves the editing
surface over a loopback HTTP API.

Configuration comes from the environment or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = c

		opts := &slog.HandlerOptions{
			Level: cfg.LogLevel,
		}
		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
		slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
