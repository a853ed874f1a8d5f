package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn/internal/config"
)

var (
	opts   *Options
	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts = DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "connectn",
		Short: "Connect-N board game",
		Long: `connectn plays connect-N on the console and keeps a history of finished matches.

Players take turns dropping pieces into the columns of a grid. The first player to
line up the configured number of pieces vertically, horizontally or diagonally wins.
Finished matches are stored in memory or Redis and can be listed with "history" or
served over HTTP with "serve".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			logger = newLogger(cmd.ErrOrStderr(), cfg)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "YAML config file (env: CONNECTN_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&opts.Storage, "storage", opts.Storage, "History storage: memory, redis (env: CONNECTN_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&opts.RedisURL, "redis-url", opts.RedisURL, "Redis URL for redis storage (env: CONNECTN_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug, info, warn, error (env: CONNECTN_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
