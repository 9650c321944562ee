package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/focusbot/internal/common/logger"
	"github.com/KirkDiggler/focusbot/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configFile string
	envFile    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "focusbot",
		Short:         "Discord pomodoro bot with points and a leaderboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, opts.envFile)
			if err != nil {
				return err
			}

			if _, err := logger.Setup(&logger.Config{
				Level:  cfg.Log.Level,
				File:   cfg.Log.File,
				Pretty: cfg.Log.Pretty,
			}); err != nil {
				return err
			}

			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts.cfg)
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional YAML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file to load (default .env when present)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newQuotesCmd(opts))
	root.AddCommand(newLeaderboardCmd(opts))
	return root
}
