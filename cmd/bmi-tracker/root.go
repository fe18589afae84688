package main

import (
	"context"
	"fmt"
	"os"

	"bmi-tracker/internal/config"
	"bmi-tracker/internal/logger"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	historyFile string
	logLevel    string
	debug       bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:          "bmi-tracker",
		Short:        "Desktop BMI calculator with a persistent history chart",
		Version:      AppVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}

			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log := logger.NewConsoleLogger(level)

			application, err := NewApplication(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("Application", err, nil)
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.SetContext(context.Background())

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	f.StringVar(&flags.historyFile, "history", "", "path to the BMI history CSV file")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&flags.debug, "debug", false, "shorthand for --log-level=debug")

	return cmd
}

// resolveConfig layers flags that were set explicitly on top of the file
// and environment configuration.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath, os.Getenv)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("history") {
		cfg.HistoryFile = flags.historyFile
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
