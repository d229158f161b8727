package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/db47h/gatesim/internal/config"
	"github.com/db47h/gatesim/internal/logging"
	"github.com/spf13/cobra"
)

// set up by the root command before any sub-command runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gatesim",
	Short: "gatesim is a gate level logic circuit simulator",
	Long: `gatesim simulates boolean logic circuits built from gates, latches and
flip-flops. It prints truth tables of combinational parts and runs clocked
parts against a real time clock.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
}

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	var err error
	if path == "" {
		cfg = config.Default()
	} else if cfg, err = config.Load(path); err != nil {
		return err
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		if err = cfg.Log.Level.UnmarshalText([]byte(l)); err != nil {
			return err
		}
	}
	if f, _ := cmd.Flags().GetString("log-format"); f != "" {
		cfg.Log.Format = f
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	logger, err = logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	return err
}
