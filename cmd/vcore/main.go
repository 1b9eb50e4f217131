package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vcore/internal/config"
	"github.com/vango-dev/vcore/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vcore",
		Short: "Reactive view core tooling",
		Long: `vcore works with the reactive runtime and tree diff from the command line.

  • diff two tree documents into a patch list
  • apply a patch list to a tree document
  • benchmark a mounted reactive view`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to vcore.yaml or vcore.json (default: search from the working directory)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(
		diffCmd(a),
		applyCmd(a),
		benchCmd(a),
		configCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// load reads the configuration and builds the logger.
func (a *app) load(stderr io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	a.cfg = cfg
	a.logger = cfg.Logger(stderr)
	a.logger.Debug("configuration loaded", "path", cfg.Path())
	return nil
}
