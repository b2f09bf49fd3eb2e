package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/novel-search/internal/config"
	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/pfrederiksen/novel-search/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

// app carries the resolved configuration between the root command and its subcommands
type app struct {
	flagConfig   string
	flagDataFile string
	flagVerbose  bool

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "novel-search",
		Short: "Collect Hugo and Nebula Best Novel nominees and track their point of view",
		Long: `A CLI tool that scrapes the Hugo and Nebula Best Novel nomination tables,
merges them into a local JSON file, and walks you through annotating each
novel with its narrative point of view and whether you have read it.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Config file (default ~/.config/novel-search/config.toml)")
	cmd.PersistentFlags().StringVar(&a.flagDataFile, "data-file", "", "Data file for the novel collection (overrides config)")
	cmd.PersistentFlags().BoolVar(&a.flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScrapeCmd(a),
		newProcessCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newConfigCmd(a),
	)

	return cmd
}

// setup loads configuration and points the default logger at stderr
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, path, exists, err := config.Load(a.flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if a.flagDataFile != "" {
		cfg.DataFile, err = storage.ExpandHome(a.flagDataFile)
		if err != nil {
			return err
		}
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("Loaded configuration", logger.Fields{
		"config":      path,
		"config_file": exists,
		"data_file":   cfg.DataFile,
		"sources":     len(cfg.Sources),
	})

	a.cfg = cfg
	return nil
}

// openStorage opens the data file and, when lock is set, holds the advisory
// lock until the returned release function runs.
func (a *app) openStorage(lock bool) (*storage.Storage, func(), error) {
	store, err := storage.New(a.cfg.DataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	if !lock {
		return store, func() {}, nil
	}

	unlock, err := store.Lock()
	if err != nil {
		return nil, nil, err
	}

	release := func() {
		if err := unlock(); err != nil {
			logger.Warn("Failed to release data file lock", logger.Fields{"path": store.Path()})
		}
	}
	return store, release, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
