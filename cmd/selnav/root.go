package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/selnav/internal/app"
	"github.com/dshills/selnav/internal/config"
	"github.com/dshills/selnav/internal/history"
	"github.com/dshills/selnav/internal/store"
)

// flags are the persistent command line flags.
type flags struct {
	configPath string
	storePath  string
	scenePath  string
	logLevel   string
	logFile    string
	noPersist  bool
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:   "selnav",
		Short: "Browse a scene and step back and forth through your selections",
		Long: `selnav is a terminal scene browser that remembers what you selected.

Ctrl+G steps back through the selection history and Alt+G steps forward.
Selecting something new while stepped back discards the forward entries,
like a browser. The history is saved between sessions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&f.storePath, "store", "", "history file, .toml or .yaml (overrides history.store)")
	pf.StringVarP(&f.scenePath, "scene", "s", "", "scene file to open (default: built-in sample scene)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&f.noPersist, "no-persist", false, "keep the history in memory only")

	root.AddCommand(
		newHistoryCmd(&f),
		newClearCmd(&f),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	f.apply(&cfg)
	return cfg, cfg.Validate()
}

// apply overwrites cfg with the settings given on the command line.
func (f flags) apply(cfg *config.Config) {
	if f.storePath != "" {
		cfg.History.Store = f.storePath
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
}

func openStore(cfg config.Config) (history.Store, error) {
	return store.NewFileStore(cfg.History.Store)
}

func runUI(ctx context.Context, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	log, closer := app.NewLogger(cfg.Log, true)
	defer closer.Close()

	application, err := app.New(app.Options{
		Config:    cfg,
		ScenePath: f.scenePath,
		NoPersist: f.noPersist,
		Logger:    log,
		Overrides: f.apply,
	})
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting with %d remembered selections", application.Tracker().Len())
	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
