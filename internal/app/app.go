// Package app wires the application together: configuration, preferences,
// the solar node table, the shared store, the refresh engine, and the UI.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"voidwatch/internal/config"
	"voidwatch/internal/engine"
	"voidwatch/internal/fetch"
	"voidwatch/internal/nodes"
	"voidwatch/internal/notify"
	"voidwatch/internal/prefs"
	"voidwatch/internal/state"
	"voidwatch/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string // empty uses the default voidwatch.toml lookup
}

// Run boots the TUI and the background engine until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// The UI owns the terminal, so logs go to a rotating file instead.
	logger := &log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer: &log.FileWriter{
			Filename:   filepath.Join(cfg.DataDir, "voidwatch.log"),
			MaxSize:    10 << 20,
			MaxBackups: 2,
		},
	}

	userPrefs, err := prefs.Load(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	index, err := nodes.Load()
	if err != nil {
		return fmt.Errorf("load solar node table: %w", err)
	}

	store := state.NewStore(userPrefs)

	eng := engine.New(engine.Options{
		Store:    store,
		Fetcher:  fetch.NewClient(),
		Nodes:    index,
		Notifier: &notify.LogNotifier{Log: logger},
		Config:   cfg,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng.Start(ctx)
	logger.Info().Str("data_dir", cfg.DataDir).Str("primary", cfg.PrimaryURL).Msg("voidwatch starting")

	return ui.Run(ctx, ui.Options{Store: store, Control: eng})
}
