package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/forkify/internal/config"
	"github.com/five82/forkify/internal/controller"
	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/kv"
	"github.com/five82/forkify/internal/logging"
	"github.com/five82/forkify/internal/nav"
	"github.com/five82/forkify/internal/prefs"
	"github.com/five82/forkify/internal/state"
	"github.com/five82/forkify/internal/ui"
)

// Options configure the Forkify application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/forkify/prefs.toml
	Verbose    bool
}

// Run boots the Forkify TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := forkify.NewClient(cfg.APIURL, cfg.APIKey, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init forkify client: %w", err)
	}

	db, err := kv.OpenBolt(cfg.BookmarksPath())
	if err != nil {
		return fmt.Errorf("open bookmarks: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := state.NewStore(client, db, state.Options{
		ResultsPerPage: cfg.ResultsPerPage,
		Logger:         logger,
	})
	if err := store.Restore(); err != nil {
		logger.Warn("restore bookmarks failed", zap.Error(err))
	}

	bus := event.NewBus()
	loc := nav.New(bus, userPrefs.LastRecipe)
	prefStore := prefs.NewStore(prefsPath, userPrefs)
	loc.Watch(func(id string) {
		if err := prefStore.Update(func(p *prefs.Prefs) { p.LastRecipe = id }); err != nil {
			logger.Warn("save last recipe failed", zap.Error(err))
		}
	})

	p, bridge := ui.NewProgram(ui.Options{
		Context:   ctx,
		Bus:       bus,
		Location:  loc,
		Prefs:     prefStore,
		ThemeName: userPrefs.Theme,
		LogPath:   cfg.LogPath(),
		Logger:    logger,
	})

	// Panels are cleared before the controller's reload handler repaints them.
	bus.Subscribe(event.Reload, func(context.Context, event.Event) { bridge.Reset() })

	ctrl, err := controller.New(store, bridge.Views(), loc, controller.Options{
		CloseDelay: cfg.CloseDelay,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("init controller: %w", err)
	}

	// Views send to the program, which blocks until Run has started.
	go func() {
		if err := ctrl.Start(bus); err != nil {
			logger.Error("start controller failed", zap.Error(err))
			return
		}
		if loc.Hash() != "" {
			bus.Publish(ctx, event.Event{Kind: event.HashChange})
		}
	}()

	logger.Info("forkify started",
		zap.String("api_url", cfg.APIURL),
		zap.Int("bookmarks", len(store.Bookmarks())),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
