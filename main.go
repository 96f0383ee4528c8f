package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/app"
	"github.com/llehouerou/tunedeck/internal/artwork"
	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/config"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/icons"
	"github.com/llehouerou/tunedeck/internal/logging"
	"github.com/llehouerou/tunedeck/internal/mpris"
	"github.com/llehouerou/tunedeck/internal/notify"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/prefs"
	"github.com/llehouerou/tunedeck/internal/speech"
	"github.com/llehouerou/tunedeck/internal/stderr"
	"github.com/llehouerou/tunedeck/internal/tracker"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tunedeck",
		Short:         "Terminal music player for a fixed playlist",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tunedeck/config.toml)")

	root.AddCommand(
		newCatalogCmd(&configPath),
		newSearchCmd(&configPath),
		newPrefsCmd(&configPath),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run starts the TUI.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Audio backends write straight to fd 2, which would corrupt the screen.
	capture, err := stderr.Start(logger)
	if err != nil {
		logger.Warn("stderr capture unavailable", zap.Error(err))
	}
	defer capture.Stop()

	cat, err := catalog.Load(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpCatalogLoad, err)
	}

	store, err := prefs.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()

	manager := prefs.NewManager(store, logger)
	pr := manager.Load()
	tr := tracker.New(cat, manager, pr.Favorites, pr.Recents)

	engine := player.NewBeepEngine(logger)
	defer engine.Close()

	ctrl, err := playback.New(cat, engine,
		playback.WithPreferences(pr, manager),
		playback.WithRecorder(tr),
		playback.WithFavorites(tr),
		playback.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	defer ctrl.Close()

	icons.Init(cfg.Icons)

	art, err := artwork.NewCache("")
	if err != nil {
		logger.Warn("artwork cache unavailable", zap.Error(err))
		art = nil
	}

	var nowPlaying *notify.NowPlaying
	if cfg.Notifications {
		if n, err := notify.New(); err != nil {
			logger.Warn("notifications unavailable", zap.Error(err))
		} else {
			nowPlaying = notify.NewNowPlaying(n, iconSource(art))
		}
	}

	adapter, err := mpris.New(ctrl, artSource(art), logger)
	if err != nil {
		logger.Warn("mpris unavailable", zap.Error(err))
	} else {
		defer adapter.Close()
	}

	m := app.New(app.Deps{
		Controller: ctrl,
		Events:     engine.Events(),
		Tracker:    tr,
		Prefs:      manager,
		Theme:      pr.Theme,
		Recognizer: speech.New(cfg.Speech.Command),
		NowPlaying: nowPlaying,
		Prober:     player.ProbeDuration,
		Autoplay:   cfg.Autoplay,
		Debounce:   cfg.SearchDebounce(),
		Logger:     logger,
	})

	logger.Info("starting", zap.Int("tracks", cat.Len()))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// A nil *artwork.Cache must not reach the interfaces as a typed nil.
func iconSource(c *artwork.Cache) notify.IconSource {
	if c == nil {
		return nil
	}
	return c
}

func artSource(c *artwork.Cache) mpris.ArtSource {
	if c == nil {
		return nil
	}
	return c
}
