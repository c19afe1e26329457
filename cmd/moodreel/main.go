package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/moodreel/internal/adapter"
	"github.com/mmcdole/moodreel/internal/adapter/source"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/filter"
	"github.com/mmcdole/moodreel/internal/palette"
	"github.com/mmcdole/moodreel/internal/service"
	"github.com/mmcdole/moodreel/internal/store"
	"github.com/mmcdole/moodreel/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		clearCache  bool
		moodFlag    string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-cache", false, "delete stored palettes and exit")
	flag.StringVar(&moodFlag, "mood", "", "open a mood directly (free text is resolved like the search box)")
	flag.Parse()

	if showVersion {
		fmt.Printf("moodreel %s\n", Version)
		return
	}

	if clearCache {
		if err := adapter.ClearCache(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Cache cleared")
		return
	}

	if err := run(moodFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(moodFlag string) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting moodreel", "version", Version)

	// First run: ask for the API key
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	// Palette persistence
	var paletteStore domain.PaletteStore
	if cfg.Palette.Persist {
		s, err := store.NewPaletteStore(adapter.GetCachePath())
		if err != nil {
			logger.Warn("palette store unavailable, palettes will not persist", "error", err)
		} else {
			defer s.Close()
			paletteStore = s
		}
	}

	cache := palette.NewCache(palette.CacheOptions{
		Colors:       cfg.Palette.Colors,
		MaxDimension: cfg.Palette.MaxDimension,
		Store:        paletteStore,
		Logger:       logger,
	})

	contentFilter := filter.New(filter.Options{
		BannedTerms:    cfg.Filter.BannedTerms,
		MinVoteCount:   cfg.Filter.MinVoteCount,
		MinVoteAverage: cfg.Filter.MinVoteAverage,
	})

	// Create services
	svc := tui.Services{
		Discovery: service.NewDiscoveryService(client, cfg.TMDB.Timeout, logger),
		Featured:  service.NewFeaturedService(client, logger),
		Palettes:  service.NewPaletteService(cache, client, logger),
		Filter:    contentFilter,
		Browser:   adapter.NewBrowser(cfg.UI.Browser, logger),
	}

	startMood := domain.MoodSelector("")
	if moodFlag != "" {
		startMood = resolveMoodFlag(moodFlag)
	}

	model := tui.NewModel(svc, startMood, domain.ParseSortOrder(cfg.UI.DefaultSort), logger)
	model.Picker.SelectMood(domain.ParseMood(cfg.UI.DefaultMood))

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "palettes", cache.Len())
	return nil
}

// runSetupFlow prompts for the TMDB API key and saves it
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to MoodReel!")

	key, err := source.NewSetupFlow(cfg, logger).Run(context.Background())
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	cfg.TMDB.APIKey = key
	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	return nil
}
