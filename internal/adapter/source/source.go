package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/moodreel/internal/adapter"
	"github.com/mmcdole/moodreel/internal/adapter/source/tmdb"
	"github.com/mmcdole/moodreel/internal/domain"
)

// Catalog combines the repository interfaces the catalog backend must implement
type Catalog interface {
	domain.CatalogRepository // Discover, Popular
	domain.ArtworkRepository // FetchArtwork
}

// ClientOptions maps the application config onto TMDB client options
func ClientOptions(cfg *adapter.Config, logger *slog.Logger) tmdb.Options {
	return tmdb.Options{
		BaseURL:           cfg.TMDB.BaseURL,
		ImageBaseURL:      cfg.TMDB.ImageBaseURL,
		ImageWidth:        cfg.TMDB.ImageWidth,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		Logger:            logger,
	}
}

// NewClientFromConfig creates the catalog client from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("tmdb api key is required")
	}
	return tmdb.NewClient(cfg.TMDB.APIKey, ClientOptions(cfg, logger)), nil
}

// NewSetupFlow creates the first-run API key prompt
func NewSetupFlow(cfg *adapter.Config, logger *slog.Logger) *tmdb.SetupFlow {
	return tmdb.NewSetupFlow(ClientOptions(cfg, logger), logger)
}
