package service

import (
	"context"
	"image"
	"log/slog"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/palette"
)

// PaletteService resolves a movie's mood palette from its artwork
type PaletteService struct {
	cache   *palette.Cache
	artwork domain.ArtworkRepository
	logger  *slog.Logger
}

// NewPaletteService creates a new palette service
func NewPaletteService(cache *palette.Cache, artwork domain.ArtworkRepository, logger *slog.Logger) *PaletteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaletteService{cache: cache, artwork: artwork, logger: logger}
}

// PaletteFor returns the palette for an item's artwork (backdrop preferred).
//
// The palette is always usable: when artwork is missing or broken it is empty
// and the error is a *domain.ArtworkError describing why.
func (s *PaletteService) PaletteFor(ctx context.Context, item domain.CatalogItem) (domain.Palette, error) {
	path := item.ArtworkPath()
	if path == "" {
		return domain.Palette{}, &domain.ArtworkError{MovieID: item.ID, Err: domain.ErrNoArtwork}
	}

	p, err := s.cache.Get(ctx, item.ID, func(ctx context.Context) (image.Image, error) {
		return s.artwork.FetchArtwork(ctx, path)
	})
	if err != nil {
		return p, &domain.ArtworkError{MovieID: item.ID, Path: path, Err: err}
	}
	return p, nil
}

// Cached returns a palette already resolved for the movie, if any
func (s *PaletteService) Cached(movieID int) (domain.Palette, bool) {
	return s.cache.Peek(movieID)
}
