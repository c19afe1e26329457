package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/moodreel/internal/domain"
)

// FeaturedLimit is how many popular titles the home screen shows
const FeaturedLimit = 8

// FeaturedService provides the "popular right now" list
type FeaturedService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewFeaturedService creates a new featured service
func NewFeaturedService(repo domain.CatalogRepository, logger *slog.Logger) *FeaturedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeaturedService{repo: repo, logger: logger}
}

// Featured returns the first FeaturedLimit popular titles
func (s *FeaturedService) Featured(ctx context.Context) ([]domain.CatalogItem, error) {
	items, err := s.repo.Popular(ctx)
	if err != nil {
		s.logger.Error("failed to fetch featured movies", "error", err)
		return nil, err
	}
	if len(items) > FeaturedLimit {
		items = items[:FeaturedLimit]
	}
	return items, nil
}
