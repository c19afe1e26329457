package tmdb

import (
	"strings"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
)

const releaseDateLayout = "2006-01-02"

// MapMovie converts a TMDB movie into a catalog item.
// Invalid or missing dates become absent; ratings are clamped to their ranges.
func MapMovie(m Movie) domain.CatalogItem {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = strings.TrimSpace(m.OriginalTitle)
	}

	item := domain.CatalogItem{
		ID:           m.ID,
		Title:        title,
		Overview:     m.Overview,
		PosterPath:   strings.TrimSpace(m.PosterPath),
		BackdropPath: strings.TrimSpace(m.BackdropPath),
		VoteAverage:  min(max(m.VoteAverage, 0), 10),
		VoteCount:    max(m.VoteCount, 0),
	}

	if m.ReleaseDate != "" {
		if t, err := time.Parse(releaseDateLayout, m.ReleaseDate); err == nil {
			item.ReleaseDate = t
		}
	}

	return item
}

// MapMovies converts a page of results, preserving order
func MapMovies(movies []Movie) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(movies))
	for _, m := range movies {
		items = append(items, MapMovie(m))
	}
	return items
}
