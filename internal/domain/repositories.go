package domain

import (
	"context"
	"image"
)

// DiscoverQuery is one catalog discovery request
type DiscoverQuery struct {
	Criteria QueryCriteria
	Sort     SortOrder
	Page     int // 1-based
}

// CatalogRepository provides access to the movie catalog
type CatalogRepository interface {
	// Discover returns one page of movies matching the query.
	// An empty slice signals that no further pages exist.
	Discover(ctx context.Context, q DiscoverQuery) ([]CatalogItem, error)

	// Popular returns the catalog's current popular movies
	Popular(ctx context.Context) ([]CatalogItem, error)
}

// ArtworkRepository fetches and decodes artwork images
type ArtworkRepository interface {
	// FetchArtwork downloads and decodes the image at the given artwork path
	FetchArtwork(ctx context.Context, path string) (image.Image, error)
}
