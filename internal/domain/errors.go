package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrCatalogUnavailable indicates the catalog API is unreachable
	ErrCatalogUnavailable = errors.New("catalog is unreachable")

	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("catalog api key is invalid")

	// ErrMalformedResponse indicates the catalog returned a body we could not parse
	ErrMalformedResponse = errors.New("malformed catalog response")

	// ErrNoSession indicates a page was requested before a mood session started
	ErrNoSession = errors.New("no mood session started")

	// ErrFetchInFlight indicates a page request is already outstanding for the session
	ErrFetchInFlight = errors.New("a page fetch is already in flight")

	// ErrStaleGeneration indicates a response arrived for a superseded session and was dropped
	ErrStaleGeneration = errors.New("response belongs to a superseded session")

	// ErrArtworkDecode indicates artwork could not be loaded or decoded
	ErrArtworkDecode = errors.New("artwork could not be decoded")

	// ErrNoArtwork indicates the item has neither a backdrop nor a poster
	ErrNoArtwork = errors.New("item has no artwork")
)

// FetchError is returned when a catalog page request fails. The session
// state is left untouched and the same page may be retried.
type FetchError struct {
	Mood MoodSelector
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s page %d: %v", e.Mood, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ArtworkError is reported when a movie's artwork fails to load or decode.
// It is recovered locally by yielding an empty palette.
type ArtworkError struct {
	MovieID int
	Path    string
	Err     error
}

func (e *ArtworkError) Error() string {
	return fmt.Sprintf("artwork for movie %d (%s): %v", e.MovieID, e.Path, e.Err)
}

func (e *ArtworkError) Unwrap() error { return e.Err }
