package domain

import "time"

// CatalogItem is a movie record returned by the external catalog.
// Empty PosterPath/BackdropPath and a zero ReleaseDate mean the field is absent.
type CatalogItem struct {
	ID           int
	Title        string
	Overview     string
	PosterPath   string
	BackdropPath string
	VoteAverage  float64 // 0-10
	VoteCount    int
	ReleaseDate  time.Time
}

// HasPoster returns true if the item has poster artwork
func (c CatalogItem) HasPoster() bool { return c.PosterPath != "" }

// HasBackdrop returns true if the item has backdrop artwork
func (c CatalogItem) HasBackdrop() bool { return c.BackdropPath != "" }

// HasReleaseDate returns true if the release date is known
func (c CatalogItem) HasReleaseDate() bool { return !c.ReleaseDate.IsZero() }

// Year returns the release year, or 0 when unknown
func (c CatalogItem) Year() int {
	if !c.HasReleaseDate() {
		return 0
	}
	return c.ReleaseDate.Year()
}

// ArtworkPath returns the image used for palette extraction.
// The backdrop is preferred; the poster is the fallback.
func (c CatalogItem) ArtworkPath() string {
	if c.HasBackdrop() {
		return c.BackdropPath
	}
	return c.PosterPath
}

// FetchState is the state of one mood session.
//
// Items never contains duplicate ids and keeps arrival order. Exhausted only
// becomes true after a fetched page returned zero items. CurrentPage never
// decreases within a Generation.
type FetchState struct {
	Mood        MoodSelector
	Sort        SortOrder
	CurrentPage int
	Items       []CatalogItem
	Exhausted   bool
	Generation  uint64
}

// Clone returns a deep copy so callers never alias session storage
func (s FetchState) Clone() FetchState {
	out := s
	if s.Items != nil {
		out.Items = make([]CatalogItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}

// Contains returns true if an item with the given id has been accumulated
func (s FetchState) Contains(id int) bool {
	for _, item := range s.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}
