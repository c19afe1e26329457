package tui

import (
	"github.com/mmcdole/moodreel/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StatusMsg is a transient informational footer message
type StatusMsg struct {
	Text string
}

// FeaturedLoadedMsg carries the "popular right now" list
type FeaturedLoadedMsg struct {
	Items []domain.CatalogItem
	Err   error
}

// PageLoadedMsg carries the session state after a page request
type PageLoadedMsg struct {
	State domain.FetchState
	Err   error
}

// PaletteDueMsg fires once the selection has rested on a movie long enough
// to start extracting its palette
type PaletteDueMsg struct {
	MovieID int
}

// PaletteLoadedMsg carries a resolved palette
type PaletteLoadedMsg struct {
	MovieID int
	Palette domain.Palette
	Err     error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
