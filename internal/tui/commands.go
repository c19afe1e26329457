package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/service"
)

// Command factories for async operations

// paletteDelay debounces palette extraction while the cursor is moving
const paletteDelay = 150 * time.Millisecond

// LoadFeaturedCmd loads the popular strip for the home screen
func LoadFeaturedCmd(svc *service.FeaturedService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := svc.Featured(ctx)
		return FeaturedLoadedMsg{Items: items, Err: err}
	}
}

// FetchPageCmd requests the next page of the current mood session.
// The service applies its own per-request timeout.
func FetchPageCmd(svc *service.DiscoveryService) tea.Cmd {
	return func() tea.Msg {
		state, err := svc.FetchNextPage(context.Background())
		return PageLoadedMsg{State: state, Err: err}
	}
}

// SchedulePaletteCmd emits PaletteDueMsg after a short delay
func SchedulePaletteCmd(movieID int) tea.Cmd {
	return tea.Tick(paletteDelay, func(time.Time) tea.Msg {
		return PaletteDueMsg{MovieID: movieID}
	})
}

// LoadPaletteCmd resolves the mood palette for a movie
func LoadPaletteCmd(svc *service.PaletteService, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		p, err := svc.PaletteFor(ctx, item)
		return PaletteLoadedMsg{MovieID: item.ID, Palette: p, Err: err}
	}
}

// TickCmd returns a command that sends a tick after the given duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// OpenMovieCmd opens the movie page in the browser
func OpenMovieCmd(opener MovieOpener, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		if err := opener.OpenMovie(item.ID); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return StatusMsg{Text: "Opened " + item.Title}
	}
}
