package tui

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/filter"
	"github.com/mmcdole/moodreel/internal/service"
	"github.com/mmcdole/moodreel/internal/tui/components"
)

// Screen is the page currently shown
type Screen int

const (
	ScreenHome Screen = iota
	ScreenMood
)

// ApplicationState represents modal states layered over a screen
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateDetail // featured movie details over the home screen
)

// Layout proportions for the mood screen
const (
	GridColumnPercent = 55
	MinColumnWidth    = 24

	// Vertical layout: single footer line
	ChromeHeight = 1
)

const tickInterval = 100 * time.Millisecond

// Services bundles what the TUI needs from the service layer
type Services struct {
	Discovery *service.DiscoveryService
	Featured  *service.FeaturedService
	Palettes  *service.PaletteService
	Filter    *filter.Filter
	Browser   MovieOpener // optional
}

// MovieOpener opens a movie's catalog page outside the terminal
type MovieOpener interface {
	OpenMovie(movieID int) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	Screen Screen
	State  ApplicationState
	Ready  bool

	svc         Services
	defaultSort domain.SortOrder
	logger      *slog.Logger

	// UI Components
	Picker    components.MoodPicker
	Grid      components.Grid
	Inspector components.Inspector
	SortModal components.SortModal

	// Latest session snapshot
	Session domain.FetchState

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
	lastErr      error
}

// NewModel creates a new application model.
// A non-empty startMood opens that mood directly instead of the home screen.
func NewModel(svc Services, startMood domain.MoodSelector, defaultSort domain.SortOrder, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if !defaultSort.IsValid() {
		defaultSort = domain.DefaultSortOrder
	}
	m := Model{
		Screen:      ScreenHome,
		State:       StateBrowsing,
		svc:         svc,
		defaultSort: defaultSort,
		logger:      logger,
		Picker:      components.NewMoodPicker(),
		Grid:        components.NewGrid(),
		Inspector:   components.NewInspector(),
		SortModal:   components.NewSortModal(),
	}
	m.Grid.SetFocused(true)
	if startMood != "" {
		m.Session = domain.FetchState{Mood: domain.ParseMood(string(startMood)), Sort: defaultSort}
		m.Screen = ScreenMood
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadFeaturedCmd(m.svc.Featured),
		TickCmd(tickInterval),
	}
	if m.Screen == ScreenMood {
		cmds = append(cmds, func() tea.Msg {
			return components.PickerAction{Kind: components.PickerMood, Mood: m.Session.Mood}
		})
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case components.PickerAction:
		return m.handlePickerAction(msg)

	case FeaturedLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("featured movies unavailable", "error", msg.Err)
		}
		m.Picker.SetFeatured(msg.Items, msg.Err)
		return m, nil

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case PaletteDueMsg:
		item, ok := m.Inspector.Item()
		if !ok || item.ID != msg.MovieID || m.Inspector.PaletteStatus() != components.PaletteUnknown {
			return m, nil
		}
		m.Inspector.SetPaletteLoading()
		return m, LoadPaletteCmd(m.svc.Palettes, item)

	case PaletteLoadedMsg:
		if msg.Err != nil {
			m.logger.Debug("palette unavailable", "movieID", msg.MovieID, "error", msg.Err)
		}
		m.Inspector.SetPalette(msg.MovieID, msg.Palette, msg.Err)
		return m, nil

	case ErrMsg:
		return m.setError(msg)

	case StatusMsg:
		m.StatusMsg = msg.Text
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// startMood opens a fresh session for the mood and requests its first page
func (m Model) startMood(mood domain.MoodSelector, sort domain.SortOrder) (tea.Model, tea.Cmd) {
	m.Session = m.svc.Discovery.StartSession(mood, sort)
	m.Screen = ScreenMood
	m.State = StateBrowsing
	m.Grid.SetItems(nil)
	m.Grid.SetFocused(true)
	m.Inspector.SetItem(nil)
	m.Loading = true
	m.lastErr = nil
	m.updateLayout()

	m.logger.Info("opening mood", "mood", m.Session.Mood, "sort", m.Session.Sort)
	return m, FetchPageCmd(m.svc.Discovery)
}

// loadMore requests the next page unless the session is exhausted or busy
func (m Model) loadMore() (tea.Model, tea.Cmd) {
	if m.Screen != ScreenMood || m.Loading || m.Session.Exhausted {
		return m, nil
	}
	m.Loading = true
	m.lastErr = nil
	return m, FetchPageCmd(m.svc.Discovery)
}

func (m Model) handlePickerAction(a components.PickerAction) (tea.Model, tea.Cmd) {
	switch a.Kind {
	case components.PickerMood:
		return m.startMood(a.Mood, m.defaultSort)
	case components.PickerFeatured:
		item := a.Item
		m.State = StateDetail
		m.Inspector.SetItem(&item)
		m.updateLayout()
		return m, m.requestPalette()
	}
	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	// A response for a session the user already left
	if errors.Is(msg.Err, domain.ErrStaleGeneration) {
		return m, nil
	}
	if errors.Is(msg.Err, domain.ErrFetchInFlight) {
		return m, nil
	}
	if msg.State.Generation != m.Session.Generation {
		return m, nil
	}

	m.Loading = false
	if msg.Err != nil {
		m.lastErr = msg.Err
		return m.setError(ErrMsg{Err: msg.Err, Context: "loading movies"})
	}

	m.Session = msg.State
	m.Grid.AppendItems(m.svc.Discovery.Visible(m.svc.Filter))
	m.updateLayout()
	return m, m.syncInspector()
}

// syncInspector points the inspector at the grid selection and schedules its palette
func (m *Model) syncInspector() tea.Cmd {
	item, ok := m.Grid.SelectedItem()
	if !ok {
		m.Inspector.SetItem(nil)
		return nil
	}
	m.Inspector.SetItem(&item)
	return m.requestPalette()
}

// requestPalette shows a cached palette immediately or schedules extraction
func (m *Model) requestPalette() tea.Cmd {
	item, ok := m.Inspector.Item()
	if !ok || m.Inspector.PaletteStatus() != components.PaletteUnknown {
		return nil
	}
	if p, ok := m.svc.Palettes.Cached(item.ID); ok {
		m.Inspector.SetPalette(item.ID, p, nil)
		return nil
	}
	return SchedulePaletteCmd(item.ID)
}

func (m Model) setError(e ErrMsg) (tea.Model, tea.Cmd) {
	m.logger.Error("ui error", "context", e.Context, "error", e.Err)
	m.StatusMsg = userMessage(e)
	m.StatusIsErr = true
	return m, ClearStatusCmd(5 * time.Second)
}

// userMessage turns an error into a short status line
func userMessage(e ErrMsg) string {
	switch {
	case errors.Is(e.Err, domain.ErrUnauthorized):
		return "TMDB rejected the API key (set MOODREEL_TMDB_API_KEY or edit config.yaml)"
	case errors.Is(e.Err, domain.ErrCatalogUnavailable):
		return "TMDB is unreachable, press r to retry"
	case errors.Is(e.Err, domain.ErrMalformedResponse):
		return "TMDB sent an unexpected response, press r to retry"
	default:
		return e.Error()
	}
}

// updateLayout sizes the components for the current screen
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}
	contentHeight := max(m.Height-ChromeHeight, 1)

	m.Picker.SetSize(m.Width, contentHeight)

	gridWidth := max(m.Width*GridColumnPercent/100, MinColumnWidth)
	inspectorWidth := max(m.Width-gridWidth, MinColumnWidth)
	m.Grid.SetSize(gridWidth, contentHeight)

	if m.State == StateDetail {
		m.Inspector.SetSize(min(max(m.Width/2, 40), m.Width), min(contentHeight, 24))
	} else {
		m.Inspector.SetSize(inspectorWidth, contentHeight)
	}
}
