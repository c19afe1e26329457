package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/filter"
	"github.com/mmcdole/moodreel/internal/mood"
)

// DefaultRequestTimeout bounds one catalog page request
const DefaultRequestTimeout = 15 * time.Second

// DiscoveryService accumulates catalog pages for one mood session at a time.
//
// Starting a session bumps the generation. A page response is applied only if
// the generation it was requested under is still current, so a slow response
// for an abandoned mood or sort order can never leak into the new session.
type DiscoveryService struct {
	repo    domain.CatalogRepository
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	started  bool
	state    domain.FetchState
	seen     map[int]struct{}
	inFlight bool
	flightID uint64 // generation of the outstanding request
}

// NewDiscoveryService creates a new discovery service.
// A zero timeout uses DefaultRequestTimeout.
func NewDiscoveryService(repo domain.CatalogRepository, timeout time.Duration, logger *slog.Logger) *DiscoveryService {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &DiscoveryService{
		repo:    repo,
		timeout: timeout,
		logger:  logger,
		seen:    make(map[int]struct{}),
	}
}

// StartSession discards the current session and begins a new one at page 1.
// Unknown moods fall back to domain.DefaultMood and unknown sort orders to
// domain.DefaultSortOrder.
func (s *DiscoveryService) StartSession(m domain.MoodSelector, sort domain.SortOrder) domain.FetchState {
	if !m.IsValid() {
		m = domain.DefaultMood
	}
	if !sort.IsValid() {
		sort = domain.DefaultSortOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = true
	s.state = domain.FetchState{
		Mood:        m,
		Sort:        sort,
		CurrentPage: 1,
		Items:       []domain.CatalogItem{},
		Generation:  s.state.Generation + 1,
	}
	s.seen = make(map[int]struct{})
	s.inFlight = false

	s.logger.Info("mood session started", "mood", m, "sort", sort, "generation", s.state.Generation)
	return s.state.Clone()
}

// FetchNextPage requests the session's current page and merges the result.
//
// A non-empty page appends the ids not seen before and advances the page.
// An empty page marks the session exhausted. On failure the state is left as
// it was and a *domain.FetchError is returned so the same page can be retried.
// If the session was replaced while the request was outstanding the response
// is dropped and domain.ErrStaleGeneration is returned.
func (s *DiscoveryService) FetchNextPage(ctx context.Context) (domain.FetchState, error) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return domain.FetchState{}, domain.ErrNoSession
	}
	if s.state.Exhausted {
		snapshot := s.state.Clone()
		s.mu.Unlock()
		return snapshot, nil
	}
	if s.inFlight && s.flightID == s.state.Generation {
		snapshot := s.state.Clone()
		s.mu.Unlock()
		return snapshot, domain.ErrFetchInFlight
	}

	gen := s.state.Generation
	m := s.state.Mood
	page := s.state.CurrentPage
	query := domain.DiscoverQuery{
		Criteria: mood.CriteriaFor(m),
		Sort:     s.state.Sort,
		Page:     page,
	}
	s.inFlight = true
	s.flightID = gen
	s.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	items, err := s.repo.Discover(reqCtx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight && s.flightID == gen {
		s.inFlight = false
	}

	if s.state.Generation != gen {
		s.logger.Debug("dropping stale page",
			"mood", m,
			"page", page,
			"generation", gen,
			"current", s.state.Generation,
		)
		return s.state.Clone(), domain.ErrStaleGeneration
	}

	if err != nil {
		s.logger.Error("failed to fetch page", "mood", m, "page", page, "error", err)
		return s.state.Clone(), &domain.FetchError{Mood: m, Page: page, Err: err}
	}

	if len(items) == 0 {
		s.state.Exhausted = true
		s.logger.Info("mood session exhausted", "mood", m, "page", page, "total", len(s.state.Items))
		return s.state.Clone(), nil
	}

	added := 0
	for _, item := range items {
		if _, dup := s.seen[item.ID]; dup {
			continue
		}
		s.seen[item.ID] = struct{}{}
		s.state.Items = append(s.state.Items, item)
		added++
	}
	s.state.CurrentPage++

	s.logger.Debug("page fetched",
		"mood", m,
		"page", page,
		"received", len(items),
		"added", added,
		"duration", time.Since(start),
	)
	return s.state.Clone(), nil
}

// State returns a snapshot of the current session
func (s *DiscoveryService) State() domain.FetchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Visible returns the accumulated items that pass the content filter.
// A nil filter returns every accumulated item.
func (s *DiscoveryService) Visible(f *filter.Filter) []domain.CatalogItem {
	items := s.State().Items
	if f == nil {
		return items
	}
	return f.Apply(items)
}
