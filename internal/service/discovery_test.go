package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves pages from a map keyed by page number
type fakeCatalog struct {
	mu      sync.Mutex
	pages   map[int][]domain.CatalogItem
	popular []domain.CatalogItem
	err     error
	queries []domain.DiscoverQuery

	// block, when set, holds Discover until it is closed
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeCatalog) Discover(ctx context.Context, q domain.DiscoverQuery) ([]domain.CatalogItem, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[q.Page], nil
}

func (f *fakeCatalog) Popular(ctx context.Context) ([]domain.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.popular, nil
}

func (f *fakeCatalog) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func movies(ids ...int) []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(ids))
	for i, id := range ids {
		out[i] = domain.CatalogItem{
			ID:          id,
			Title:       "Movie",
			PosterPath:  "/p.jpg",
			VoteAverage: 7,
			VoteCount:   500,
		}
	}
	return out
}

func itemIDs(items []domain.CatalogItem) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestDiscovery_NoSession(t *testing.T) {
	svc := NewDiscoveryService(&fakeCatalog{}, 0, nil)
	_, err := svc.FetchNextPage(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSession)
}

func TestDiscovery_StartSession(t *testing.T) {
	svc := NewDiscoveryService(&fakeCatalog{}, 0, nil)

	first := svc.StartSession(domain.MoodCozy, domain.SortNewest)
	assert.Equal(t, domain.MoodCozy, first.Mood)
	assert.Equal(t, domain.SortNewest, first.Sort)
	assert.Equal(t, 1, first.CurrentPage)
	assert.Empty(t, first.Items)
	assert.False(t, first.Exhausted)

	second := svc.StartSession("unknown", "bogus.asc")
	assert.Equal(t, domain.DefaultMood, second.Mood)
	assert.Equal(t, domain.DefaultSortOrder, second.Sort)
	assert.Greater(t, second.Generation, first.Generation)
}

func TestDiscovery_PagesUntilExhausted(t *testing.T) {
	repo := &fakeCatalog{pages: map[int][]domain.CatalogItem{
		1: movies(1, 2, 3),
		2: movies(4, 5),
	}}
	svc := NewDiscoveryService(repo, 0, nil)
	svc.StartSession(domain.MoodRainy, domain.SortPopularity)

	st, err := svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, itemIDs(st.Items))
	assert.Equal(t, 2, st.CurrentPage)

	st, err = svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, itemIDs(st.Items))
	assert.Equal(t, 3, st.CurrentPage)
	assert.False(t, st.Exhausted)

	st, err = svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Exhausted)
	assert.Equal(t, 3, st.CurrentPage, "empty page does not advance")
	assert.Len(t, st.Items, 5)

	// Exhausted sessions issue no further requests
	calls := repo.queryCount()
	st, err = svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Exhausted)
	assert.Equal(t, calls, repo.queryCount())
}

func TestDiscovery_QueryUsesMoodCriteria(t *testing.T) {
	repo := &fakeCatalog{pages: map[int][]domain.CatalogItem{}}
	svc := NewDiscoveryService(repo, 0, nil)
	svc.StartSession(domain.MoodA24, domain.SortOldest)

	_, err := svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.queryCount())

	q := repo.queries[0]
	assert.Equal(t, 41077, q.Criteria.CompanyID)
	assert.Equal(t, domain.SortOldest, q.Sort)
	assert.Equal(t, 1, q.Page)
}

func TestDiscovery_DeduplicatesAcrossPages(t *testing.T) {
	repo := &fakeCatalog{pages: map[int][]domain.CatalogItem{
		1: movies(1, 2, 3),
		2: movies(3, 1, 4),
		3: movies(2, 4),
	}}
	svc := NewDiscoveryService(repo, 0, nil)
	svc.StartSession(domain.MoodComfort, domain.SortPopularity)

	for i := 0; i < 3; i++ {
		_, err := svc.FetchNextPage(context.Background())
		require.NoError(t, err)
	}

	st := svc.State()
	assert.Equal(t, []int{1, 2, 3, 4}, itemIDs(st.Items))
	assert.Equal(t, 4, st.CurrentPage, "an all-duplicate page still advances")
	assert.False(t, st.Exhausted)
}

func TestDiscovery_FailureLeavesStateUnchanged(t *testing.T) {
	repo := &fakeCatalog{pages: map[int][]domain.CatalogItem{1: movies(1, 2)}}
	svc := NewDiscoveryService(repo, 0, nil)
	svc.StartSession(domain.MoodThriller, domain.SortPopularity)

	before, err := svc.FetchNextPage(context.Background())
	require.NoError(t, err)

	repo.mu.Lock()
	repo.err = domain.ErrCatalogUnavailable
	repo.mu.Unlock()

	after, err := svc.FetchNextPage(context.Background())
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Page)
	assert.Equal(t, domain.MoodThriller, fe.Mood)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, before, after)

	// The same page can be retried once the catalog recovers
	repo.mu.Lock()
	repo.err = nil
	repo.pages[2] = movies(3)
	repo.mu.Unlock()

	st, err := svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, itemIDs(st.Items))
	assert.Equal(t, 2, repo.queries[len(repo.queries)-1].Page)
}

func TestDiscovery_TimeoutIsFetchError(t *testing.T) {
	repo := &fakeCatalog{block: make(chan struct{})}
	svc := NewDiscoveryService(repo, 10*time.Millisecond, nil)
	svc.StartSession(domain.MoodCozy, domain.SortPopularity)

	_, err := svc.FetchNextPage(context.Background())
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, svc.State().CurrentPage)
}

func TestDiscovery_StaleResponseIsDropped(t *testing.T) {
	repo := &fakeCatalog{
		pages:   map[int][]domain.CatalogItem{1: movies(1, 2, 3)},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	svc := NewDiscoveryService(repo, time.Second, nil)
	svc.StartSession(domain.MoodCozy, domain.SortPopularity)

	type result struct {
		st  domain.FetchState
		err error
	}
	done := make(chan result, 1)
	go func() {
		st, err := svc.FetchNextPage(context.Background())
		done <- result{st, err}
	}()

	<-repo.entered
	fresh := svc.StartSession(domain.MoodThriller, domain.SortNewest)

	close(repo.block)
	res := <-done
	require.ErrorIs(t, res.err, domain.ErrStaleGeneration)

	st := svc.State()
	assert.Equal(t, fresh.Generation, st.Generation)
	assert.Equal(t, domain.MoodThriller, st.Mood)
	assert.Empty(t, st.Items)
	assert.Equal(t, 1, st.CurrentPage)
}

func TestDiscovery_OverlappingFetchRejected(t *testing.T) {
	repo := &fakeCatalog{
		pages:   map[int][]domain.CatalogItem{1: movies(1)},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	svc := NewDiscoveryService(repo, time.Second, nil)
	svc.StartSession(domain.MoodCozy, domain.SortPopularity)

	done := make(chan error, 1)
	go func() {
		_, err := svc.FetchNextPage(context.Background())
		done <- err
	}()
	<-repo.entered

	_, err := svc.FetchNextPage(context.Background())
	require.ErrorIs(t, err, domain.ErrFetchInFlight)

	close(repo.block)
	require.NoError(t, <-done)
	assert.Equal(t, []int{1}, itemIDs(svc.State().Items))
}

func TestDiscovery_StateIsACopy(t *testing.T) {
	repo := &fakeCatalog{pages: map[int][]domain.CatalogItem{1: movies(1, 2)}}
	svc := NewDiscoveryService(repo, 0, nil)
	svc.StartSession(domain.MoodCozy, domain.SortPopularity)

	st, err := svc.FetchNextPage(context.Background())
	require.NoError(t, err)
	st.Items[0].Title = "mutated"

	assert.Equal(t, "Movie", svc.State().Items[0].Title)
}

func TestDiscovery_Visible(t *testing.T) {
	items := movies(1, 2, 3)
	items[1].PosterPath = ""
	items[2].VoteCount = 10
	repo := &fakeCatalog{pages: map[int][]domain.CatalogItem{1: items}}
	svc := NewDiscoveryService(repo, 0, nil)
	svc.StartSession(domain.MoodCozy, domain.SortPopularity)

	_, err := svc.FetchNextPage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1}, itemIDs(svc.Visible(filter.Default())))
	assert.Equal(t, []int{1, 2, 3}, itemIDs(svc.Visible(nil)))
}

func TestFeatured_CapsAtLimit(t *testing.T) {
	repo := &fakeCatalog{popular: movies(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)}
	svc := NewFeaturedService(repo, nil)

	items, err := svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, itemIDs(items))

	repo.popular = movies(1, 2)
	items, err = svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	repo.err = errors.New("boom")
	_, err = svc.Featured(context.Background())
	require.Error(t, err)
}
