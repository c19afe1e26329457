package filter

import (
	"fmt"
	"testing"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodItem(id int) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          id,
		Title:       fmt.Sprintf("Movie %d", id),
		Overview:    "A gentle story.",
		PosterPath:  fmt.Sprintf("/poster%d.jpg", id),
		VoteAverage: 7.5,
		VoteCount:   1200,
	}
}

func TestFilter_HasArtwork(t *testing.T) {
	f := Default()
	item := goodItem(1)
	assert.True(t, f.HasArtwork(item))

	item.PosterPath = ""
	item.BackdropPath = "/backdrop.jpg"
	assert.False(t, f.HasArtwork(item), "backdrop alone is not enough")
}

func TestFilter_PassesSafety(t *testing.T) {
	f := Default()

	tests := []struct {
		name     string
		title    string
		overview string
		want     bool
	}{
		{"clean", "Spirited Away", "A girl enters the spirit world.", true},
		{"banned in title", "EROTIC Tales", "", false},
		{"banned in overview", "Night", "Contains nudity.", false},
		{"multi word term", "Club", "Adults Only screening", false},
		{"substring limitation", "Essex Boys", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := goodItem(1)
			item.Title = tt.title
			item.Overview = tt.overview
			assert.Equal(t, tt.want, f.PassesSafety(item))
		})
	}
}

func TestFilter_MeetsQualityBar(t *testing.T) {
	f := Default()

	tests := []struct {
		name  string
		count int
		avg   float64
		want  bool
	}{
		{"passes", 201, 6.0, true},
		{"count must be strictly greater", 200, 9.0, false},
		{"average below bar", 5000, 5.9, false},
		{"no votes", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := goodItem(1)
			item.VoteCount = tt.count
			item.VoteAverage = tt.avg
			assert.Equal(t, tt.want, f.MeetsQualityBar(item))
		})
	}
}

func TestFilter_CustomOptions(t *testing.T) {
	f := New(Options{
		BannedTerms:    []string{"  Zombie "},
		MinVoteCount:   10,
		MinVoteAverage: 8,
	})

	item := goodItem(1)
	item.Title = "zombie land"
	assert.False(t, f.PassesSafety(item))

	item.Title = "Sex Education"
	assert.True(t, f.PassesSafety(item), "custom list replaces the defaults")

	item.VoteCount = 11
	item.VoteAverage = 7.9
	assert.False(t, f.MeetsQualityBar(item))

	noSafety := New(Options{BannedTerms: []string{}})
	assert.True(t, noSafety.PassesSafety(item))
}

func TestFilter_ApplyPreservesOrder(t *testing.T) {
	f := Default()
	items := []domain.CatalogItem{goodItem(3), goodItem(1), goodItem(2)}
	items[1].VoteCount = 5

	got := f.Apply(items)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Len(t, items, 3, "input must not be modified")
}

func TestFilter_ApplyIsIdempotent(t *testing.T) {
	f := Default()
	var items []domain.CatalogItem
	for i := 1; i <= 30; i++ {
		item := goodItem(i)
		switch i % 4 {
		case 0:
			item.PosterPath = ""
		case 1:
			item.Overview = "a story of desire"
		case 2:
			item.VoteAverage = 4
		}
		items = append(items, item)
	}

	once := f.Apply(items)
	twice := f.Apply(once)
	assert.Equal(t, once, twice)
}

func TestFilter_GhibliFirstPage(t *testing.T) {
	f := Default()
	var page []domain.CatalogItem
	for i := 1; i <= 20; i++ {
		page = append(page, goodItem(i))
	}
	page[4].PosterPath = ""
	page[11].VoteCount = 50

	got := f.Apply(page)
	assert.Len(t, got, 18)
	for _, item := range got {
		assert.NotEqual(t, 5, item.ID)
		assert.NotEqual(t, 12, item.ID)
	}
}
