// Package filter applies the safety and quality bar to catalog items before
// they are shown.
package filter

import (
	"strings"

	"github.com/mmcdole/moodreel/internal/domain"
)

// Defaults for the quality bar
const (
	DefaultMinVoteCount   = 200
	DefaultMinVoteAverage = 6.0
)

// DefaultBannedTerms is the stock safety list
func DefaultBannedTerms() []string {
	return []string{
		"erotic",
		"erotik",
		"porno",
		"porn",
		"fetish",
		"sensual",
		"sex",
		"naked",
		"nudity",
		"adults only",
		"desire",
	}
}

// Filter is a pure predicate pipeline over catalog items.
//
// Safety matching is a plain substring test on the lower-cased title and
// overview, so "sex" also rejects "Essex". This is a known limitation.
type Filter struct {
	bannedTerms    []string
	minVoteCount   int
	minVoteAverage float64
}

// Options configures a Filter. Zero values fall back to the defaults; a nil
// BannedTerms uses DefaultBannedTerms while an empty non-nil slice disables
// the safety check.
type Options struct {
	BannedTerms    []string
	MinVoteCount   int
	MinVoteAverage float64
}

// New creates a filter from options
func New(opts Options) *Filter {
	terms := opts.BannedTerms
	if terms == nil {
		terms = DefaultBannedTerms()
	}

	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}

	minCount := opts.MinVoteCount
	if minCount <= 0 {
		minCount = DefaultMinVoteCount
	}
	minAvg := opts.MinVoteAverage
	if minAvg <= 0 {
		minAvg = DefaultMinVoteAverage
	}

	return &Filter{
		bannedTerms:    lowered,
		minVoteCount:   minCount,
		minVoteAverage: minAvg,
	}
}

// Default returns a filter with the stock configuration
func Default() *Filter {
	return New(Options{})
}

// HasArtwork requires a poster
func (f *Filter) HasArtwork(item domain.CatalogItem) bool {
	return item.HasPoster()
}

// PassesSafety rejects items whose title or overview contains a banned term
func (f *Filter) PassesSafety(item domain.CatalogItem) bool {
	title := strings.ToLower(item.Title)
	overview := strings.ToLower(item.Overview)
	for _, term := range f.bannedTerms {
		if strings.Contains(title, term) || strings.Contains(overview, term) {
			return false
		}
	}
	return true
}

// MeetsQualityBar requires enough votes and a decent average
func (f *Filter) MeetsQualityBar(item domain.CatalogItem) bool {
	return item.VoteCount > f.minVoteCount && item.VoteAverage >= f.minVoteAverage
}

// Allow evaluates all predicates, cheapest first
func (f *Filter) Allow(item domain.CatalogItem) bool {
	return f.HasArtwork(item) && f.PassesSafety(item) && f.MeetsQualityBar(item)
}

// Apply returns the allowed items in their original order.
// The input slice is not modified.
func (f *Filter) Apply(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if f.Allow(item) {
			out = append(out, item)
		}
	}
	return out
}
