// Package mood maps mood selectors to catalog query criteria and resolves
// free text typed by the user into a selector.
package mood

import "github.com/mmcdole/moodreel/internal/domain"

// TMDB genre ids
const (
	genreAnimation = 16
	genreComedy    = 35
	genreCrime     = 80
	genreDrama     = 18
	genreFamily    = 10751
	genreMystery   = 9648
	genreRomance   = 10749
	genreThriller  = 53
)

// TMDB company ids
const (
	companyA24          = 41077
	companyStudioGhibli = 10342
)

var criteriaTable = map[domain.MoodSelector]domain.QueryCriteria{
	domain.MoodCozy:      domain.NewQueryCriteria([]int{genreAnimation, genreRomance, genreComedy}, 0, ""),
	domain.MoodRomantic:  domain.NewQueryCriteria([]int{genreRomance}, 0, ""),
	domain.MoodWholesome: domain.NewQueryCriteria([]int{genreAnimation, genreFamily}, 0, ""),
	domain.MoodRainy:     domain.NewQueryCriteria([]int{genreDrama, genreMystery}, 0, ""),
	domain.MoodNostalgic: domain.NewQueryCriteria(nil, 0, "2005-01-01"),
	domain.MoodA24:       domain.NewQueryCriteria(nil, companyA24, ""),
	domain.MoodGhibli:    domain.NewQueryCriteria(nil, companyStudioGhibli, ""),
	domain.MoodThriller:  domain.NewQueryCriteria([]int{genreThriller, genreCrime}, 0, ""),
	domain.MoodComfort:   domain.NewQueryCriteria([]int{genreComedy, genreFamily}, 0, ""),
}

// CriteriaFor returns the query criteria for a selector.
// Unknown selectors get the criteria of domain.DefaultMood.
func CriteriaFor(m domain.MoodSelector) domain.QueryCriteria {
	if c, ok := criteriaTable[m]; ok {
		return c
	}
	return criteriaTable[domain.DefaultMood]
}
