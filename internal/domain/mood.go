package domain

// MoodSelector is a curated viewing vibe that maps to catalog query criteria
type MoodSelector string

const (
	MoodCozy      MoodSelector = "cozy"
	MoodRomantic  MoodSelector = "romantic"
	MoodWholesome MoodSelector = "wholesome"
	MoodRainy     MoodSelector = "rainy"
	MoodNostalgic MoodSelector = "nostalgic"
	MoodA24       MoodSelector = "a24"
	MoodGhibli    MoodSelector = "ghibli"
	MoodThriller  MoodSelector = "thriller"
	MoodComfort   MoodSelector = "comfort"
)

// DefaultMood is used whenever a selector cannot be resolved
const DefaultMood = MoodComfort

// AllMoods returns every selector in table order
func AllMoods() []MoodSelector {
	return []MoodSelector{
		MoodCozy,
		MoodRomantic,
		MoodWholesome,
		MoodRainy,
		MoodNostalgic,
		MoodA24,
		MoodGhibli,
		MoodThriller,
		MoodComfort,
	}
}

// IsValid reports whether m is one of the enumerated selectors
func (m MoodSelector) IsValid() bool {
	for _, known := range AllMoods() {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood converts a raw string into a selector, falling back to DefaultMood
func ParseMood(s string) MoodSelector {
	m := MoodSelector(s)
	if m.IsValid() {
		return m
	}
	return DefaultMood
}

// Label returns the display name for the mood
func (m MoodSelector) Label() string {
	switch m {
	case MoodCozy:
		return "Cozy"
	case MoodRomantic:
		return "Romantic"
	case MoodWholesome:
		return "Wholesome"
	case MoodRainy:
		return "Rainy Day"
	case MoodNostalgic:
		return "Nostalgic"
	case MoodA24:
		return "A24"
	case MoodGhibli:
		return "Ghibli"
	case MoodThriller:
		return "Thriller"
	case MoodComfort:
		return "Comfort"
	default:
		return string(m)
	}
}

// QueryCriteria is the immutable set of catalog constraints for a mood.
// Zero CompanyID and empty ReleaseDateLTE mean "not set".
type QueryCriteria struct {
	genreIDs       []int
	CompanyID      int
	ReleaseDateLTE string // ISO date, e.g. "2005-01-01"
}

// NewQueryCriteria builds criteria, copying the genre slice
func NewQueryCriteria(genreIDs []int, companyID int, releaseDateLTE string) QueryCriteria {
	genres := make([]int, len(genreIDs))
	copy(genres, genreIDs)
	return QueryCriteria{
		genreIDs:       genres,
		CompanyID:      companyID,
		ReleaseDateLTE: releaseDateLTE,
	}
}

// Genres returns a copy of the genre ids
func (q QueryCriteria) Genres() []int {
	out := make([]int, len(q.genreIDs))
	copy(out, q.genreIDs)
	return out
}

// IncludeAdult is always false; adult titles are never requested.
func (q QueryCriteria) IncludeAdult() bool { return false }

// IsEmpty returns true if no constraint is set
func (q QueryCriteria) IsEmpty() bool {
	return len(q.genreIDs) == 0 && q.CompanyID == 0 && q.ReleaseDateLTE == ""
}

// SortOrder is passed through verbatim to the catalog's sort_by parameter
type SortOrder string

const (
	SortPopularity   SortOrder = "popularity.desc"
	SortVoteAverage  SortOrder = "vote_average.desc"
	SortNewest       SortOrder = "release_date.desc"
	SortOldest       SortOrder = "release_date.asc"
	SortMostReviewed SortOrder = "vote_count.desc"
)

// DefaultSortOrder matches the catalog's own default ordering
const DefaultSortOrder = SortPopularity

// AllSortOrders returns the supported sort orders in menu order
func AllSortOrders() []SortOrder {
	return []SortOrder{SortPopularity, SortVoteAverage, SortNewest, SortOldest, SortMostReviewed}
}

// IsValid reports whether o is a supported sort order
func (o SortOrder) IsValid() bool {
	for _, known := range AllSortOrders() {
		if o == known {
			return true
		}
	}
	return false
}

// ParseSortOrder converts a raw string into a sort order, falling back to DefaultSortOrder
func ParseSortOrder(s string) SortOrder {
	if o := SortOrder(s); o.IsValid() {
		return o
	}
	return DefaultSortOrder
}

// Label returns the display name for the sort order
func (o SortOrder) Label() string {
	switch o {
	case SortPopularity:
		return "Most Popular"
	case SortVoteAverage:
		return "Highest Rated"
	case SortNewest:
		return "Newest"
	case SortOldest:
		return "Oldest"
	case SortMostReviewed:
		return "Most Reviewed"
	default:
		return string(o)
	}
}
