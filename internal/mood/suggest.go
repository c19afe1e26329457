package mood

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/moodreel/internal/domain"
)

// maxSuggestions caps how many moods Suggest returns
const maxSuggestions = 3

// Suggest ranks moods whose name or keywords fuzzily match the word being
// typed. It only previews; ResolveSelector decides the final mood.
func Suggest(text string) []domain.MoodSelector {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	word := fields[len(fields)-1]

	var targets []string
	var owners []domain.MoodSelector
	for _, entry := range keywordTable {
		targets = append(targets, string(entry.mood))
		owners = append(owners, entry.mood)
		for _, kw := range entry.keywords {
			targets = append(targets, kw)
			owners = append(owners, entry.mood)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(word, targets)
	sort.Stable(ranks)

	seen := make(map[domain.MoodSelector]bool)
	var out []domain.MoodSelector
	for _, r := range ranks {
		m := owners[r.OriginalIndex]
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
