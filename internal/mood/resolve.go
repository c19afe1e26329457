package mood

import (
	"strings"

	"github.com/mmcdole/moodreel/internal/domain"
)

type keywordEntry struct {
	mood     domain.MoodSelector
	keywords []string
}

// keywordTable is scanned in order; the first mood with a matching keyword wins.
var keywordTable = []keywordEntry{
	{domain.MoodCozy, []string{"cozy", "warm", "soft", "comforting"}},
	{domain.MoodRomantic, []string{"romantic", "love", "date", "crush"}},
	{domain.MoodWholesome, []string{"wholesome", "cute", "uplifting", "sweet"}},
	{domain.MoodRainy, []string{"rainy", "sad", "moody", "melancholy"}},
	{domain.MoodNostalgic, []string{"nostalgic", "memory", "childhood", "retro"}},
	{domain.MoodA24, []string{"a24"}},
	{domain.MoodGhibli, []string{"ghibli", "studio ghibli"}},
	{domain.MoodThriller, []string{"thriller", "scary", "crime", "mystery"}},
	{domain.MoodComfort, []string{"comfort", "feel-good", "safe"}},
}

// ResolveSelector maps free text to a mood using case-insensitive substring
// matching against the keyword table. Empty or unmatched text resolves to
// domain.DefaultMood.
func ResolveSelector(text string) domain.MoodSelector {
	value := strings.ToLower(strings.TrimSpace(text))
	if value == "" {
		return domain.DefaultMood
	}

	for _, entry := range keywordTable {
		for _, word := range entry.keywords {
			if strings.Contains(value, word) {
				return entry.mood
			}
		}
	}

	return domain.DefaultMood
}

// Keywords returns a copy of the keywords for a mood
func Keywords(m domain.MoodSelector) []string {
	for _, entry := range keywordTable {
		if entry.mood == m {
			out := make([]string, len(entry.keywords))
			copy(out, entry.keywords)
			return out
		}
	}
	return nil
}
