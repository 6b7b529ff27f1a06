package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestRecipients ranks known recipients against the partially typed
// input, best match first, capped at limit. Used for the email field's
// autocomplete hint; an empty input suggests nothing.
func SuggestRecipients(known []string, input string, limit int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || len(known) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(input, known)
	sort.Sort(ranks)

	suggestions := make([]string, 0, limit)
	for _, r := range ranks {
		if limit > 0 && len(suggestions) >= limit {
			break
		}
		if r.Target == input {
			continue // Already fully typed
		}
		suggestions = append(suggestions, r.Target)
	}
	return suggestions
}
