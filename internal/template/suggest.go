package template

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance is the largest edit distance still considered a near miss.
const maxSuggestDistance = 2

// Suggest returns the candidates within maxSuggestDistance edits of key,
// sorted alphabetically. Matching is case-insensitive.
func Suggest(key string, candidates []string) []string {
	target := strings.ToLower(key)

	var matches []string
	for _, candidate := range candidates {
		if levenshtein.Distance(target, strings.ToLower(candidate), nil) <= maxSuggestDistance {
			matches = append(matches, candidate)
		}
	}
	sort.Strings(matches)
	return matches
}
