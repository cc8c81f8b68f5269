package convert

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" hint.
const maxSuggestDistance = 2

// suggest returns the candidate closest to value, or "" when none is
// within maxSuggestDistance. Ties go to the alphabetically first
// candidate so the result is deterministic.
func suggest(value string, candidates []string) string {
	if value == "" {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range sorted {
		if d := levenshtein.ComputeDistance(value, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// tokenSet is a case-folded set of accepted tokens.
type tokenSet map[string]struct{}

func newTokenSet(tokens ...string) tokenSet {
	s := make(tokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func (s tokenSet) has(t string) bool {
	_, ok := s[t]
	return ok
}

func (s tokenSet) tokens() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}
