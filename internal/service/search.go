package service

import "strings"

// ParseSearchTerms splits a comma-separated query into normalized search
// terms: whitespace trimmed, empty terms dropped, lowercased, deduplicated.
func ParseSearchTerms(q string) []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(q, ",") {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// MatchesIngredients reports whether the lowercased ingredient-name set is a
// superset of terms. Matching is exact-token equality after normalization,
// not substring search. Terms are assumed already normalized by
// ParseSearchTerms.
func MatchesIngredients(terms []string, ingredientNames []string) bool {
	have := make(map[string]struct{}, len(ingredientNames))
	for _, name := range ingredientNames {
		have[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	for _, term := range terms {
		if _, ok := have[term]; !ok {
			return false
		}
	}
	return true
}
