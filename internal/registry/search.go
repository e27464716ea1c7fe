package registry

import "strings"

// matchesQuery reports whether e matches the lowercased query q. The
// identifier is deliberately not searched so that a query only hits what a
// reader sees in the rendered text.
func matchesQuery(e *Example, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	return anyContains(e.Concepts, q) || anyContains(e.Tags, q)
}

// MatchesAnyTag reports whether any of tags equals any of filter,
// ignoring case. Concepts count as tags.
func MatchesAnyTag(e *Example, filter []string) bool {
	for _, f := range filter {
		if containsFold(e.Tags, f) || containsFold(e.Concepts, f) {
			return true
		}
	}
	return false
}

func anyContains(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
