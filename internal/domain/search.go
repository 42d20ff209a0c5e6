package domain

import "strings"

// normalize trims, lowercases and unifies line endings so that searches
// ignore case and stray whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Matches reports whether query occurs in any of the item's searchable
// fields. An empty query matches everything.
func (it Item) Matches(query string) bool {
	q := normalize(query)
	if q == "" {
		return true
	}
	if it.Content == nil {
		return false
	}
	for _, field := range it.Content.searchable() {
		if strings.Contains(normalize(field), q) {
			return true
		}
	}
	return false
}
