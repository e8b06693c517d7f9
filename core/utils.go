package core

import "strings"

// CleanString trims surrounding whitespace from user-entered text (names,
// titles, usernames) and optionally lowercases it for case-folded lookups.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
