package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NormalizeHora pads an "HH:MM" time to the "HH:MM:SS" format the backend
// expects, leaving already-complete values untouched.
func NormalizeHora(s string) string {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}
