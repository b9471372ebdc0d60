package core

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Slugify lowercases `s` and collapses every whitespace run into a single dash.
func Slugify(s string) string {
	return whitespaceRegex.ReplaceAllString(CleanString(s, true /* lower */), "-")
}
