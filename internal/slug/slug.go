package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonWordRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Make normalizes a human-readable name into a URL-safe slug: lowercase,
// trimmed, non-alphanumeric runs collapsed to a single hyphen, no leading or
// trailing hyphens. Make is idempotent: Make(Make(x)) == Make(x).
//
// Examples:
//   - "Espresso Drinks" → "espresso-drinks"
//   - "  Cold   Brew!! " → "cold-brew"
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWordRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithFallback normalizes name and substitutes a timestamp-derived slug when
// normalization yields nothing (e.g. the input was all punctuation).
func WithFallback(name string) string {
	if s := Make(name); s != "" {
		return s
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
