// Package slug turns free text into identifiers that are safe to use as a
// single path segment.
package slug

import (
	"regexp"
	"strings"
)

// Unknown is the sentinel returned for empty input or input with no usable characters.
const Unknown = "unknown"

// MaxLen caps the length of a normalized slug.
const MaxLen = 64

var (
	reSeparators = regexp.MustCompile(`[\s\p{Z}/\\]+`)
	reDisallowed = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
)

// Normalize returns a filesystem-safe identifier for text. It never fails and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return Unknown
	}
	s = reSeparators.ReplaceAllString(s, "_")
	s = reDisallowed.ReplaceAllString(s, "")
	if len(s) > MaxLen {
		s = s[:MaxLen]
	}
	if s == "" {
		return Unknown
	}
	return s
}
