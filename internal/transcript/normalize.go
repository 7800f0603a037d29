// Package transcript prepares raw speech-recognition text for decoding.
package transcript

import (
	"strings"
	"unicode"
)

// Normalize lower-cases the transcript, turns hyphens and other punctuation
// into spaces, collapses whitespace runs, and trims the result. Letters and
// digits pass through unchanged. Empty input yields an empty string.
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lowered))
	space := true // collapse leading separators
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Fields tokenizes a normalized transcript on whitespace.
func Fields(normalized string) []string {
	return strings.Fields(normalized)
}
