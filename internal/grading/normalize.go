package grading

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize canonicalizes raw learner input for matching.
//
// Rules:
//   - All characters are lower-cased (Unicode-aware)
//   - Runs of whitespace, including newlines and tabs, collapse to one space
//   - Leading and trailing whitespace is trimmed
//
// Normalize never fails; an empty or whitespace-only input yields "".
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser keeps internal state and must not be shared across goroutines.
	lower := cases.Lower(language.Und).String(text)
	return strings.Join(strings.Fields(lower), " ")
}
