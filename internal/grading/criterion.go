package grading

import "strings"

// MatchMode controls how a criterion combines its patterns.
type MatchMode string

const (
	// MatchAny is satisfied when the text contains any of the patterns.
	// A single-pattern MatchAny criterion is a plain substring check.
	MatchAny MatchMode = "any"

	// MatchAll is satisfied only when the text contains every pattern,
	// e.g. "display" and "none" together.
	MatchAll MatchMode = "all"
)

// Criterion is one atomic check for the presence of literal text patterns.
type Criterion struct {
	// ID identifies the criterion within its rule set.
	ID string

	// Description says what the criterion looks for, for diagnostics.
	Description string

	// Hint is shown to the learner when the criterion is not satisfied.
	Hint string

	// Mode is MatchAny or MatchAll. Empty means MatchAny.
	Mode MatchMode

	// Patterns are literal substrings. They are normalized with Normalize
	// when the owning rule set is built.
	Patterns []string
}

// Contains returns a criterion satisfied by a single literal substring.
func Contains(id, pattern string) Criterion {
	return Criterion{ID: id, Mode: MatchAny, Patterns: []string{pattern}}
}

// AnyOf returns a criterion satisfied by any of the given synonyms.
func AnyOf(id string, patterns ...string) Criterion {
	return Criterion{ID: id, Mode: MatchAny, Patterns: patterns}
}

// AllOf returns a criterion satisfied only when all patterns co-occur.
func AllOf(id string, patterns ...string) Criterion {
	return Criterion{ID: id, Mode: MatchAll, Patterns: patterns}
}

// Matches reports whether normalized text satisfies the criterion.
// No match is a normal false, never an error.
func (c Criterion) Matches(normalized string) bool {
	if len(c.Patterns) == 0 {
		return false
	}
	if c.Mode == MatchAll {
		for _, p := range c.Patterns {
			if !strings.Contains(normalized, p) {
				return false
			}
		}
		return true
	}
	for _, p := range c.Patterns {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}
