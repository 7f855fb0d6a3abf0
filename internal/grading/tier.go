package grading

// Level is one of the four ordered feedback levels shared by every rule set.
type Level string

const (
	LevelExcellent    Level = "excellent"    // Exact or excellent match
	LevelGood         Level = "good"         // Mostly correct
	LevelPartial      Level = "partial"      // On the right track
	LevelInsufficient Level = "insufficient" // Needs more detail
)

// AllLevels returns the levels from highest to lowest.
func AllLevels() []Level {
	return []Level{
		LevelExcellent,
		LevelGood,
		LevelPartial,
		LevelInsufficient,
	}
}

// Rank orders levels: 3 for excellent down to 0 for insufficient.
// Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelExcellent:
		return 3
	case LevelGood:
		return 2
	case LevelPartial:
		return 1
	case LevelInsufficient:
		return 0
	default:
		return -1
	}
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// Label returns the display label for a level.
func (l Level) Label() string {
	switch l {
	case LevelExcellent:
		return "Excellent"
	case LevelGood:
		return "Good"
	case LevelPartial:
		return "On the right track"
	case LevelInsufficient:
		return "Needs more detail"
	default:
		return "Unknown"
	}
}

// Icon returns the display icon for a level.
func (l Level) Icon() string {
	switch l {
	case LevelExcellent:
		return "★"
	case LevelGood:
		return "✓"
	case LevelPartial:
		return "◐"
	case LevelInsufficient:
		return "✗"
	default:
		return "?"
	}
}

// SpecialCase is a combination of criteria that selects a tier regardless
// of the numeric score.
type SpecialCase struct {
	// AllOf lists criterion IDs that must all be satisfied.
	AllOf []string

	// NoneOf lists criterion IDs that must all be unsatisfied.
	NoneOf []string
}

func (s *SpecialCase) holds(satisfied map[string]bool) bool {
	for _, id := range s.AllOf {
		if !satisfied[id] {
			return false
		}
	}
	for _, id := range s.NoneOf {
		if satisfied[id] {
			return false
		}
	}
	return true
}

// TierEntry is one row of a rule set's tier table.
type TierEntry struct {
	// ID names the tier, e.g. "exact" or "missing-closing-tag".
	ID string

	// Level is the feedback level the tier maps to.
	Level Level

	// MinScore is the inclusive score threshold. Ignored for special cases.
	MinScore int

	// When makes this a special-case entry. Nil for threshold entries.
	When *SpecialCase

	// Message is a text/template rendered into the verdict message.
	// Available fields: .Score, .MaxScore, .RuleSet.
	Message string
}

// IsSpecial reports whether the entry is a special-case entry.
func (t TierEntry) IsSpecial() bool {
	return t.When != nil
}
