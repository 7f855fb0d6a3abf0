package lessons

import (
	"fmt"
	"strings"

	"github.com/abhisek/academy/internal/grading"
)

// Validate checks the catalog against the engine that grades it.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(engine *grading.Engine) error {
	return validateLessons(catalog, engine)
}

func validateLessons(ls []Lesson, engine *grading.Engine) error {
	var errs []string

	seen := make(map[int]bool, len(ls))
	for _, l := range ls {
		if seen[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %d", l.ID))
		}
		seen[l.ID] = true

		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, fmt.Sprintf("lesson %d has no title", l.ID))
		}
		if !l.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("lesson %d has unknown difficulty %q", l.ID, l.Difficulty))
		}
		if len(l.Topics) == 0 {
			errs = append(errs, fmt.Sprintf("lesson %d has no topics", l.ID))
		}
		if l.Exercise.MaxLength <= 0 {
			errs = append(errs, fmt.Sprintf("lesson %d exercise has non-positive max length", l.ID))
		}
		if _, ok := engine.RuleSet(l.Exercise.RuleSetID); !ok {
			errs = append(errs, fmt.Sprintf("lesson %d references unknown rule set %q", l.ID, l.Exercise.RuleSetID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("lesson catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
