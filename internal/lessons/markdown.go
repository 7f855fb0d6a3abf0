package lessons

import (
	"fmt"
	"strings"
)

// Markdown renders the lesson as a Markdown document.
func Markdown(l Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d. %s\n\n", l.ID, l.Title)
	fmt.Fprintf(&b, "*%s* · %s\n\n", l.Difficulty, l.Duration)
	b.WriteString(l.Description)
	b.WriteString("\n\n## Topics\n\n")
	for _, t := range l.Topics {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	if l.Exercise.Prompt != "" {
		b.WriteString("\n## Practice\n\n")
		b.WriteString(l.Exercise.Prompt)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Try it with `academy eval %s \"your answer\"`.\n", l.Exercise.RuleSetID)
	}
	return b.String()
}
