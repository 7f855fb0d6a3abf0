package exercise

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/grading"
	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/ui/theme"
)

// levelStyle maps verdict levels to their display color.
func levelStyle(l grading.Level) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch l {
	case grading.LevelExcellent:
		return base.Foreground(theme.Success)
	case grading.LevelGood:
		return base.Foreground(theme.Secondary)
	case grading.LevelPartial:
		return base.Foreground(theme.Accent)
	default:
		return base.Foreground(theme.Error)
	}
}

func difficultyStyle(d lessons.Difficulty) lipgloss.Style {
	switch d {
	case lessons.Beginner:
		return theme.Beginner
	case lessons.Intermediate:
		return theme.Intermediate
	default:
		return theme.Advanced
	}
}

func (s *ExerciseScreen) View(width, height int) string {
	cw := min(width-4, 76)
	wrap := lipgloss.NewStyle().Width(cw)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.lesson.Title)
	if s.completed {
		title += "  " + theme.Done.Render("✓ completed")
	}
	b.WriteString(title + "\n")
	b.WriteString(difficultyStyle(s.lesson.Difficulty).Render(string(s.lesson.Difficulty)) +
		dim.Render(" · "+s.lesson.Duration) + "\n")
	b.WriteString(dim.Render(strings.Repeat("─", cw)) + "\n\n")

	b.WriteString(wrap.Foreground(theme.Text).Render(s.lesson.Exercise.Prompt) + "\n\n")
	b.WriteString(s.input.View() + "\n")

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Failure.Render(s.errMsg) + "\n")
	}

	if s.phase == PhaseReviewing && s.verdict != nil {
		b.WriteString("\n" + s.renderVerdict(cw) + "\n")
	}

	if s.status != "" {
		b.WriteString("\n" + theme.Hint.Render(s.status) + "\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}

func (s *ExerciseScreen) renderVerdict(cw int) string {
	v := s.verdict
	style := levelStyle(v.Level)

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%s %s", v.Level.Icon(), v.Level.Label())))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("   %d/%d criteria", v.Score, v.MaxScore)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(v.Message))

	if len(s.hints) > 0 {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("To improve:"))
		for _, h := range s.hints {
			b.WriteString("\n" + theme.Hint.Render("  • "+h))
		}
	}

	return theme.Card.
		BorderForeground(style.GetForeground()).
		Width(cw).
		Render(b.String())
}
