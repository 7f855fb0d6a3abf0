package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/screens/common"
	"github.com/abhisek/academy/internal/store"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/theme"
)

// ProgressScreen shows how many lessons are complete.
type ProgressScreen struct {
	repo      store.ProgressRepo
	completed map[int]bool
	summary   lessons.Progress
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(repo store.ProgressRepo) *ProgressScreen {
	return &ProgressScreen{
		repo:      repo,
		completed: map[int]bool{},
		summary:   lessons.Summarize(0, lessons.Count()),
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return common.LoadCompleted(s.repo)
}

func (s *ProgressScreen) Title() string {
	return "Your Progress"
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(common.CompletedMsg); ok {
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = "Could not load progress: " + msg.Err.Error()
			return s, nil
		}
		s.completed = msg.Set()
		n := 0
		for _, l := range lessons.All() {
			if s.completed[l.ID] {
				n++
			}
		}
		s.summary = lessons.Summarize(n, lessons.Count())
	}
	return s, nil
}

// Summary returns the progress currently displayed.
func (s *ProgressScreen) Summary() lessons.Progress {
	return s.summary
}

func (s *ProgressScreen) View(width, height int) string {
	cw := min(width-4, 70)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Track Your Progress"))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.Failure.Render(s.errMsg))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}
	if !s.loaded {
		b.WriteString(dim.Render("Loading..."))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	p := s.summary
	b.WriteString(components.NewProgressBar("Course Progress", p.Fraction(), true, cw).View())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n\n",
		theme.Done.Render(fmt.Sprint(p.Completed)), dim.Render("completed"),
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprint(p.Remaining)), dim.Render("remaining"),
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d%%", p.Percent)), dim.Render("complete"),
	))

	for _, l := range lessons.All() {
		if s.completed[l.ID] {
			b.WriteString(theme.Done.Render("  ✓ ") + theme.Body.Render(l.Title) + "\n")
		} else {
			b.WriteString(dim.Render("  ○ "+l.Title) + "\n")
		}
	}
	b.WriteString("\n")

	if p.Done() {
		b.WriteString(theme.Done.Render("Congratulations! You've completed all lessons!"))
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Keep going! You're %d%% of the way there.", p.Percent)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
