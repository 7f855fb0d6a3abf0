package lessonlist

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/grading"
	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/screens/common"
	"github.com/abhisek/academy/internal/screens/exercise"
	"github.com/abhisek/academy/internal/store"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

// LessonListScreen lists the tutorial catalog with completion marks.
type LessonListScreen struct {
	engine    *grading.Engine
	repo      store.ProgressRepo
	lessons   []lessons.Lesson
	completed map[int]bool
	menu      components.Menu
	errMsg    string
}

var _ screen.Screen = (*LessonListScreen)(nil)
var _ screen.Resumer = (*LessonListScreen)(nil)
var _ screen.KeyHintProvider = (*LessonListScreen)(nil)

// New creates a LessonListScreen.
func New(engine *grading.Engine, repo store.ProgressRepo) *LessonListScreen {
	s := &LessonListScreen{
		engine:    engine,
		repo:      repo,
		lessons:   lessons.All(),
		completed: map[int]bool{},
	}
	s.rebuildMenu()
	return s
}

func (s *LessonListScreen) Init() tea.Cmd {
	return common.LoadCompleted(s.repo)
}

// Resume reloads completion marks after an exercise is closed.
func (s *LessonListScreen) Resume() tea.Cmd {
	return common.LoadCompleted(s.repo)
}

func (s *LessonListScreen) Title() string {
	return "Lessons"
}

func (s *LessonListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(common.CompletedMsg); ok {
		if msg.Err != nil {
			s.errMsg = "Could not load progress: " + msg.Err.Error()
		} else {
			s.errMsg = ""
		}
		s.completed = msg.Set()
		selected := s.menu.Selected
		s.rebuildMenu()
		s.menu.Selected = selected
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonListScreen) rebuildMenu() {
	items := make([]components.MenuItem, len(s.lessons))
	for i, l := range s.lessons {
		mark := "○"
		if s.completed[l.ID] {
			mark = "✓"
		}
		done := s.completed[l.ID]
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", l.ID, l.Title),
			Detail: fmt.Sprintf("%s · %s", l.Difficulty, l.Duration),
			Mark:   mark,
			Action: func() tea.Cmd {
				next := exercise.New(l, s.engine, s.repo, done)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *LessonListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width - 4).Render("Interactive Lessons"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width - 4).Render("Step-by-step tutorials designed to take you from beginner to AI programming expert."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if sel := s.menu.Selected; sel >= 0 && sel < len(s.lessons) {
		l := s.lessons[sel]
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 76)).
			Render(l.Description))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Topics: " + strings.Join(l.Topics, ", ")))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Failure.Render(s.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
