package exercise

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/grading"
	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/screens/common"
	"github.com/abhisek/academy/internal/store"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
)

// Phase is the exercise screen's interaction state.
type Phase int

const (
	PhaseEditing   Phase = iota // typing an answer
	PhaseReviewing              // verdict shown
)

// completionSavedMsg reports the result of marking the lesson complete.
type completionSavedMsg struct {
	added bool
	err   error
}

// ExerciseScreen shows one lesson's practice question and grades the answer.
type ExerciseScreen struct {
	lesson    lessons.Lesson
	engine    *grading.Engine
	repo      store.ProgressRepo
	input     components.TextInput
	phase     Phase
	verdict   *grading.Verdict
	hints     []string
	completed bool
	status    string
	errMsg    string
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)

// New creates an ExerciseScreen. repo may be nil, in which case lessons
// cannot be marked complete. completed is the initial state; Init reloads
// it from repo.
func New(lesson lessons.Lesson, engine *grading.Engine, repo store.ProgressRepo, completed bool) *ExerciseScreen {
	return &ExerciseScreen{
		lesson:    lesson,
		engine:    engine,
		repo:      repo,
		completed: completed,
		input:     components.NewTextInput(lesson.Exercise.Placeholder, lesson.Exercise.MaxLength),
	}
}

func (s *ExerciseScreen) Init() tea.Cmd {
	if s.repo == nil {
		return s.input.Init()
	}
	return tea.Batch(s.input.Init(), common.LoadCompleted(s.repo))
}

func (s *ExerciseScreen) Title() string {
	return fmt.Sprintf("Lesson %d", s.lesson.ID)
}

func (s *ExerciseScreen) KeyHints() []layout.KeyHint {
	if s.phase == PhaseReviewing {
		hints := []layout.KeyHint{
			{Key: "R", Description: "Revise"},
		}
		if !s.completed {
			hints = append(hints, layout.KeyHint{Key: "M", Description: "Mark complete"})
		}
		if _, err := lessons.Get(s.lesson.ID + 1); err == nil {
			hints = append(hints, layout.KeyHint{Key: "N", Description: "Next lesson"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check answer"},
		{Key: "Esc", Description: "Back"},
	}
}

// Phase returns the current interaction state.
func (s *ExerciseScreen) Phase() Phase {
	return s.phase
}

// Verdict returns the last verdict, or nil before the first evaluation.
func (s *ExerciseScreen) Verdict() *grading.Verdict {
	return s.verdict
}

func (s *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case completionSavedMsg:
		return s.handleCompletionSaved(msg)
	case common.CompletedMsg:
		if msg.Err == nil {
			s.completed = msg.Set()[s.lesson.ID]
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == PhaseEditing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExerciseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == PhaseEditing {
		if key == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "r", "R":
		s.phase = PhaseEditing
		s.status = ""
		return s, s.input.Focus()
	case "m", "M":
		return s, s.markComplete()
	case "n", "N":
		next, err := lessons.Get(s.lesson.ID + 1)
		if err != nil {
			return s, nil
		}
		nextScreen := New(next, s.engine, s.repo, false)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: nextScreen} }
	}
	return s, nil
}

// submit grades the current answer. Empty answers are graded too; they
// resolve to the rule set's lowest tier.
func (s *ExerciseScreen) submit() (screen.Screen, tea.Cmd) {
	v, err := s.engine.Evaluate(s.lesson.Exercise.RuleSetID, s.input.Value())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.verdict = &v
	s.hints = nil
	if rs, ok := s.engine.RuleSet(v.RuleSetID); ok {
		s.hints = rs.Hints(v.Unsatisfied)
	}
	s.phase = PhaseReviewing
	s.input.Blur()
	return s, nil
}

func (s *ExerciseScreen) markComplete() tea.Cmd {
	if s.completed {
		s.status = "Lesson already completed."
		return nil
	}
	if s.repo == nil {
		s.status = "Progress tracking is unavailable."
		return nil
	}
	repo, id := s.repo, s.lesson.ID
	return func() tea.Msg {
		added, err := repo.MarkComplete(context.Background(), id)
		return completionSavedMsg{added: added, err: err}
	}
}

func (s *ExerciseScreen) handleCompletionSaved(msg completionSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.status = "Could not save progress: " + msg.err.Error()
		return s, nil
	}
	s.completed = true
	if msg.added {
		s.status = "Lesson marked complete!"
	} else {
		s.status = "Lesson already completed."
	}
	// Reload so the header counter picks up the new completion.
	return s, common.LoadCompleted(s.repo)
}
