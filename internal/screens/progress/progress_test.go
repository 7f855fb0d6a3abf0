package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/screens/common"
	"github.com/abhisek/academy/internal/store"
)

type mockProgressRepo struct {
	completed []int
}

func (m *mockProgressRepo) MarkComplete(context.Context, int) (bool, error) { return true, nil }
func (m *mockProgressRepo) Completed(context.Context) ([]int, error)        { return m.completed, nil }
func (m *mockProgressRepo) Completions(context.Context) ([]store.Completion, error) {
	return nil, nil
}
func (m *mockProgressRepo) Reset(context.Context) error { return nil }

func TestProgress_Loading(t *testing.T) {
	s := New(nil)
	assert.Contains(t, s.View(100, 30), "Loading")
}

func TestProgress_Summary(t *testing.T) {
	s := New(&mockProgressRepo{completed: []int{1, 3}})
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Equal(t, lessons.Progress{Completed: 2, Total: 5, Remaining: 3, Percent: 40}, s.Summary())
	view := s.View(100, 30)
	assert.Contains(t, view, "40%")
	assert.Contains(t, view, "Keep going!")
}

func TestProgress_IgnoresUnknownLessonIDs(t *testing.T) {
	s := New(nil)
	s.Update(common.CompletedMsg{IDs: []int{1, 99}})
	assert.Equal(t, 1, s.Summary().Completed)
}

func TestProgress_AllDone(t *testing.T) {
	s := New(nil)
	s.Update(common.CompletedMsg{IDs: []int{1, 2, 3, 4, 5}})
	assert.True(t, s.Summary().Done())
	assert.Contains(t, s.View(100, 30), "Congratulations")
}

func TestProgress_Error(t *testing.T) {
	s := New(nil)
	s.Update(common.CompletedMsg{Err: errors.New("locked")})
	assert.Contains(t, s.View(100, 30), "locked")
}
