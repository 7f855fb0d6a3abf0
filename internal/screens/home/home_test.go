package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/rules"
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

func testHome(t *testing.T, repo store.ProgressRepo, storeErr string) *HomeScreen {
	t.Helper()
	engine, err := rules.NewLoader(nil).Default()
	require.NoError(t, err)
	return New(engine, repo, storeErr)
}

func TestHome_MenuLabels(t *testing.T) {
	h := testHome(t, nil, "")
	assert.Equal(t, []string{"LESSONS", "PROGRESS", "EXIT"}, h.menuLabels)
	assert.Equal(t, "Home", h.Title())
}

func TestHome_StatsFromStore(t *testing.T) {
	h := testHome(t, &mockProgressRepo{completed: []int{1, 2, 3}}, "")
	h.Update(h.Init()())
	assert.Equal(t, 3, h.summary.Completed)
	assert.Contains(t, h.View(120, 40), "60% DONE")
}

func TestHome_LessonsPushesList(t *testing.T) {
	h := testHome(t, nil, "")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Lessons", msg.Screen.Title())
}

func TestHome_ProgressWithoutStoreShowsNotice(t *testing.T) {
	h := testHome(t, nil, "open database: permission denied")
	assert.Contains(t, h.View(120, 40), "Progress will not be saved")

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Progress", msg.Screen.Title())
	assert.Contains(t, msg.Screen.View(80, 20), "permission denied")
}

func TestHome_ProgressWithStore(t *testing.T) {
	h := testHome(t, &mockProgressRepo{}, "")
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := cmd().(router.PushScreenMsg)
	assert.Equal(t, "Your Progress", msg.Screen.Title())
}
