package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/grading"
	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/screens/common"
	"github.com/abhisek/academy/internal/screens/lessonlist"
	"github.com/abhisek/academy/internal/screens/notice"
	"github.com/abhisek/academy/internal/screens/progress"
	"github.com/abhisek/academy/internal/store"
	"github.com/abhisek/academy/internal/ui/components"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	repo       store.ProgressRepo
	storeErr   string
	menu       components.Menu
	menuLabels []string
	summary    lessons.Progress
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. When repo is nil, storeErr explains why
// progress tracking is unavailable.
func New(engine *grading.Engine, repo store.ProgressRepo, storeErr string) *HomeScreen {
	menuLabels := []string{"LESSONS", "PROGRESS", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lessonlist.New(engine, repo)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			if repo == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: notice.New("Progress",
						"Progress tracking is unavailable.\n\n"+storeErr)}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(repo)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		repo:       repo,
		storeErr:   storeErr,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		summary:    lessons.Summarize(0, lessons.Count()),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return common.LoadCompleted(h.repo)
}

// Resume refreshes the stats bar when returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return common.LoadCompleted(h.repo)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(common.CompletedMsg); ok {
		if msg.Err == nil {
			h.summary = lessons.Summarize(len(msg.IDs), lessons.Count())
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 100
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderTagline(cw),
		renderStatsBar(h.summary, cw, compact),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	}
	if h.repo == nil && h.storeErr != "" {
		sections = append(sections, renderStoreBanner(cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
