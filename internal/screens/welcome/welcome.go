package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// sparkle frames cycle beside the tagline
var sparkleFrames = []string{"✦", "✧"}

type feature struct {
	title string
	body  string
	color lipgloss.Style
}

var features = []feature{
	{"AI-Powered Learning", "Tutorials that adapt to your pace.", lipgloss.NewStyle().Foreground(theme.Secondary)},
	{"Hands-On Coding", "Write real code with immediate feedback.", lipgloss.NewStyle().Foreground(theme.Success)},
	{"Accelerated Learning", "AI-guided explanations, step by step.", lipgloss.NewStyle().Foreground(theme.Accent)},
}

type tickMsg time.Time

// WelcomeScreen shows the landing splash before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Learn Programming with AI")
	if w.elapsed >= phase1End {
		sparkle := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(sparkleFrames[w.tickCount%len(sparkleFrames)])
		tagline = sparkle + "  " + tagline + "  " + sparkle
	}
	sections = append(sections, tagline)

	if w.elapsed >= phase1End {
		sections = append(sections, "", renderFeatures(width))
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to start learning"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderFeatures(width int) string {
	lines := make([]string, 0, len(features))
	for _, f := range features {
		line := f.color.Bold(true).Render(f.title)
		if width >= 80 {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(f.body)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
