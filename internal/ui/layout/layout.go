package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// CompactWidth is the width below which the header drops the lesson
	// track and the footer drops its notice.
	CompactWidth = 100

	// maxTrack is the largest catalog drawn as one pip per lesson.
	maxTrack = 12
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is what the header bar reports.
type Status struct {
	Screen    string
	Completed int
	Total     int
}

// Chrome is everything drawn around the active screen.
type Chrome struct {
	Status Status
	Hints  []KeyHint

	// Notice is right-aligned in the footer, e.g. when progress cannot be
	// saved.
	Notice string
}

// IsCompact reports whether width is too narrow for the full chrome.
func IsCompact(width int) bool {
	return width < CompactWidth
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Academy needs a larger window.\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the brand, a breadcrumb to the active screen, and the
// lesson counter.
func RenderHeader(s Status, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Academy")
	if s.Screen != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" › ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(s.Screen)
	}

	right := lipgloss.NewStyle().
		Foreground(theme.Success).
		Render(fmt.Sprintf("✓ %d/%d lessons", s.Completed, s.Total))
	if !IsCompact(width) {
		if track := lessonTrack(s.Completed, s.Total); track != "" {
			right = track + "  " + right
		}
	}

	return bar(spread(left, right, width-4), width)
}

// lessonTrack draws one pip per lesson, filled for completed ones.
func lessonTrack(completed, total int) string {
	if total <= 0 || total > maxTrack {
		return ""
	}
	completed = min(max(completed, 0), total)
	return lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("●", completed)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Repeat("○", total-completed))
}

// RenderFooter draws the key hints and, when there is room, the notice.
func RenderFooter(hints []KeyHint, notice string, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	left := "  " + strings.Join(parts, "   ")

	right := ""
	if notice != "" && !IsCompact(width) {
		right = lipgloss.NewStyle().Foreground(theme.Error).Render("! " + notice)
	}
	return bar(spread(left, right, width-4), width)
}

// RenderFrame stacks header, content and footer. content is called with
// the space left between the bars.
func RenderFrame(c Chrome, width, height int, content func(width, height int) string) string {
	header := RenderHeader(c.Status, width)
	footer := RenderFooter(c.Hints, c.Notice, width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		Render(content(width, bodyHeight))

	return header + "\n" + body + "\n" + footer
}

// spread places left and right at the ends of a line of the given width.
func spread(left, right string, width int) string {
	if right == "" {
		return left
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
