package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/ui/theme"
)

const titleFull = `┏━┓┏━╸┏━┓╺┳┓┏━╸┏┳┓╻ ╻
┣━┫┃  ┣━┫ ┃┃┣╸ ┃┃┃┗┳┛
╹ ╹┗━╸╹ ╹╺┻┛┗━╸╹ ╹ ╹ `

const titleCompact = "A · C · A · D · E · M · Y"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func centered(cw int) lipgloss.Style {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if compact {
		return centered(cw).Render(style.Render(titleCompact))
	}
	return centered(cw).Render(style.Render(titleFull))
}

func renderTagline(cw int) string {
	return centered(cw).Foreground(theme.TextDim).
		Render("Master the art of coding with AI assistance.")
}

// renderStatsBar renders lesson progress in a bordered box matching content width.
func renderStatsBar(p lessons.Progress, cw int, compact bool) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	leftStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	pctStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			doneStyle.Render(fmt.Sprintf("✓%d", p.Completed)),
			leftStyle.Render(fmt.Sprintf("○%d", p.Remaining)),
			pctStyle.Render(fmt.Sprintf("%d%%", p.Percent)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			doneStyle.Render(fmt.Sprintf("✓ %d COMPLETED", p.Completed)),
			leftStyle.Render(fmt.Sprintf("○ %d REMAINING", p.Remaining)),
			pctStyle.Render(fmt.Sprintf("%d%% DONE", p.Percent)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when there is no room for borders.
func renderMenu(items []string, selected int, cw int, compact bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Secondary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Padding(0, 1)

	if !compact {
		selectedBtn = selectedBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Secondary)
		normalBtn = normalBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return centered(cw).Render(strings.Join(buttons, "\n"))
}

func renderStoreBanner(cw int) string {
	return centered(cw).Foreground(theme.Accent).
		Render("⚠ Progress will not be saved (see academy --help)")
}

// renderCabinetFrame wraps content in a rounded frame centered in the area.
func renderCabinetFrame(content string, width, height int) string {
	framed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, framed)
}
