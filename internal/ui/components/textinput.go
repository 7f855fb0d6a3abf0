package components

import (
	"fmt"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a character counter. The limit is
// enforced here so the grading engine never sees over-long answers from the
// TUI.
type TextInput struct {
	Model     textinput.Model
	CharLimit int
}

// NewTextInput creates a new focused text input capped at charLimit runes.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:     ti,
		CharLimit: charLimit,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input followed by a used/limit counter.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.CharLimit <= 0 {
		return view
	}
	counter := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Remaining() == 0 {
		counter = counter.Foreground(theme.Accent)
	}
	return view + "\n" + counter.Render(fmt.Sprintf("%d/%d", utf8.RuneCountInString(t.Value()), t.CharLimit))
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input contents.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Remaining returns how many more characters fit, or -1 when unlimited.
func (t TextInput) Remaining() int {
	if t.CharLimit <= 0 {
		return -1
	}
	return max(0, t.CharLimit-utf8.RuneCountInString(t.Value()))
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus so key presses are no longer consumed.
func (t *TextInput) Blur() {
	t.Model.Blur()
}
