package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// TextInput is a single line prompt in the app palette. After Submit it
// shows whether the value was accepted until the user types again.
type TextInput struct {
	Model textinput.Model

	// verdict is "", "ok" or "bad".
	verdict string
}

// NewTextInput returns a focused input. charLimit <= 0 keeps the bubbles
// default limit.
func NewTextInput(placeholder string, charLimit, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "❯ "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.SetStyles(inputStyles())
	ti.Focus()
	return TextInput{Model: ti}
}

func inputStyles() textinput.Styles {
	s := textinput.DefaultDarkStyles()
	for _, st := range []*textinput.StyleState{&s.Focused, &s.Blurred} {
		st.Prompt = lipgloss.NewStyle().Foreground(theme.Accent)
		st.Placeholder = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	}
	s.Focused.Text = lipgloss.NewStyle().Foreground(theme.Text)
	s.Cursor.Color = theme.Accent
	return s
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.verdict = ""
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	switch t.verdict {
	case "ok":
		return t.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case "bad":
		return t.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return t.Model.View()
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the value and the verdict.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.verdict = ""
}

// Submit records whether the current value was accepted.
func (t *TextInput) Submit(valid bool) {
	t.verdict = "bad"
	if valid {
		t.verdict = "ok"
	}
}
