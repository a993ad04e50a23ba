package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// Choice is a row of cards picked with left/right and confirmed with enter.
type Choice struct {
	Options  []string
	Selected int
	Locked   bool
}

// NewChoice creates a Choice with the first option selected.
func NewChoice(options ...string) Choice {
	return Choice{Options: options}
}

// Update moves the selection. It reports true when enter confirms the
// current option. A locked Choice ignores input.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	if c.Locked {
		return c, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, false
	}

	switch kmsg.String() {
	case "left", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", "space":
		return c, len(c.Options) > 0
	}
	return c, false
}

// View renders the options side by side.
func (c Choice) View() string {
	cards := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			Margin(0, 1)
		if i == c.Selected {
			style = style.BorderForeground(theme.Accent).Foreground(theme.Accent).Bold(true)
		} else {
			style = style.BorderForeground(theme.Border).Foreground(theme.TextDim)
		}
		cards = append(cards, style.Render(opt))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cards...)
}
