package components

import (
	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for cards so stacked
// sections line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded card at the given content width.
func Panel(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// Section renders a heading followed by wrapped body text.
func Section(heading, body string, cw int) string {
	h := theme.Heading.Render(heading)
	b := theme.Body.Width(cw).Render(body)
	return h + "\n" + b
}

// Centered places content in the middle of a width x height box.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
