package toast

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// Render draws toasts as a right-aligned stack. Empty input renders "".
func Render(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		lines = append(lines, style(t.Kind).Render(icon(t.Kind)+" "+t.Text))
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Render(strings.Join(lines, "\n"))
}

func style(k Kind) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(theme.BgDark)
	switch k {
	case Error:
		return base.Background(theme.Error)
	case Success:
		return base.Background(theme.Success)
	default:
		return base.Background(theme.Secondary)
	}
}

func icon(k Kind) string {
	switch k {
	case Error:
		return "✗"
	case Success:
		return "✓"
	default:
		return "✦"
	}
}
