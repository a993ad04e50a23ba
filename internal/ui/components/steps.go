package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// Steps renders a step indicator such as "● ● ○ ○" with an optional label.
type Steps struct {
	Current int // zero-based
	Total   int
	Label   string
}

// View renders the indicator.
func (s Steps) View() string {
	dots := make([]string, 0, s.Total)
	for i := 0; i < s.Total; i++ {
		switch {
		case i < s.Current:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.Primary).Render("●"))
		case i == s.Current:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.Accent).Render("◉"))
		default:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.Border).Render("○"))
		}
	}
	out := strings.Join(dots, " ")
	if s.Label != "" {
		out += "  " + theme.Hint.Render(s.Label)
	}
	return out
}
