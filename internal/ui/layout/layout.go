// Package layout draws the chrome around every screen: the header bar with
// the app mark and language, the key hint footer and the frame that stacks
// them around the screen body.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// Smallest terminal the app draws into. Below it a resize prompt is shown.
const (
	MinWidth  = 60
	MinHeight = 20
)

// compactBody is the body height under which screens drop decoration.
const compactBody = 24

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// TooSmall reports whether the terminal cannot hold the frame.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Compact reports whether a screen body of the given height should skip
// decorative sections such as the starfield.
func Compact(bodyHeight int) bool {
	return bodyHeight < compactBody
}

// ResizePrompt asks for a bigger terminal, centred in the current one.
func ResizePrompt(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("✋\n\nThe palm needs more room.\nResize to at least %d × %d\n\nnow %d × %d",
			MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// Header renders the mark on the left, the screen title centred and the
// active language code on the right.
func Header(title, lang string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)

	mark := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("✋ AI Palm")
	code := ""
	if lang != "" {
		code = lipgloss.NewStyle().Foreground(theme.Secondary).Render("☾ " + strings.ToUpper(lang))
	}
	middle := max(inner-lipgloss.Width(mark)-lipgloss.Width(code), 0)
	heading := lipgloss.PlaceHorizontal(middle, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(title))

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, mark, heading, code))
}

// Footer renders the key hints of the active screen.
func Footer(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(strings.Join(parts, "   "))
}

// BodyHeight is what remains of height once the given chrome is drawn.
// Empty parts take no rows.
func BodyHeight(height int, chrome ...string) int {
	for _, c := range chrome {
		if c != "" {
			height -= lipgloss.Height(c)
		}
	}
	return max(height, 0)
}

// Frame stacks header, body, the notification strip and footer. The body
// is clipped to the rows the other parts leave free.
func Frame(header, body, notices, footer string, width, height int) string {
	h := BodyHeight(height, header, notices, footer)
	parts := []string{
		header,
		lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body),
	}
	if notices != "" {
		parts = append(parts, notices)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
