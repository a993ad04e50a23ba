package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown styles used by the app. The TUI always runs on the dark theme;
// AutoStyle picks notty when output is not a terminal.
const (
	DarkStyle = "dark"
	AutoStyle = "auto"
)

// Markdown renders model replies, which often arrive with lists and
// emphasis. The renderer is rebuilt only when the wrap width changes.
type Markdown struct {
	style string
	width int
	r     *glamour.TermRenderer
}

// NewMarkdown returns a renderer for the named glamour style.
func NewMarkdown(style string) *Markdown {
	return &Markdown{style: style}
}

// Render formats text wrapped at width. On any renderer error the text is
// returned as-is.
func (m *Markdown) Render(text string, width int) string {
	if width < 1 {
		width = 1
	}
	if m.r == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		m.r, m.width = r, width
	}
	out, err := m.r.Render(text)
	if err != nil {
		return text
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
