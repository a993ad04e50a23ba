package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	"github.com/aipalm/aipalm/internal/ui/theme"
)

// PlaceholderScreen is a generic "coming soon" screen for destinations
// that have no screen of their own yet.
type PlaceholderScreen struct {
	tr    *i18n.Translator
	title string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a placeholder. The title comes from params when the caller
// passed one, otherwise from id.
func New(tr *i18n.Translator, id screen.ID, params router.Params) *PlaceholderScreen {
	title, _ := params[screens.ParamTitle].(string)
	if title == "" {
		title = id.String()
	}
	return &PlaceholderScreen{tr: tr, title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ " + p.tr.T("placeholder.coming_soon") + " ╌╌\n\n" + p.tr.T("placeholder.body"))
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
