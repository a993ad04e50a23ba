package language

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
	"github.com/aipalm/aipalm/internal/ui/toast"
)

// savedMsg reports the outcome of persisting the chosen language.
type savedMsg struct {
	code string
	err  error
}

// Screen lets the user pick the app language. Opened from settings it
// returns there; otherwise it continues to onboarding.
type Screen struct {
	settings store.SettingsRepo
	notifier toast.Notifier
	logger   *zap.Logger
	tr       *i18n.Translator
	from     screen.ID
	menu     components.Menu
	saving   bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the language screen. from is the screen that opened it.
func New(settings store.SettingsRepo, notifier toast.Notifier, tr *i18n.Translator, from screen.ID, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Screen{settings: settings, notifier: notifier, logger: logger, tr: tr, from: from}

	items := make([]components.MenuItem, len(i18n.SupportedLanguages))
	selected := 0
	for i, l := range i18n.SupportedLanguages {
		code := l.Code
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%-10s %s", l.Native, lipgloss.NewStyle().Foreground(theme.TextDim).Render(l.Name)),
			Action: func() tea.Cmd { return s.choose(code) },
		}
		if code == tr.Lang() {
			selected = i
		}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = selected
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) choose(code string) tea.Cmd {
	if s.saving {
		return nil
	}
	s.saving = true
	settings := s.settings
	return func() tea.Msg {
		if settings == nil {
			return savedMsg{code: code}
		}
		return savedMsg{code: code, err: settings.Set(context.Background(), store.KeyAppLanguage, code)}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.logger.Error("save language", zap.String("lang", msg.code), zap.Error(msg.err))
			if s.notifier != nil {
				s.notifier.Notify("Could not save language. Please try again.", toast.Error)
			}
			return s, nil
		}
		s.logger.Info("language selected", zap.String("lang", msg.code))
		if s.from == screen.Settings {
			return s, router.Back()
		}
		return s, router.Navigate(screen.Onboarding)
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{
		theme.Title.Width(cw).Render(s.tr.T("language.title")),
		theme.Subtitle.Width(cw).Render(s.tr.T("language.hint")),
		"",
		components.Panel(s.menu.View(), cw),
	}
	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (s *Screen) Title() string {
	return s.tr.T("language.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
	}
}
