package onboarding

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
)

var pageIcons = []string{"✋", "☾", "✦"}

const pageCount = 3

type completedMsg struct {
	err error
}

// Screen walks through the introduction pages, then marks onboarding as
// done and resets navigation to home.
type Screen struct {
	settings store.SettingsRepo
	tr       *i18n.Translator
	logger   *zap.Logger
	page     int
	done     bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the onboarding screen.
func New(settings store.SettingsRepo, tr *i18n.Translator, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{settings: settings, tr: tr, logger: logger}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case completedMsg:
		if msg.err != nil {
			// Not fatal: the user just sees onboarding again next launch.
			s.logger.Warn("save onboarding flag", zap.Error(msg.err))
		}
		return s, router.Reset(screen.Home)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "left", "h":
			if s.page > 0 {
				s.page--
			}
			return s, nil
		case "right", "l":
			if s.page < pageCount-1 {
				s.page++
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	_, cmd = s.button().Update(msg)
	return s, cmd
}

func (s *Screen) button() components.Button {
	if s.page < pageCount-1 {
		return components.NewButton(s.tr.T("onboarding.next"), true, func() tea.Cmd {
			s.page++
			return nil
		})
	}
	return components.NewButton(s.tr.T("onboarding.start"), !s.done, s.complete)
}

func (s *Screen) complete() tea.Cmd {
	s.done = true
	settings := s.settings
	return func() tea.Msg {
		if settings == nil {
			return completedMsg{}
		}
		return completedMsg{err: store.SetBool(context.Background(), settings, store.KeyHasCompletedOnboarding, true)}
	}
}

// Page returns the zero-based page being shown.
func (s *Screen) Page() int {
	return s.page
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	prefix := "onboarding.page" + string(rune('1'+s.page))

	body := strings.Join([]string{
		theme.Title.Width(cw - 6).Render(pageIcons[s.page] + "  " + s.tr.T(prefix+".title")),
		"",
		theme.Body.Width(cw - 6).Render(s.tr.T(prefix + ".body")),
	}, "\n")

	sections := []string{
		components.Panel(body, cw),
		"",
		components.Steps{Current: s.page, Total: pageCount}.View(),
		"",
		s.button().View(),
	}
	return components.Centered(strings.Join(sections, "\n"), width, height)
}

func (s *Screen) Title() string {
	return s.tr.T("app.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Pages"},
		{Key: "Enter", Description: "Continue"},
	}
}
