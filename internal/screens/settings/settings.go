// Package settings lets the user change language and reset local state.
package settings

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
	"github.com/aipalm/aipalm/internal/ui/toast"
)

type action int

const (
	actionResetOnboarding action = iota
	actionClearHistory
)

type doneMsg struct {
	action  action
	removed int64
	err     error
}

// Screen is the settings menu.
type Screen struct {
	tr       *i18n.Translator
	settings store.SettingsRepo
	readings store.ReadingRepo
	notifier toast.Notifier
	logger   *zap.Logger
	menu     components.Menu
	busy     bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the settings screen.
func New(tr *i18n.Translator, settings store.SettingsRepo, readings store.ReadingRepo, notifier toast.Notifier, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Screen{
		tr:       tr,
		settings: settings,
		readings: readings,
		notifier: notifier,
		logger:   logger,
	}
	current := tr.Lang()
	if l, ok := i18n.Lookup(current); ok {
		current = l.Native
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Icon:  "🌐",
			Label: tr.T("settings.language"),
			Hint:  current,
			Action: func() tea.Cmd {
				return router.NavigateWith(screen.Language, router.Params{screens.ParamFrom: screen.Settings})
			},
		},
		{
			Icon:     "↺",
			Label:    tr.T("settings.reset_onboarding"),
			Action:   func() tea.Cmd { return s.run(actionResetOnboarding) },
			Disabled: settings == nil,
		},
		{
			Icon:     "✕",
			Label:    tr.T("settings.clear_history"),
			Action:   func() tea.Cmd { return s.run(actionClearHistory) },
			Disabled: readings == nil,
		},
	})
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) run(a action) tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	settings, readings := s.settings, s.readings
	return func() tea.Msg {
		ctx := context.Background()
		switch a {
		case actionResetOnboarding:
			return doneMsg{action: a, err: store.SetBool(ctx, settings, store.KeyHasCompletedOnboarding, false)}
		default:
			n, err := readings.DeleteAll(ctx)
			return doneMsg{action: a, removed: n, err: err}
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(doneMsg); ok {
		s.busy = false
		if msg.err != nil {
			s.logger.Error("settings action failed", zap.Int("action", int(msg.action)), zap.Error(msg.err))
			s.notify(msg.err.Error(), toast.Error)
			return s, nil
		}
		switch msg.action {
		case actionResetOnboarding:
			s.notify(s.tr.T("settings.onboarding_reset"), toast.Info)
		case actionClearHistory:
			s.logger.Info("history cleared", zap.Int64("removed", msg.removed))
			s.notify(s.tr.T("settings.history_cleared"), toast.Success)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) notify(text string, kind toast.Kind) {
	if s.notifier != nil {
		s.notifier.Notify(text, kind)
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := theme.Title.Width(cw).Render("⚙ "+s.tr.T("settings.title")) + "\n\n" + components.Panel(s.menu.View(), cw)
	return components.Centered(body, width, height)
}

func (s *Screen) Title() string {
	return s.tr.T("settings.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}
