// Package palmresult shows a finished palm reading and records it in the
// reading history.
package palmresult

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
	"github.com/aipalm/aipalm/internal/ui/toast"
	"github.com/aipalm/aipalm/internal/wizard"
)

const saveTimeout = 5 * time.Second

type savedMsg struct {
	id  string
	err error
}

// Screen renders the reading passed in the router params.
type Screen struct {
	tr       *i18n.Translator
	readings store.ReadingRepo
	notifier toast.Notifier
	logger   *zap.Logger

	hand    wizard.Hand
	image   palm.Image
	reading *palm.Reading

	saving bool
	saved  bool

	vp            viewport.Model
	width, height int
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.BackHandler     = (*Screen)(nil)
)

// New builds the screen from router params. readings may be nil, in which
// case nothing is saved.
func New(tr *i18n.Translator, params router.Params, readings store.ReadingRepo, notifier toast.Notifier, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Screen{
		tr:       tr,
		readings: readings,
		notifier: notifier,
		logger:   logger,
		vp:       viewport.New(),
	}
	s.hand, _ = params[screens.ParamHand].(wizard.Hand)
	s.image, _ = params[screens.ParamImage].(palm.Image)
	s.reading, _ = params[screens.ParamAnalysis].(*palm.Reading)
	return s
}

// Reading returns the reading being shown, nil when none was passed.
func (s *Screen) Reading() *palm.Reading {
	return s.reading
}

// Init saves the reading once.
func (s *Screen) Init() tea.Cmd {
	if s.reading == nil || s.readings == nil || s.saving || s.saved {
		return nil
	}
	s.saving = true

	rec := &store.ReadingRecord{
		Hand:       string(s.hand),
		Language:   s.tr.Lang(),
		MediaType:  s.image.MediaType,
		ImageBytes: len(s.image.Data),
		HeartLine:  s.reading.HeartLine,
		HeadLine:   s.reading.HeadLine,
		LifeLine:   s.reading.LifeLine,
		FateLine:   s.reading.FateLine,
		Summary:    s.reading.Summary,
	}
	repo := s.readings
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := repo.Save(ctx, rec)
		return savedMsg{id: rec.ID, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.logger.Error("save reading", zap.Error(msg.err))
			s.notify(msg.err.Error(), toast.Error)
			return s, nil
		}
		s.saved = true
		s.logger.Info("reading saved", zap.String("reading_id", msg.id))
		s.notify(s.tr.T("result.saved"), toast.Success)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, router.Reset(screen.Home)
		case "n":
			return s, tea.Sequence(router.Reset(screen.Home), router.Navigate(screen.PalmScan))
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

// HandleBack returns home instead of to the finished wizard.
func (s *Screen) HandleBack() tea.Cmd {
	return router.Reset(screen.Home)
}

func (s *Screen) notify(text string, kind toast.Kind) {
	if s.notifier != nil {
		s.notifier.Notify(text, kind)
	}
}

func (s *Screen) Title() string {
	return s.tr.T("result.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "n", Description: "New scan"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.vp.SetWidth(cw)
		s.vp.SetHeight(max(height-2, 3))
	}
	s.vp.SetContent(s.render(cw))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.vp.View())
}

func (s *Screen) render(cw int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render("✋ " + s.tr.T("result.title")))
	b.WriteString("\n")
	if s.hand != wizard.HandUnset {
		b.WriteString(theme.Subtitle.Width(cw).Render(s.tr.Tf("result.hand", map[string]any{"Hand": s.handLabel()})))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.reading == nil {
		b.WriteString(theme.Hint.Width(cw).Render(s.tr.T("history.empty")))
		return b.String()
	}

	sections := []struct {
		icon, key, text string
	}{
		{"♥", "result.heart_line", s.reading.HeartLine},
		{"✧", "result.head_line", s.reading.HeadLine},
		{"❀", "result.life_line", s.reading.LifeLine},
		{"☆", "result.fate_line", s.reading.FateLine},
	}
	for _, sec := range sections {
		b.WriteString(components.Section(sec.icon+" "+s.tr.T(sec.key), sec.text, cw))
		b.WriteString("\n\n")
	}
	b.WriteString(components.Panel(
		components.Section("☾ "+s.tr.T("result.summary"), s.reading.Summary, cw-6), cw))
	return b.String()
}

func (s *Screen) handLabel() string {
	if s.hand == wizard.HandRight {
		return s.tr.T("scan.right")
	}
	return s.tr.T("scan.left")
}
