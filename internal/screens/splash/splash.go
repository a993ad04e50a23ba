package splash

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const handArt = `    ╭╮╭╮╭╮
  ╭╮││││││
  ││││││││
  │╰╯╰╯╰╯│╭╮
  │  ~~~  ││
  │ ~~~~  ╯│
  ╰╮ ~~   ╭╯
   ╰──────╯`

var starFrames = []string{"✦", "✧", "⋆"}

type tickMsg time.Time

// Screen shows the opening animation, then routes to the first screen the
// user still needs: language selection, onboarding or home.
type Screen struct {
	settings     store.SettingsRepo
	tr           *i18n.Translator
	logger       *zap.Logger
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*Screen)(nil)

// New creates the splash screen. A nil logger discards output.
func New(settings store.SettingsRepo, tr *i18n.Translator, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{settings: settings, tr: tr, logger: logger}
}

func (s *Screen) Title() string {
	return ""
}

func (s *Screen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		s.tickCount++
		if s.elapsed >= totalDur {
			return s, s.transition()
		}
		return s, tick()

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return s, s.transition()
	}

	return s, nil
}

// transition resolves the destination once. Later calls return nil.
func (s *Screen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	return func() tea.Msg {
		return router.ResetMsg{To: s.Destination(context.Background())}
	}
}

// Destination reads the persisted preferences and picks the first screen.
// Storage errors are treated as a first run.
func (s *Screen) Destination(ctx context.Context) screen.ID {
	if s.settings == nil {
		return screen.Language
	}
	lang, ok, err := s.settings.Get(ctx, store.KeyAppLanguage)
	if err != nil {
		s.logger.Warn("read language setting", zap.Error(err))
		return screen.Language
	}
	if !ok || lang == "" {
		return screen.Language
	}

	onboarded, err := store.GetBool(ctx, s.settings, store.KeyHasCompletedOnboarding)
	if err != nil {
		s.logger.Warn("read onboarding setting", zap.Error(err))
		return screen.Onboarding
	}
	if !onboarded {
		return screen.Onboarding
	}
	return screen.Home
}

func (s *Screen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(handArt)

	// Stars twinkle around the hand after the first phase.
	if s.elapsed >= phase1End {
		star := starFrames[s.tickCount%len(starFrames)]
		gold := lipgloss.NewStyle().Foreground(theme.Accent).Render(star)
		teal := lipgloss.NewStyle().Foreground(theme.Secondary).Render(star)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = gold + "  " + lines[0] + "  " + teal
		}
		if len(lines) > 4 {
			lines[4] = teal + "  " + lines[4] + "  " + gold
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if s.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(s.tr.T("app.tagline")))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
