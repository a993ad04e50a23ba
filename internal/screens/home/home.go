package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
)

// Options carries what the home screen shows besides the menu.
type Options struct {
	// LLMReady is false when no provider is configured. Palm scan and chat
	// are then disabled.
	LLMReady bool

	// Readings is the number of saved readings.
	Readings int

	// Now overrides the clock used to pick the sky art.
	Now func() time.Time
}

// Screen is the main menu.
type Screen struct {
	tr   *i18n.Translator
	opts Options
	menu components.Menu
	sky  SkyVariant
}

var _ screen.Screen = (*Screen)(nil)

// New creates the home screen.
func New(tr *i18n.Translator, opts Options) *Screen {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	soon := func(id screen.ID, key string) func() tea.Cmd {
		return func() tea.Cmd {
			return router.NavigateWith(id, router.Params{screens.ParamTitle: tr.T(key)})
		}
	}
	to := func(id screen.ID) func() tea.Cmd {
		return func() tea.Cmd { return router.Navigate(id) }
	}

	items := []components.MenuItem{
		{Icon: "✋", Label: tr.T("menu.palm_scan"), Action: to(screen.PalmScan), Disabled: !opts.LLMReady},
		{Icon: "✦", Label: tr.T("menu.ai_chat"), Action: to(screen.AIChat), Disabled: !opts.LLMReady},
		{Icon: "🂠", Label: tr.T("menu.tarot"), Action: soon(screen.TarotCategory, "menu.tarot")},
		{Icon: "☉", Label: tr.T("menu.horoscope"), Action: soon(screen.Horoscope, "menu.horoscope")},
		{Icon: "☀", Label: tr.T("menu.daily_guidance"), Action: soon(screen.DailyGuidance, "menu.daily_guidance")},
		{Icon: "♡", Label: tr.T("menu.love_reading"), Action: soon(screen.LoveReading, "menu.love_reading")},
		{Icon: "☷", Label: tr.T("menu.history"), Action: to(screen.History)},
		{Icon: "⚙", Label: tr.T("menu.settings"), Action: to(screen.Settings)},
		{Icon: "⏻", Label: tr.T("menu.exit"), Action: func() tea.Cmd { return tea.Quit }},
	}

	return &Screen{
		tr:   tr,
		opts: opts,
		menu: components.NewMenu(items),
		sky:  SkyFor(opts.Now()),
	}
}

func (h *Screen) Init() tea.Cmd {
	return nil
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	compact := layout.Compact(height)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(h.tr.T("home.greeting"), h.tr.T("home.subtitle"), cw))
	if !compact {
		sections = append(sections, renderSkyBox(h.sky, cw))
	}
	sections = append(sections, renderStatsBar(h.opts.Readings, h.tr.Lang(), cw))
	if !h.opts.LLMReady {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, h.menu.View())

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *Screen) Title() string {
	return h.tr.T("home.greeting")
}

func (h *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
