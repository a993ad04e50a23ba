package palmscan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/llm"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
	"github.com/aipalm/aipalm/internal/ui/toast"
	"github.com/aipalm/aipalm/internal/wizard"
)

// FailureMessage is the toast shown when analysis fails.
const FailureMessage = "Could not analyze image. Please try again."

// DefaultHandSelectDelay is the pause between picking a hand and the guide.
const DefaultHandSelectDelay = 300 * time.Millisecond

// Options configures the scan screen.
type Options struct {
	Analyzer palm.Analyzer
	Notifier toast.Notifier
	Logger   *zap.Logger

	// Lang is the language readings are written in.
	Lang string

	// HandSelectDelay is applied before the guide appears. Zero skips it.
	HandSelectDelay time.Duration

	// LoadImage reads an uploaded file. Defaults to palm.LoadImage.
	LoadImage func(path string) (palm.Image, error)
}

// Messages are tagged with the scan ID of the screen that produced them so
// results for an earlier or closed scan are dropped.
type handChosenMsg struct {
	scanID string
	hand   wizard.Hand
}

type analysisMsg struct {
	scanID  string
	reading *palm.Reading
	err     error
}

// Screen drives the scan wizard: hand select, guide, upload, analyzing.
type Screen struct {
	opts   Options
	tr     *i18n.Translator
	wiz    *wizard.Wizard
	scanID string

	hands    components.Choice
	input    components.TextInput
	inputErr string
	spinner  spinner.Model

	leaving bool
	closed  bool
}

var (
	_ screen.Screen      = (*Screen)(nil)
	_ screen.Closer      = (*Screen)(nil)
	_ screen.BackHandler = (*Screen)(nil)
)

// New creates a scan screen with a fresh wizard at the hand select step.
func New(tr *i18n.Translator, opts Options) *Screen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.LoadImage == nil {
		opts.LoadImage = palm.LoadImage
	}
	if opts.Lang == "" {
		opts.Lang = tr.Lang()
	}
	return &Screen{
		opts:   opts,
		tr:     tr,
		wiz:    wizard.New(),
		scanID: uuid.NewString(),
		hands:  components.NewChoice("✋ "+tr.T("scan.left"), tr.T("scan.right")+" 🤚"),
		input:  components.NewTextInput(tr.T("scan.upload.placeholder"), 1024, 48),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Moon),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

// Wizard exposes the underlying state machine.
func (s *Screen) Wizard() *wizard.Wizard {
	return s.wiz
}

// ScanID identifies this screen's scan.
func (s *Screen) ScanID() string {
	return s.scanID
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

// Close marks the screen torn down. Results arriving later are dropped.
func (s *Screen) Close() {
	s.closed = true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.closed {
		return s, nil
	}

	switch msg := msg.(type) {
	case handChosenMsg:
		if msg.scanID != s.scanID {
			return s, nil
		}
		return s, s.selectHand(msg.hand)

	case analysisMsg:
		return s, s.finishAnalysis(msg)

	case spinner.TickMsg:
		if !s.wiz.Analyzing() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.wiz.Step() == wizard.StepUpload {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch s.wiz.Step() {
	case wizard.StepHandSelect:
		var confirmed bool
		s.hands, confirmed = s.hands.Update(msg)
		if !confirmed {
			return nil
		}
		hand := wizard.HandLeft
		if s.hands.Selected == 1 {
			hand = wizard.HandRight
		}
		s.hands.Locked = true
		if s.opts.HandSelectDelay <= 0 {
			return s.selectHand(hand)
		}
		id := s.scanID
		return tea.Tick(s.opts.HandSelectDelay, func(time.Time) tea.Msg {
			return handChosenMsg{scanID: id, hand: hand}
		})

	case wizard.StepGuide:
		switch msg.String() {
		case "enter", "space":
			if err := s.wiz.ConfirmGuide(); err != nil {
				s.opts.Logger.Debug("confirm guide", zap.Error(err))
				return nil
			}
			return s.input.Init()
		}

	case wizard.StepUpload:
		if msg.String() == "enter" {
			return s.capture(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.inputErr = ""
		return cmd
	}
	return nil
}

func (s *Screen) selectHand(h wizard.Hand) tea.Cmd {
	if err := s.wiz.SelectHand(h); err != nil {
		s.opts.Logger.Debug("select hand", zap.Error(err))
	}
	return nil
}

// capture loads the image at path and starts the single gateway call.
func (s *Screen) capture(path string) tea.Cmd {
	path = cleanPath(path)
	if path == "" {
		return nil
	}
	img, err := s.opts.LoadImage(path)
	if err != nil {
		s.input.Submit(false)
		s.inputErr = err.Error()
		return nil
	}
	if err := s.wiz.CaptureImage(img); err != nil {
		s.opts.Logger.Debug("capture image", zap.Error(err))
		return nil
	}
	s.input.Submit(true)
	s.opts.Logger.Info("palm analysis started",
		zap.String("scan_id", s.scanID),
		zap.String("hand", string(s.wiz.Session().Hand)),
		zap.String("media_type", img.MediaType),
		zap.Int("bytes", len(img.Data)))
	return tea.Batch(s.analyze(img), s.spinner.Tick)
}

func (s *Screen) analyze(img palm.Image) tea.Cmd {
	id, analyzer, lang := s.scanID, s.opts.Analyzer, s.opts.Lang
	return func() tea.Msg {
		ctx := llm.WithCorrelation(context.Background(), id)
		r, err := analyzer.Analyze(ctx, img, lang)
		return analysisMsg{scanID: id, reading: r, err: err}
	}
}

func (s *Screen) finishAnalysis(msg analysisMsg) tea.Cmd {
	if msg.scanID != s.scanID || !s.wiz.Analyzing() {
		s.opts.Logger.Debug("dropping stale analysis result", zap.String("scan_id", msg.scanID))
		return nil
	}

	if msg.err != nil {
		if err := s.wiz.Fail(); err != nil {
			s.opts.Logger.Error("revert wizard", zap.Error(err))
		}
		s.opts.Logger.Warn("palm analysis failed", zap.String("scan_id", s.scanID), zap.Error(msg.err))
		if s.opts.Notifier != nil {
			s.opts.Notifier.Notify(FailureMessage, toast.Error)
		}
		return nil
	}

	session, err := s.wiz.Succeed(msg.reading)
	if err != nil {
		s.opts.Logger.Error("complete wizard", zap.Error(err))
		return nil
	}
	s.opts.Logger.Info("palm analysis finished", zap.String("scan_id", s.scanID))
	return router.NavigateWith(screen.PalmResult, router.Params{
		screens.ParamHand:     session.Hand,
		screens.ParamImage:    *session.Image,
		screens.ParamAnalysis: session.Analysis,
	})
}

// HandleBack steps the wizard back. At the first step it leaves for home,
// once. It does nothing while an analysis is outstanding.
func (s *Screen) HandleBack() tea.Cmd {
	if s.closed || s.leaving {
		return nil
	}
	leave, err := s.wiz.Back()
	if err != nil {
		return nil
	}
	if leave {
		s.leaving = true
		return router.Navigate(screen.Home)
	}
	switch s.wiz.Step() {
	case wizard.StepHandSelect:
		s.hands.Locked = false
	case wizard.StepGuide:
		s.input.Reset()
		s.inputErr = ""
	}
	return nil
}

func (s *Screen) Title() string {
	return s.tr.T("scan.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.wiz.Step() {
	case wizard.StepHandSelect:
		return []layout.KeyHint{{Key: "←→", Description: "Hand"}, {Key: "Enter", Description: "Choose"}, {Key: "Esc", Description: "Home"}}
	case wizard.StepGuide:
		return []layout.KeyHint{{Key: "Enter", Description: "Ready"}, {Key: "Esc", Description: "Back"}}
	case wizard.StepUpload:
		return []layout.KeyHint{{Key: "Enter", Description: "Analyze"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// cleanPath strips the quoting terminals add to dropped files and expands a
// leading ~.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	p = strings.ReplaceAll(p, `\ `, " ")
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
