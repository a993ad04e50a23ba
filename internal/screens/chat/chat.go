// Package chat is the conversational guide screen.
package chat

import (
	"context"
	"slices"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/llm"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
)

// maxInput bounds a single question.
const maxInput = 500

// Replier answers a conversation. It never fails; errors become a fixed
// reply.
type Replier interface {
	Reply(ctx context.Context, history []llm.Message, lang string) string
}

type replyMsg struct {
	turn int
	text string
}

// Screen shows the transcript and an input line.
type Screen struct {
	tr      *i18n.Translator
	replier Replier
	logger  *zap.Logger

	history []llm.Message
	turn    int
	waiting bool
	closed  bool

	input   components.TextInput
	spinner spinner.Model
	vp      viewport.Model
	md      *components.Markdown
	width   int
	height  int

	// rendered caches reply bubbles by history index at renderedWidth.
	rendered      map[int]string
	renderedWidth int
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.Closer          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates a chat screen. Replies are written in the translator's
// language.
func New(tr *i18n.Translator, replier Replier, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{
		tr:      tr,
		replier: replier,
		logger:  logger,
		input:   components.NewTextInput(tr.T("chat.placeholder"), maxInput, 50),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Points),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
		vp:       viewport.New(),
		md:       components.NewMarkdown(components.DarkStyle),
		rendered: make(map[int]string),
	}
}

// History returns the conversation so far, without the welcome line.
func (s *Screen) History() []llm.Message {
	return slices.Clone(s.history)
}

// Waiting reports whether a reply is outstanding.
func (s *Screen) Waiting() bool {
	return s.waiting
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

// Close drops replies that arrive after the screen is gone.
func (s *Screen) Close() {
	s.closed = true
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.closed {
		return s, nil
	}

	switch msg := msg.(type) {
	case replyMsg:
		if msg.turn != s.turn || !s.waiting {
			return s, nil
		}
		s.waiting = false
		s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: msg.text})
		s.vp.GotoBottom()
		return s, nil

	case spinner.TickMsg:
		if !s.waiting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			s.vp, cmd = s.vp.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send starts a reply for the typed question. Only one reply is in flight.
func (s *Screen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.waiting || s.replier == nil {
		return nil
	}
	s.input.Reset()
	s.history = append(s.history, llm.Message{Role: llm.RoleUser, Content: text})
	s.waiting = true
	s.turn++
	s.vp.GotoBottom()

	turn, history, lang, replier := s.turn, s.History(), s.tr.Lang(), s.replier
	s.logger.Debug("chat question", zap.Int("turn", turn), zap.Int("messages", len(history)))
	return tea.Batch(func() tea.Msg {
		return replyMsg{turn: turn, text: replier.Reply(context.Background(), history, lang)}
	}, s.spinner.Tick)
}

func (s *Screen) Title() string {
	return s.tr.T("chat.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	inputView := components.Panel(s.input.View(), cw)
	transcriptHeight := max(height-lipgloss.Height(inputView)-1, 3)

	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.vp.SetWidth(cw)
		s.vp.SetHeight(transcriptHeight)
	}
	atBottom := s.vp.AtBottom()
	s.vp.SetContent(s.transcript(cw))
	if atBottom {
		s.vp.GotoBottom()
	}

	body := lipgloss.JoinVertical(lipgloss.Left, s.vp.View(), "", inputView)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *Screen) transcript(cw int) string {
	bubbleWidth := cw * 3 / 4
	if cw != s.renderedWidth {
		clear(s.rendered)
		s.renderedWidth = cw
	}
	lines := []string{guideBubble(s.tr.T("chat.welcome"), bubbleWidth, cw)}
	for i, m := range s.history {
		if m.Role == llm.RoleUser {
			lines = append(lines, userBubble(m.Content, bubbleWidth, cw))
			continue
		}
		b, ok := s.rendered[i]
		if !ok {
			b = s.replyBubble(m.Content, bubbleWidth, cw)
			s.rendered[i] = b
		}
		lines = append(lines, b)
	}
	if s.waiting {
		lines = append(lines, s.spinner.View()+" "+theme.Hint.Render(s.tr.T("chat.thinking")))
	}
	return strings.Join(lines, "\n\n")
}

func userBubble(text string, w, cw int) string {
	return lipgloss.PlaceHorizontal(cw, lipgloss.Right, theme.UserBubble.Width(w).Render(text))
}

func guideBubble(text string, w, cw int) string {
	return lipgloss.PlaceHorizontal(cw, lipgloss.Left, theme.GuideBubble.Width(w).Render("☾ "+text))
}

// replyBubble renders an assistant reply as markdown inside the guide bubble.
func (s *Screen) replyBubble(text string, w, cw int) string {
	inner := w - theme.GuideBubble.GetHorizontalFrameSize()
	body := s.md.Render(text, inner)
	return lipgloss.PlaceHorizontal(cw, lipgloss.Left, theme.GuideBubble.Render(body))
}
