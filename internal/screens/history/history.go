// Package history lists saved palm readings, newest first.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/layout"
	"github.com/aipalm/aipalm/internal/ui/theme"
)

// Limit caps how many readings are loaded.
const Limit = 50

type loadedMsg struct {
	readings []store.ReadingRecord
	err      error
}

// Screen displays past readings. Enter expands the selected one.
type Screen struct {
	tr       *i18n.Translator
	repo     store.ReadingRepo
	logger   *zap.Logger
	readings []store.ReadingRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a history screen.
func New(tr *i18n.Translator, repo store.ReadingRepo, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{
		tr:       tr,
		repo:     repo,
		logger:   logger,
		expanded: make(map[int]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	if s.repo == nil {
		return func() tea.Msg { return loadedMsg{} }
	}
	repo := s.repo
	return func() tea.Msg {
		readings, err := repo.List(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{readings: readings, err: err}
	}
}

func (s *Screen) Title() string {
	return s.tr.T("history.title")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.logger.Error("load history", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
		} else {
			s.readings = msg.readings
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.readings)-1 {
				s.selected++
			}
		case "enter", "space":
			if len(s.readings) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\n" + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n...")
	}
	if len(s.readings) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n" + s.tr.T("history.empty"))
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(center.Foreground(theme.TextDim).Render(
		s.tr.Tf("history.count", map[string]any{"Count": len(s.readings)})))
	b.WriteString("\n\n")

	for i, r := range s.readings {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "❯ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %s  %s", prefix,
			r.CreatedAt.Local().Format("Jan 02, 2006 15:04"),
			s.handLabel(r.Hand),
			strings.ToUpper(r.Language))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(cw).Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.details(r, cw)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *Screen) details(r store.ReadingRecord, cw int) string {
	inner := cw - 6
	parts := []string{
		components.Section(s.tr.T("result.heart_line"), r.HeartLine, inner),
		components.Section(s.tr.T("result.head_line"), r.HeadLine, inner),
		components.Section(s.tr.T("result.life_line"), r.LifeLine, inner),
		components.Section(s.tr.T("result.fate_line"), r.FateLine, inner),
		components.Section(s.tr.T("result.summary"), r.Summary, inner),
	}
	return components.Panel(strings.Join(parts, "\n\n"), cw)
}

func (s *Screen) handLabel(h string) string {
	switch h {
	case "left":
		return s.tr.T("scan.left")
	case "right":
		return s.tr.T("scan.right")
	}
	return h
}
