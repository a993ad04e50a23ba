package palmscan

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/components"
	"github.com/aipalm/aipalm/internal/ui/theme"
	"github.com/aipalm/aipalm/internal/wizard"
)

const palmGuideArt = `   ╭╮╭╮╭╮
 ╭╮││││││
 ││││││││╭╮
 │        ││
 │   ✋    │
 ╰╮      ╭╯
  ╰──────╯`

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.wiz.Step() {
	case wizard.StepHandSelect:
		body = s.viewHandSelect(cw)
	case wizard.StepGuide:
		body = s.viewGuide(cw)
	case wizard.StepUpload:
		body = s.viewUpload(cw)
	case wizard.StepAnalyzing:
		body = s.viewAnalyzing(cw)
	}

	steps := components.Steps{
		Current: int(s.wiz.Step()),
		Total:   int(wizard.StepAnalyzing) + 1,
	}.View()

	return components.Centered(steps+"\n\n"+body, width, height)
}

func (s *Screen) viewHandSelect(cw int) string {
	return strings.Join([]string{
		theme.Title.Width(cw).Render(s.tr.T("scan.select_hand")),
		"",
		s.hands.View(),
	}, "\n")
}

func (s *Screen) viewGuide(cw int) string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(palmGuideArt)
	text := theme.Body.Width(cw - 6).Render(s.tr.T("scan.guide.body"))
	return strings.Join([]string{
		theme.Title.Width(cw).Render(s.tr.T("scan.guide.title")),
		"",
		components.Panel(art+"\n\n"+text, cw),
		"",
		components.NewButton("Enter", true, nil).View(),
	}, "\n")
}

func (s *Screen) viewUpload(cw int) string {
	lines := []string{
		theme.Title.Width(cw).Render(s.tr.T("scan.upload.title")),
		"",
		components.Panel(s.input.View(), cw),
	}
	if s.inputErr != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.inputErr))
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) viewAnalyzing(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(s.spinner.View() + "  " + theme.Hint.Render(s.tr.T("scan.analyzing")))
}
