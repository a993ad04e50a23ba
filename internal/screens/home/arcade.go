package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

const titleCompact = "✋ A I · P A L M ✋"

// renderTitle returns the greeting block.
func renderTitle(greeting, subtitle string, cw int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(titleCompact)
	g := theme.Title.Width(cw).Render(greeting)
	sub := theme.Subtitle.Width(cw).Render(subtitle)
	return title + "\n\n" + g + "\n" + sub
}

// renderStatsBar shows the saved reading count and active language.
func renderStatsBar(readings int, lang string, cw int) string {
	readingStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	langStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	stats := fmt.Sprintf("%s   %s",
		readingStyle.Render(fmt.Sprintf("✋ %d", readings)),
		langStyle.Render("☾ "+strings.ToUpper(lang)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLLMBanner warns that model-backed features need an API key.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to read palms and chat (see aipalm --help)")
}

// renderSkyBox renders the sky centered at content width.
func renderSkyBox(v SkyVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderSky(v))
}

// renderFrame wraps content in a double-border frame centered in the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
