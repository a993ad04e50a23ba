package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██╗    ██████╗  █████╗ ██╗     ███╗   ███╗
 ██╔══██╗██║    ██╔══██╗██╔══██╗██║     ████╗ ████║
 ███████║██║    ██████╔╝███████║██║     ██╔████╔██║
 ██╔══██║██║    ██╔═══╝ ██╔══██║██║     ██║╚██╔╝██║
 ██║  ██║██║    ██║     ██║  ██║███████╗██║ ╚═╝ ██║
 ╚═╝  ╚═╝╚═╝    ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝`

const bannerCompact = "A I · P A L M"

// RenderBanner returns the AI PALM banner in the accent color.
// Uses a compact fallback for terminals narrower than 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
