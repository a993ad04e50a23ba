package home

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// SkyVariant selects the sky art shown above the menu.
type SkyVariant int

const (
	SkyNight SkyVariant = iota // Moon and stars
	SkyDawn                    // Rising sun
	SkyDay                     // Full sun
)

const skyNight = `   ✦    .   ☾   .
 .   ✧     .    ✦
    .   ✦    .`

const skyDawn = `  .  \ | /  .
 ── ( ☀ ) ──
~~~~~~~~~~~~~~~`

const skyDay = `   \  |  /
 ──  ☀  ──
   /  |  \`

// SkyFor picks the variant for the local hour.
func SkyFor(t time.Time) SkyVariant {
	switch h := t.Hour(); {
	case h >= 5 && h < 9:
		return SkyDawn
	case h >= 9 && h < 18:
		return SkyDay
	default:
		return SkyNight
	}
}

// RenderSky returns the sky art for the given variant.
func RenderSky(v SkyVariant) string {
	art := skyNight
	fg := theme.Primary

	switch v {
	case SkyDawn:
		art = skyDawn
		fg = theme.Accent
	case SkyDay:
		art = skyDay
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
