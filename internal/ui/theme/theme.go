package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: night sky with gold accents
var (
	Primary   = lipgloss.Color("#A78BFA") // Lavender
	Secondary = lipgloss.Color("#2DD4BF") // Moon teal
	Accent    = lipgloss.Color("#FBBF24") // Gold
	Success   = lipgloss.Color("#34D399") // Jade
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#F5F3FF") // Starlight
	TextDim   = lipgloss.Color("#A5A3C7") // Mist
	BgDark    = lipgloss.Color("#120B2E") // Midnight
	BgCard    = lipgloss.Color("#1E1645") // Indigo
	Border    = lipgloss.Color("#3B2F6B") // Dusk
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Heading labels a section of a reading.
	Heading = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)
)

// Components
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ButtonActive = lipgloss.NewStyle().
			Background(Accent).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	UserBubble = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Primary).
			Padding(0, 1)

	GuideBubble = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)
)
