package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/aipalm/aipalm/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is an optional interface for screens that need to know when the
// router tears them down. Results of work started by a closed screen must
// be discarded.
type Closer interface {
	Close()
}

// BackHandler is an optional interface for screens that handle the back key
// themselves instead of letting the router pop them.
type BackHandler interface {
	HandleBack() tea.Cmd
}
