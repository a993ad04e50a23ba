package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	chatscreen "github.com/aipalm/aipalm/internal/screens/chat"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/ui/toast"
)

// Options holds everything the TUI needs. Settings and Readings are
// required; Analyzer and Chat are optional and the AI features are disabled
// without them.
type Options struct {
	Settings store.SettingsRepo
	Readings store.ReadingRepo

	Analyzer palm.Analyzer
	Chat     chatscreen.Replier

	// Toasts collects notifications. A Center with DefaultTTL is created
	// when nil.
	Toasts *toast.Center

	Logger *zap.Logger

	// Language is used until the user picks one.
	Language string

	// HandSelectDelay is the pause after choosing a hand.
	HandSelectDelay time.Duration

	// Initial is the first screen. Defaults to Splash.
	Initial screen.ID
}

// Validate reports missing required dependencies as a *router.ConfigError.
func (o Options) Validate() error {
	var missing []string
	if o.Settings == nil {
		missing = append(missing, "Settings")
	}
	if o.Readings == nil {
		missing = append(missing, "Readings")
	}
	if len(missing) > 0 {
		return &router.ConfigError{Component: "app", Missing: missing}
	}
	if o.Language != "" && !i18n.IsSupported(o.Language) {
		return &router.ConfigError{Component: "app", Reason: "unsupported language " + o.Language}
	}
	return nil
}

// LLMReady reports whether both AI features can run.
func (o Options) LLMReady() bool {
	return o.Analyzer != nil && o.Chat != nil
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Toasts == nil {
		o.Toasts = toast.NewCenter(toast.DefaultTTL)
	}
	if o.Language == "" {
		o.Language = i18n.DefaultLanguage
	}
	return o
}
