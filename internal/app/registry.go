package app

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/router"
	"github.com/aipalm/aipalm/internal/screen"
	"github.com/aipalm/aipalm/internal/screens"
	chatscreen "github.com/aipalm/aipalm/internal/screens/chat"
	"github.com/aipalm/aipalm/internal/screens/history"
	"github.com/aipalm/aipalm/internal/screens/home"
	"github.com/aipalm/aipalm/internal/screens/language"
	"github.com/aipalm/aipalm/internal/screens/onboarding"
	"github.com/aipalm/aipalm/internal/screens/palmresult"
	"github.com/aipalm/aipalm/internal/screens/palmscan"
	"github.com/aipalm/aipalm/internal/screens/placeholder"
	"github.com/aipalm/aipalm/internal/screens/settings"
	"github.com/aipalm/aipalm/internal/screens/splash"
	"github.com/aipalm/aipalm/internal/store"
)

const settingsTimeout = 2 * time.Second

// deps builds screens. Each screen gets a fresh translator so a language
// change applies from the next navigation on.
type deps struct {
	opts Options
	lang *atomic.String
}

func newDeps(opts Options) *deps {
	return &deps{opts: opts, lang: atomic.NewString(opts.Language)}
}

// translator returns a translator for the stored language, falling back to
// the configured one.
func (d *deps) translator() *i18n.Translator {
	lang := d.opts.Language
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	v, ok, err := d.opts.Settings.Get(ctx, store.KeyAppLanguage)
	switch {
	case err != nil:
		d.opts.Logger.Warn("read language setting", zap.Error(err))
	case ok && i18n.IsSupported(v):
		lang = v
	}
	d.lang.Store(lang)
	return i18n.New(lang)
}

func (d *deps) readingCount() int {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	list, err := d.opts.Readings.List(ctx, store.QueryOpts{})
	if err != nil {
		d.opts.Logger.Warn("count readings", zap.Error(err))
		return 0
	}
	return len(list)
}

func (d *deps) logger(id screen.ID) *zap.Logger {
	return d.opts.Logger.With(zap.String("screen", id.String()))
}

// registry binds every screen identifier. Destinations without a screen of
// their own show the placeholder.
func (d *deps) registry() *router.Registry {
	o := d.opts
	r := router.NewRegistry()

	for _, id := range screen.All() {
		r.Register(id, func(p router.Params) screen.Screen {
			return placeholder.New(d.translator(), id, p)
		})
	}

	r.Register(screen.Splash, func(router.Params) screen.Screen {
		return splash.New(o.Settings, d.translator(), d.logger(screen.Splash))
	})
	r.Register(screen.Language, func(p router.Params) screen.Screen {
		from, _ := p[screens.ParamFrom].(screen.ID)
		return language.New(o.Settings, o.Toasts, d.translator(), from, d.logger(screen.Language))
	})
	r.Register(screen.Onboarding, func(router.Params) screen.Screen {
		return onboarding.New(o.Settings, d.translator(), d.logger(screen.Onboarding))
	})
	r.Register(screen.Home, func(router.Params) screen.Screen {
		return home.New(d.translator(), home.Options{
			LLMReady: o.LLMReady(),
			Readings: d.readingCount(),
		})
	})
	r.Register(screen.PalmScan, func(router.Params) screen.Screen {
		return palmscan.New(d.translator(), palmscan.Options{
			Analyzer:        o.Analyzer,
			Notifier:        o.Toasts,
			Logger:          d.logger(screen.PalmScan),
			HandSelectDelay: o.HandSelectDelay,
		})
	})
	r.Register(screen.PalmResult, func(p router.Params) screen.Screen {
		return palmresult.New(d.translator(), p, o.Readings, o.Toasts, d.logger(screen.PalmResult))
	})
	r.Register(screen.AIChat, func(router.Params) screen.Screen {
		return chatscreen.New(d.translator(), o.Chat, d.logger(screen.AIChat))
	})
	r.Register(screen.History, func(router.Params) screen.Screen {
		return history.New(d.translator(), o.Readings, d.logger(screen.History))
	})
	r.Register(screen.Settings, func(router.Params) screen.Screen {
		return settings.New(d.translator(), o.Settings, o.Readings, o.Toasts, d.logger(screen.Settings))
	})
	return r
}
