// Package i18n provides the supported UI languages and localized strings.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLanguage is used when no language has been chosen.
const DefaultLanguage = "en"

// Language is a selectable UI and response language.
type Language struct {
	Code   string // BCP 47 code sent to the model, e.g. "hi"
	Name   string // English name
	Native string // name in the language itself
}

// SupportedLanguages lists the selectable languages in display order.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English", Native: "English"},
	{Code: "hi", Name: "Hindi", Native: "हिन्दी"},
	{Code: "es", Name: "Spanish", Native: "Español"},
	{Code: "fr", Name: "French", Native: "Français"},
	{Code: "it", Name: "Italian", Native: "Italiano"},
	{Code: "ko", Name: "Korean", Native: "한국어"},
}

var matcher = language.NewMatcher(tags())

func tags() []language.Tag {
	out := make([]language.Tag, len(SupportedLanguages))
	for i, l := range SupportedLanguages {
		out[i] = language.MustParse(l.Code)
	}
	return out
}

// Normalize maps any language tag (e.g. "fr-CA", "es_MX") to the closest
// supported code. Unknown or malformed tags yield DefaultLanguage.
func Normalize(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return SupportedLanguages[idx].Code
}

// IsSupported reports whether code is exactly one of SupportedLanguages.
func IsSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Lookup returns the Language for code.
func Lookup(code string) (Language, bool) {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	bundleErr  error
)

// Bundle returns the message bundle loaded from the embedded locale files.
func Bundle() (*goi18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		for _, l := range SupportedLanguages {
			path := fmt.Sprintf("locales/active.%s.toml", l.Code)
			if _, err := b.LoadMessageFileFS(localeFS, path); err != nil {
				bundleErr = fmt.Errorf("load %s: %w", path, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Translator resolves message IDs for one language, falling back to
// English for messages the language lacks.
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
}

// New creates a Translator for lang. The embedded bundle is validated by
// tests, so a load failure here is a build defect.
func New(lang string) *Translator {
	lang = Normalize(lang)
	b, err := Bundle()
	if err != nil {
		panic(err)
	}
	return &Translator{lang: lang, localizer: goi18n.NewLocalizer(b, lang, DefaultLanguage)}
}

// Lang returns the translator's language code.
func (t *Translator) Lang() string {
	return t.lang
}

// T returns the localized message for id. Missing messages render as id.
func (t *Translator) T(id string) string {
	return t.Tf(id, nil)
}

// Tf is T with template data.
func (t *Translator) Tf(id string, data map[string]any) string {
	s, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return s
}
