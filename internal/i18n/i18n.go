// Package i18n loads the embedded message catalogues and translates keys.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-thienco/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys for one language.
// A nil Translator returns keys unchanged.
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
}

// NewBundle loads every active.<lang>.json file and returns the bundle with
// the detected language codes.
func NewBundle() (*goi18n.Bundle, []string, error) {
	bundle := goi18n.NewBundle(language.Vietnamese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocalesDir+"/"+name); err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}
	return bundle, detected, nil
}

// New returns a translator for lang. Unknown languages fall back to Vietnamese.
func New(lang string) (*Translator, error) {
	bundle, _, err := NewBundle()
	if err != nil {
		return nil, err
	}
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLanguage, err)
	}
	return &Translator{
		lang:      lang,
		localizer: goi18n.NewLocalizer(bundle, lang),
	}, nil
}

// Lang returns the requested language code.
func (t *Translator) Lang() string {
	if t == nil {
		return config.DefaultLanguage
	}
	return t.lang
}

// T translates key without template data.
func (t *Translator) T(key string) string {
	return t.Tf(key, nil)
}

// Tf translates key, executing its template with data.
// Missing keys are logged at debug level and returned as-is.
func (t *Translator) Tf(key string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
