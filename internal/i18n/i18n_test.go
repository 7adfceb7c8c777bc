package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/i18n"
)

func TestNewBundle_DetectsSupportedLanguages(t *testing.T) {
	bundle, langs, err := i18n.NewBundle()
	require.NoError(t, err)
	require.NotNil(t, bundle)
	assert.ElementsMatch(t, config.SupportedLanguages, langs)
}

func TestTranslator(t *testing.T) {
	vi, err := i18n.New("vi")
	require.NoError(t, err)
	en, err := i18n.New("en")
	require.NoError(t, err)

	assert.Equal(t, "vi", vi.Lang())
	assert.Equal(t, " (nhuận)", vi.T(config.TKeyReportLunarLeap))
	assert.Equal(t, " (leap)", en.T(config.TKeyReportLunarLeap))
	assert.Equal(t, "Kim", vi.T(config.TKeyPrefixElementName+"metal"))
	assert.Equal(t, "Metal", en.T(config.TKeyPrefixElementName+"metal"))
}

func TestTranslator_TemplateData(t *testing.T) {
	en, err := i18n.New("en")
	require.NoError(t, err)

	got := en.Tf(config.TKeyReportLuck, map[string]any{"Score": 7, "Stars": "⭐⭐"})
	assert.Equal(t, "Luck: *7/10* ⭐⭐", got)
}

func TestTranslator_FallsBack(t *testing.T) {
	fr, err := i18n.New("fr")
	require.NoError(t, err)
	assert.Equal(t, "Hưu", fr.T(config.TKeyVitalityResting), "unknown languages use the Vietnamese catalogue")

	assert.Equal(t, "no_such_key", fr.T("no_such_key"))

	var nilT *i18n.Translator
	assert.Equal(t, config.TKeyBotHelp, nilT.T(config.TKeyBotHelp))
	assert.Equal(t, config.DefaultLanguage, nilT.Lang())
}

func TestNew_RejectsMalformedTag(t *testing.T) {
	_, err := i18n.New("not a language!")
	assert.Error(t, err)
}
