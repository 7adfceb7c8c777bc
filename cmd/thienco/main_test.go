package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-thienco/internal/config"
)

// isolate pins the environment to the default profile and keeps log files
// out of the real cache directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BOT_LANGUAGE", "vi")
	t.Setenv("TIMEZONE", config.DefaultTimezone)
	t.Setenv("USER_BIRTH_DAY", "14")
	t.Setenv("USER_BIRTH_MONTH", "4")
	t.Setenv("USER_BIRTH_YEAR", "2001")
	t.Setenv("USER_ELEMENT", "Kim")
	t.Setenv("USER_BRANCH", "Tỵ")
	t.Setenv("USER_VCARD", "")
	t.Setenv("FEED_DAYS", "30")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root, closeLogs := newRootCmd()
	defer closeLogs()

	var out, errOut bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestForecastCommand(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "forecast", "08/01/2026")
	require.NoError(t, err)
	assert.Contains(t, out, "Mậu Thân")
	assert.Contains(t, out, "08/01/2026")
	assert.NotContains(t, out, "{{")
}

func TestForecastCommand_English(t *testing.T) {
	isolate(t)
	t.Setenv("BOT_LANGUAGE", "en")

	out, _, err := execute(t, "", "forecast", "11/1/2026")
	require.NoError(t, err)
	assert.Contains(t, out, "Tân Hợi")
}

func TestForecastCommand_DefaultsToTomorrow(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "forecast")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestForecastCommand_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "forecast", "31/02/2026")
	assert.ErrorContains(t, err, config.ErrDateParse)

	_, _, err = execute(t, "", "forecast", "01/01/2026", "extra")
	assert.Error(t, err)

	t.Setenv("BOT_LANGUAGE", "fr")
	_, _, err = execute(t, "", "forecast", "01/01/2026")
	assert.ErrorContains(t, err, config.ErrLanguage)
}

func TestFeedCommand(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "forecast.ics")

	_, _, err := execute(t, "", "feed", "--days", "3", "--output", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cal, err := ical.NewDecoder(f).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 3)
}

func TestFeedCommand_StdoutUsesSettings(t *testing.T) {
	isolate(t)
	t.Setenv("FEED_DAYS", "2")

	out, _, err := execute(t, "", "feed")
	require.NoError(t, err)

	cal, err := ical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestFeedCommand_RejectsDays(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "feed", "--days", "0")
	assert.EqualError(t, err, config.ErrFeedDays)
}

func TestTokenSet(t *testing.T) {
	isolate(t)
	keyring.MockInit()

	_, errOut, err := execute(t, "  123:abc \n", "token", "set")
	require.NoError(t, err)
	assert.Contains(t, errOut, config.MsgTokenStored)

	stored, err := keyring.Get(config.KeyringService, config.KeyringUser)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", stored)

	_, _, err = execute(t, "\n", "token", "set")
	assert.EqualError(t, err, config.ErrTokenEmpty)
}

func TestServe_RequiresToken(t *testing.T) {
	isolate(t)
	keyring.MockInit()

	_, _, err := execute(t, "", "serve")
	assert.EqualError(t, err, config.ErrTokenRequired)
}

func TestVersionFlag(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, config.AppName)
	assert.Contains(t, out, config.Version)
}
