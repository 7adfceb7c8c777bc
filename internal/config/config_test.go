package config_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/zalando/go-keyring"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"UIDNamespace", config.UIDNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Thien-Co/"))
}

// TestTimeouts ensures the long-polling window fits inside the HTTP client timeout.
func TestTimeouts(t *testing.T) {
	poll := time.Duration(config.TelegramPollTimeout) * time.Second
	assert.Less(t, poll, config.HTTPTimeout, "client must outlive the server-side poll")
	assert.Greater(t, config.ShutdownTimeout, time.Duration(0))
}

// clearEnv unsets the variables Load reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"USER_BIRTH_DAY", "USER_BIRTH_MONTH", "USER_BIRTH_YEAR",
		"USER_ELEMENT", "USER_BRANCH", "USER_VCARD", "USER_VCARD_USER", "USER_VCARD_PASSWORD",
		"SCHEDULE_HOUR", "TIMEZONE", "PORT", "BOT_LANGUAGE", "FEED_DAYS",
	} {
		t.Setenv(key, "") // registers the restore
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	s, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBirthDay, s.BirthDay)
	assert.Equal(t, config.DefaultBirthMonth, s.BirthMonth)
	assert.Equal(t, config.DefaultBirthYear, s.BirthYear)
	assert.Equal(t, config.DefaultElement, s.Element)
	assert.Equal(t, config.DefaultBranch, s.Branch)
	assert.Equal(t, config.DefaultScheduleHour, s.ScheduleHour)
	assert.Equal(t, config.DefaultTimezone, s.Timezone)
	assert.Equal(t, config.DefaultPort, s.Port)
	assert.Equal(t, config.DefaultLanguage, s.Language)
	assert.Equal(t, config.DefaultFeedDays, s.FeedDays)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("USER_BIRTH_DAY", "3")
	t.Setenv("SCHEDULE_HOUR", "7")
	t.Setenv("BOT_LANGUAGE", "en")

	s, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", s.TelegramToken)
	assert.Equal(t, int64(42), s.TelegramChatID)
	assert.Equal(t, 3, s.BirthDay)
	assert.Equal(t, 7, s.ScheduleHour)
	assert.Equal(t, "en", s.Language)
	assert.NoError(t, s.Validate())
}

// The gettext LANGUAGE variable uses a colon-separated priority list and must
// not leak into the bot language.
func TestLoad_IgnoresGettextLanguage(t *testing.T) {
	clearEnv(t)
	t.Setenv("LANGUAGE", "en_US:en")

	s, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLanguage, s.Language)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"HourTooLarge", "SCHEDULE_HOUR", "24", config.ErrScheduleHour},
		{"NegativeHour", "SCHEDULE_HOUR", "-1", config.ErrScheduleHour},
		{"NoFeedDays", "FEED_DAYS", "0", config.ErrFeedDays},
		{"UnknownLanguage", "BOT_LANGUAGE", "fr", config.ErrLanguage},
		{"UnknownZone", "TIMEZONE", "Mars/Olympus_Mons", config.ErrTimezone},
		{"NotANumber", "USER_BIRTH_DAY", "fourteen", config.ErrEnvParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RequiresTelegram(t *testing.T) {
	s := config.Settings{}
	assert.EqualError(t, s.Validate(), config.ErrTokenRequired)

	s.TelegramToken = "x"
	assert.EqualError(t, s.Validate(), config.ErrChatIDRequired)
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	s := config.Settings{Timezone: "Nowhere/Land"}
	assert.Equal(t, time.UTC, s.Location())

	s.Timezone = config.DefaultTimezone
	assert.Equal(t, config.DefaultTimezone, s.Location().String())
}

func TestResolveToken_Keyring(t *testing.T) {
	keyring.MockInit()

	s := config.Settings{}
	require.NoError(t, s.ResolveToken())
	assert.Empty(t, s.TelegramToken, "missing keyring entry leaves the token empty")

	require.NoError(t, config.StoreToken("999:secret"))
	require.NoError(t, s.ResolveToken())
	assert.Equal(t, "999:secret", s.TelegramToken)

	// Environment wins over the keyring.
	s.TelegramToken = "from-env"
	require.NoError(t, s.ResolveToken())
	assert.Equal(t, "from-env", s.TelegramToken)
}

func TestStoreToken_Empty(t *testing.T) {
	keyring.MockInit()
	assert.EqualError(t, config.StoreToken(""), config.ErrTokenEmpty)
}
