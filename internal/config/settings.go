package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/zalando/go-keyring"
)

// Settings holds the runtime configuration read from the environment.
type Settings struct {
	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`

	BirthDay   int    `env:"USER_BIRTH_DAY" envDefault:"14"`
	BirthMonth int    `env:"USER_BIRTH_MONTH" envDefault:"4"`
	BirthYear  int    `env:"USER_BIRTH_YEAR" envDefault:"2001"`
	Element    string `env:"USER_ELEMENT" envDefault:"Kim"`
	Branch     string `env:"USER_BRANCH" envDefault:"Tỵ"`
	VCardPath  string `env:"USER_VCARD"`
	VCardUser  string `env:"USER_VCARD_USER"`
	VCardPass  string `env:"USER_VCARD_PASSWORD"`

	ScheduleHour int    `env:"SCHEDULE_HOUR" envDefault:"20"`
	Timezone     string `env:"TIMEZONE" envDefault:"Asia/Ho_Chi_Minh"`
	Port         string `env:"PORT" envDefault:"8080"`
	Language     string `env:"BOT_LANGUAGE" envDefault:"vi"`
	FeedDays     int    `env:"FEED_DAYS" envDefault:"30"`
}

// Load parses the environment into Settings and checks the values that do not
// depend on the command being run.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	if err := s.check(); err != nil {
		return Settings{}, err
	}
	slog.Debug(MsgConfigLoaded,
		LogKeyComponent, CompConfig,
		LogKeyTimezone, s.Timezone,
		LogKeyHour, s.ScheduleHour,
		LogKeyLang, s.Language,
	)
	return s, nil
}

func (s Settings) check() error {
	if s.ScheduleHour < 0 || s.ScheduleHour > 23 {
		return errors.New(ErrScheduleHour)
	}
	if s.FeedDays < 1 || s.FeedDays > MaxFeedDays {
		return errors.New(ErrFeedDays)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, s.Language)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%s: %w", ErrTimezone, err)
	}
	return nil
}

// Validate ensures the settings required to talk to Telegram are present.
func (s Settings) Validate() error {
	if s.TelegramToken == "" {
		return errors.New(ErrTokenRequired)
	}
	if s.TelegramChatID == 0 {
		return errors.New(ErrChatIDRequired)
	}
	return nil
}

// Location returns the configured time zone. Load has already verified it.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ResolveToken fills TelegramToken from the OS keyring when the environment
// does not provide one. A missing keyring entry is not an error.
func (s *Settings) ResolveToken() error {
	if s.TelegramToken != "" {
		return nil
	}
	token, err := keyring.Get(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(MsgKeyringMiss, LogKeyComponent, CompConfig)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrKeyringRead, err)
	}
	s.TelegramToken = token
	return nil
}

// StoreToken saves the bot token in the OS keyring.
func StoreToken(token string) error {
	if token == "" {
		return errors.New(ErrTokenEmpty)
	}
	if err := keyring.Set(KeyringService, KeyringUser, token); err != nil {
		return fmt.Errorf("%s: %w", ErrKeyringWrite, err)
	}
	return nil
}
