// Package bot answers Telegram commands and delivers forecasts to the
// configured chat.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// API is the part of the Telegram Bot API the bot uses. *Client implements it.
type API interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error)
}

// Forecaster renders the bulletin for a date. *report.Builder implements it.
type Forecaster interface {
	MessageFor(date time.Time) (string, error)
}

// Translator resolves message keys. *i18n.Translator implements it.
type Translator interface {
	T(key string) string
	Tf(key string, data map[string]any) string
}

// Observer receives bot activity. *metrics.Metrics implements it.
type Observer interface {
	IncrementCommand(command string)
	ObserveMessage(err error)
}

// Bot serves a single chat.
type Bot struct {
	API        API
	Forecaster Forecaster
	Tr         Translator
	Clock      engine.Clock
	Location   *time.Location
	Observer   Observer

	ChatID       int64
	ScheduleHour int
	RetryDelay   time.Duration
}

// Run long-polls for updates until ctx is cancelled. Updates queued while the
// bot was offline are dropped.
func (b *Bot) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompBot)
	log.Info(config.MsgBotStart, config.LogKeyChat, b.ChatID)
	defer log.Info(config.MsgBotStop)

	offset := b.dropPending(ctx)
	for {
		updates, err := b.API.GetUpdates(ctx, offset, config.TelegramPollTimeout)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			log.Warn(config.MsgBotPollFailed, config.LogKeyError, err, config.LogKeyOffset, offset)
			if !b.sleep(ctx) {
				return nil
			}
			continue
		}

		for _, u := range updates {
			offset = max(offset, u.UpdateID+1)
			b.Handle(ctx, u)
		}
	}
}

// dropPending asks for the newest pending update and returns the offset after it.
func (b *Bot) dropPending(ctx context.Context) int64 {
	updates, err := b.API.GetUpdates(ctx, -1, 0)
	if err != nil || len(updates) == 0 {
		return 0
	}
	return updates[len(updates)-1].UpdateID + 1
}

func (b *Bot) sleep(ctx context.Context) bool {
	delay := b.RetryDelay
	if delay <= 0 {
		delay = config.TelegramRetryDelay
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Handle processes one update. Messages from other chats are ignored.
func (b *Bot) Handle(ctx context.Context, u Update) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	if u.Message.Chat.ID != b.ChatID {
		slog.Debug(config.MsgBotForeignChat,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyChat, u.Message.Chat.ID,
		)
		return
	}

	fields := strings.Fields(u.Message.Text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return
	}
	// Group chats address commands as /cmd@botname.
	cmd, _, _ := strings.Cut(fields[0], "@")
	args := fields[1:]

	slog.Info(config.MsgBotCommand,
		config.LogKeyComponent, config.CompBot,
		config.LogKeyCommand, cmd,
	)
	if b.Observer != nil {
		b.Observer.IncrementCommand(cmd)
	}

	switch cmd {
	case config.BotCmdStart:
		b.reply(ctx, b.Tr.Tf(config.TKeyBotWelcome, map[string]any{"Hour": b.ScheduleHour}))
	case config.BotCmdHelp:
		b.reply(ctx, b.Tr.T(config.TKeyBotHelp))
	case config.BotCmdForecast:
		if len(args) == 0 {
			b.reply(ctx, b.Tr.T(config.TKeyBotUsage))
			return
		}
		date, err := ParseDate(args[0], b.location())
		if err != nil {
			b.reply(ctx, b.Tr.Tf(config.TKeyBotBadDate, map[string]any{"Input": EscapeMarkdown(args[0])}))
			return
		}
		b.forecast(ctx, config.TKeyBotWorking, date)
	case config.BotCmdTomorrow:
		b.forecast(ctx, config.TKeyBotTomorrow, engine.Tomorrow(b.clock(), b.location()))
	default:
		b.reply(ctx, b.Tr.T(config.TKeyBotUnknownCmd))
	}
}

// forecast shows a progress note, renders the bulletin, then replaces the
// note with the result.
func (b *Bot) forecast(ctx context.Context, workingKey string, date time.Time) {
	noteID, _ := b.reply(ctx, b.Tr.T(workingKey))

	msg, err := b.Forecaster.MessageFor(date)

	if noteID != 0 {
		if derr := b.API.DeleteMessage(ctx, b.ChatID, noteID); derr != nil {
			slog.Debug(config.ErrTelegramAPI, config.LogKeyComponent, config.CompBot, config.LogKeyError, derr)
		}
	}
	if err != nil {
		slog.Error(config.ErrForecast,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyDate, date.Format(config.DateFormatFeed),
			config.LogKeyError, err,
		)
		b.reply(ctx, b.Tr.Tf(config.TKeyBotFailure, map[string]any{"Error": EscapeMarkdown(err.Error())}))
		return
	}
	b.reply(ctx, msg)
}

// Notify sends text to the configured chat.
func (b *Bot) Notify(ctx context.Context, text string) error {
	_, err := b.reply(ctx, text)
	return err
}

func (b *Bot) reply(ctx context.Context, text string) (int64, error) {
	id, err := b.API.SendMessage(ctx, b.ChatID, text)
	if b.Observer != nil {
		b.Observer.ObserveMessage(err)
	}
	if err != nil {
		slog.Error(config.ErrTelegramRequest,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyError, err,
		)
	}
	return id, err
}

func (b *Bot) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

func (b *Bot) clock() engine.Clock {
	if b.Clock == nil {
		return engine.RealClock{}
	}
	return b.Clock
}

// EscapeMarkdown escapes user-supplied or error text embedded in a
// Markdown reply, so an unmatched _ or * cannot make Telegram reject it.
func EscapeMarkdown(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// ParseDate reads a DD/MM/YYYY date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(config.DateFormatInput, strings.TrimSpace(s), loc)
}
