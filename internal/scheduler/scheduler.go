// Package scheduler sends tomorrow's forecast once a day.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tartampluch/go-thienco/internal/bot"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// Forecaster renders the bulletin for a date. *report.Builder implements it.
type Forecaster interface {
	MessageFor(date time.Time) (string, error)
}

// Notifier delivers a message to the user. *bot.Bot implements it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Translator resolves message keys. *i18n.Translator implements it.
type Translator interface {
	Tf(key string, data map[string]any) string
}

// Scheduler fires at Hour:00 in Location every day.
type Scheduler struct {
	Forecaster Forecaster
	Notifier   Notifier
	Tr         Translator
	Clock      engine.Clock
	Location   *time.Location
	Hour       int

	// Schedule replaces the daily schedule derived from Hour. It accepts the
	// standard five-field cron syntax and descriptors such as "@every 1h".
	Schedule string
}

// DailySchedule is the cron expression for hour:00 every day.
func DailySchedule(hour int) string {
	return fmt.Sprintf("0 %d * * *", hour)
}

// NextRun returns the first hour:00 in loc strictly after now.
func NextRun(now time.Time, hour int, loc *time.Location) (time.Time, error) {
	sched, err := cron.ParseStandard(DailySchedule(hour))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrSchedule, err)
	}
	return sched.Next(now.In(loc)), nil
}

// Run starts the cron loop and blocks until ctx is cancelled. A failed run
// is reported and the next one stays scheduled.
func (s *Scheduler) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompScheduler)
	logger := cronLogger{log: log}

	c := cron.New(
		cron.WithLocation(s.location()),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	var id cron.EntryID
	id, err := c.AddFunc(s.schedule(), func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Error(config.ErrDailySend, config.LogKeyError, err)
		}
		log.Info(config.MsgSchedulerNext, config.LogKeyNextRun, c.Entry(id).Next.Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSchedule, err)
	}

	c.Start()
	log.Info(config.MsgSchedulerStart,
		config.LogKeyHour, s.Hour,
		config.LogKeyTimezone, s.location().String(),
		config.LogKeySchedule, s.schedule(),
	)
	log.Info(config.MsgSchedulerNext, config.LogKeyNextRun, c.Entry(id).Next.Format(time.RFC3339))

	<-ctx.Done()
	log.Info(config.MsgSchedulerStop)
	<-c.Stop().Done()
	return nil
}

// RunOnce computes tomorrow's bulletin and sends it. When the forecast fails,
// an error notice is sent instead.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	target := engine.Tomorrow(s.clock(), s.location())

	msg, err := s.Forecaster.MessageFor(target)
	if err != nil {
		notice := s.Tr.Tf(config.TKeyDailyFailure, map[string]any{"Error": bot.EscapeMarkdown(err.Error())})
		if nerr := s.Notifier.Notify(ctx, notice); nerr != nil {
			slog.Error(config.ErrTelegramRequest,
				config.LogKeyComponent, config.CompScheduler,
				config.LogKeyError, nerr,
			)
		}
		return fmt.Errorf("%s: %w", config.ErrDailySend, err)
	}

	if err := s.Notifier.Notify(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDailySend, err)
	}
	slog.Info(config.MsgDailySent,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyDate, target.Format(config.DateFormatFeed),
	)
	return nil
}

func (s *Scheduler) schedule() string {
	if s.Schedule != "" {
		return s.Schedule
	}
	return DailySchedule(s.Hour)
}

func (s *Scheduler) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *Scheduler) clock() engine.Clock {
	if s.Clock == nil {
		return engine.RealClock{}
	}
	return s.Clock
}

// cronLogger routes cron's internal events to slog. Its wake-up chatter goes
// to debug level.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, config.LogKeyError, err)...)
}
