package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tartampluch/go-thienco/internal/advice"
	"github.com/tartampluch/go-thienco/internal/bot"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
	"github.com/tartampluch/go-thienco/internal/i18n"
	"github.com/tartampluch/go-thienco/internal/lunar"
	"github.com/tartampluch/go-thienco/internal/metrics"
	"github.com/tartampluch/go-thienco/internal/profile"
	"github.com/tartampluch/go-thienco/internal/report"
	"github.com/tartampluch/go-thienco/internal/scheduler"
	"github.com/tartampluch/go-thienco/internal/server"
)

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (like closing the
// log file) run before the process exits.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle and exit codes.
func runMain() int {
	// Root context cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root, closeLogs := newRootCmd()
	defer closeLogs()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// newRootCmd builds the command tree. The returned func closes the log file
// opened by the persistent pre-run hook.
func newRootCmd() (*cobra.Command, func()) {
	var (
		debugMode bool
		logCloser io.Closer
	)

	root := &cobra.Command{
		Use:           config.AppBinary,
		Short:         config.DescRoot,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Logs go to stderr so that forecast and feed output stay clean on stdout.
			logCloser = setupLogging(debugMode, cmd.ErrOrStderr())
			logStartupInfo(cmd.Name())
		},
	}
	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		newServeCmd(),
		newForecastCmd(),
		newFeedCmd(),
		newTokenCmd(),
	)

	return root, func() {
		if logCloser != nil {
			_ = logCloser.Close() // Best effort close
		}
	}
}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdServe,
		Short: config.DescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}
			if err := s.ResolveToken(); err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), s)
		},
	}
}

func newForecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdForecast,
		Short: config.DescForecast,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}
			builder, _, err := newBuilder(cmd.Context(), s)
			if err != nil {
				return err
			}

			date := engine.Tomorrow(engine.RealClock{}, s.Location())
			if len(args) == 1 {
				if date, err = bot.ParseDate(args[0], s.Location()); err != nil {
					return fmt.Errorf("%s: %w", config.ErrDateParse, err)
				}
			}

			msg, err := builder.MessageFor(date)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}
}

func newFeedCmd() *cobra.Command {
	var (
		days   int
		output string
	)
	cmd := &cobra.Command{
		Use:   config.CmdFeed,
		Short: config.DescFeed,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed(config.FlagDays) {
				days = s.FeedDays
			}
			builder, _, err := newBuilder(cmd.Context(), s)
			if err != nil {
				return err
			}

			now := time.Now().In(s.Location())
			data, err := builder.Feed(now, days, now)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrFeedWrite, err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, config.FlagDays, config.DefaultFeedDays, config.FlagDescDays)
	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutput)
	return cmd
}

func newTokenCmd() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   config.CmdToken,
		Short: config.DescToken,
	}
	tokenCmd.AddCommand(&cobra.Command{
		Use:   config.CmdTokenSet,
		Short: config.DescTokenSet,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			var token string
			if scanner.Scan() {
				token = strings.TrimSpace(scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			if err := config.StoreToken(token); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.ErrOrStderr(), config.MsgTokenStored)
			return err
		},
	})
	return tokenCmd
}

// -----------------------------------------------------------------------------
// Wiring
// -----------------------------------------------------------------------------

// newBuilder wires the profile, the lunar calendar, the engine and the
// translator into a report builder.
func newBuilder(ctx context.Context, s config.Settings) (*report.Builder, *i18n.Translator, error) {
	p, err := profile.Load(ctx, s, nil)
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.New(lunar.New(), p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrProfile, err)
	}
	tr, err := i18n.New(s.Language)
	if err != nil {
		return nil, nil, err
	}
	return report.NewBuilder(eng, advice.New(nil), tr), tr, nil
}

// serve runs the HTTP server, the feed refresher, the Telegram bot and the
// daily scheduler until ctx is cancelled or one of them fails.
func serve(ctx context.Context, s config.Settings) error {
	builder, tr, err := newBuilder(ctx, s)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	builder.OnForecast = m.ObserveForecast
	loc := s.Location()
	clock := engine.RealClock{}

	b := &bot.Bot{
		API:          bot.NewClient(s.TelegramToken),
		Forecaster:   builder,
		Tr:           tr,
		Clock:        clock,
		Location:     loc,
		Observer:     m,
		ChatID:       s.TelegramChatID,
		ScheduleHour: s.ScheduleHour,
		RetryDelay:   config.TelegramRetryDelay,
	}
	sched := &scheduler.Scheduler{
		Forecaster: builder,
		Notifier:   b,
		Tr:         tr,
		Clock:      clock,
		Location:   loc,
		Hour:       s.ScheduleHour,
	}
	srv := server.New(s.Port, prometheus.DefaultGatherer, m)

	render := func() ([]byte, error) {
		now := clock.Now().In(loc)
		return builder.Feed(now, s.FeedDays, now)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })
	g.Go(func() error { return srv.Watch(gctx, config.FeedRefreshInterval, render) })
	g.Go(func() error { return b.Run(gctx) })
	g.Go(func() error { return sched.Run(gctx) })

	err = g.Wait()
	if err == nil || errors.Is(err, context.Canceled) {
		slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
		return nil
	}
	return err
}

// -----------------------------------------------------------------------------
// Logging & Build Info
// -----------------------------------------------------------------------------

func versionString() string {
	return fmt.Sprintf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(command string) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCommand, command,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger to write JSON to console
// and to a log file in the user's cache directory.
func setupLogging(debugMode bool, console io.Writer) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			_, _ = fmt.Fprintf(console, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
