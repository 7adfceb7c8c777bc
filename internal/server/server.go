// Package server exposes the forecast feed, a health endpoint and the Prometheus
// metrics over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-thienco/internal/config"
)

// cacheItem stores the rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123, as required by HTTP headers
}

// FeedRecorder counts feed requests by status code. *metrics.Metrics implements it.
type FeedRecorder interface {
	IncrementFeedRequest(status int)
}

// Health is the body of the health endpoint.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// FeedServer serves the iCalendar feed built by the report package.
type FeedServer struct {
	// cache is read on every request and written once per refresh, so an
	// atomic pointer keeps the read path lock-free.
	cache atomic.Pointer[cacheItem]

	Port     string
	Gatherer prometheus.Gatherer
	Recorder FeedRecorder
	now      func() time.Time
}

// New creates a server. A nil gatherer disables the metrics route.
func New(port string, gatherer prometheus.Gatherer, rec FeedRecorder) *FeedServer {
	return &FeedServer{
		Port:     port,
		Gatherer: gatherer,
		Recorder: rec,
		now:      time.Now,
	}
}

// Routes builds the chi router.
func (s *FeedServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(config.RouteRoot, s.handleRoot)
	r.Get(config.RouteHealth, s.handleHealth)
	r.Get(config.RouteFeed, s.handleFeed)
	r.Head(config.RouteFeed, s.handleFeed)
	if s.Gatherer != nil {
		r.Handle(config.RouteMetrics, promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Start listens on BindAddr:Port and blocks until ctx is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.BindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Routes(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	if cur := s.cache.Load(); cur != nil && cur.etag == etag {
		return
	}

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: s.now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// Watch renders the feed immediately and then every interval until ctx ends.
// A failed render keeps the previous feed.
func (s *FeedServer) Watch(ctx context.Context, interval time.Duration, render func() ([]byte, error)) error {
	refresh := func() {
		data, err := render()
		if err != nil {
			slog.Error(config.ErrFeedWrite,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
			return
		}
		s.Update(data)
		slog.Info(config.MsgFeedRefreshed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeySizeBytes, len(data),
		)
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

func (s *FeedServer) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	_, _ = io.WriteString(w, config.MsgRootBanner)
}

func (s *FeedServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	if err := json.NewEncoder(w).Encode(Health{
		Status:  config.HealthStatusOK,
		Service: config.AppBinary,
		Version: config.Version,
	}); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// handleFeed serves the ICS content with HTTP caching support.
func (s *FeedServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	status := s.serveFeed(w, r)
	if s.Recorder != nil {
		s.Recorder.IncrementFeedRequest(status)
	}
}

func (s *FeedServer) serveFeed(w http.ResponseWriter, r *http.Request) int {
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return http.StatusServiceUnavailable
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		if match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return http.StatusNotModified
		}
	} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		clientTime, err1 := time.Parse(http.TimeFormat, since)
		serverTime, err2 := time.Parse(http.TimeFormat, item.lastModified)
		if err1 == nil && err2 == nil && !serverTime.After(clientTime) {
			w.WriteHeader(http.StatusNotModified)
			return http.StatusNotModified
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
	return http.StatusOK
}
