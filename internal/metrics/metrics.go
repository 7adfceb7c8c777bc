package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tartampluch/go-thienco/internal/engine"
)

const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	ForecastsComputed prometheus.Counter
	LuckScore         prometheus.Histogram
	MessagesSent      *prometheus.CounterVec
	CommandsHandled   *prometheus.CounterVec
	FeedRequests      *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ForecastsComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "thienco_forecasts_computed_total",
			Help: "Total number of bulletins computed",
		}),
		LuckScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "thienco_luck_score",
			Help:    "Distribution of computed luck scores",
			Buckets: prometheus.LinearBuckets(engine.MinLuck, 1, engine.MaxLuck-engine.MinLuck+1),
		}),
		MessagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "thienco_telegram_messages_total",
			Help: "Telegram messages by outcome",
		}, []string{"outcome"}),
		CommandsHandled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "thienco_bot_commands_total",
			Help: "Bot commands handled, by command",
		}, []string{"command"}),
		FeedRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "thienco_feed_requests_total",
			Help: "Calendar feed requests by HTTP status",
		}, []string{"status"}),
	}
}

// ObserveForecast records one computed bulletin.
func (m *Metrics) ObserveForecast(v engine.Verdict) {
	m.ForecastsComputed.Inc()
	m.LuckScore.Observe(float64(v.LuckScore))
}

// ObserveMessage records a Telegram send attempt.
func (m *Metrics) ObserveMessage(err error) {
	outcome := OutcomeSent
	if err != nil {
		outcome = OutcomeFailed
	}
	m.MessagesSent.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementCommand(command string) {
	m.CommandsHandled.WithLabelValues(command).Inc()
}

func (m *Metrics) IncrementFeedRequest(status int) {
	m.FeedRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}
