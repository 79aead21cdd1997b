package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RoundsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finding_friends_rounds_recorded_total",
			Help: "The total number of rounds scored and appended to a game day.",
		}, []string{"mode", "winner"}),
		RoundsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "finding_friends_rounds_rejected_total",
			Help: "The total number of round submissions rejected before scoring.",
		}),
		PersistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finding_friends_persistence_failures_total",
			Help: "The total number of failed state loads and saves.",
		}, []string{"op"}),
		StatsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "finding_friends_stats_duration_seconds",
			Help:    "The duration of building a stats report.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "finding_friends_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "finding_friends_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "finding_friends_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RoundsRecorded,
		s.RoundsRejected,
		s.PersistenceFailures,
		s.StatsDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRoundsRecorded(mode, winner string) {
	s.RoundsRecorded.WithLabelValues(mode, winner).Inc()
}

func (s *Service) IncRoundsRejected() {
	s.RoundsRejected.Inc()
}

func (s *Service) IncPersistenceFailures(op string) {
	s.PersistenceFailures.WithLabelValues(op).Inc()
}

func (s *Service) ObserveStatsDuration(duration float64) {
	s.StatsDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
