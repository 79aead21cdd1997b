package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RoundsRecorded      *prometheus.CounterVec
	RoundsRejected      prometheus.Counter
	PersistenceFailures *prometheus.CounterVec
	StatsDuration       prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
