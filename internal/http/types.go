package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/finding-friends/internal/config"
	"github.com/mauv0809/finding-friends/internal/metrics"
	"github.com/mauv0809/finding-friends/internal/notifier"
	"github.com/mauv0809/finding-friends/internal/pubsub"
	"github.com/mauv0809/finding-friends/internal/tracker"
)

type Server struct {
	Tracker        *tracker.Tracker
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         chi.Router
	pubsub         pubsub.PubSubClient
}
