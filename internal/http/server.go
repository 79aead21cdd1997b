package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mauv0809/finding-friends/internal/config"
	"github.com/mauv0809/finding-friends/internal/http/handlers"
	"github.com/mauv0809/finding-friends/internal/metrics"
	"github.com/mauv0809/finding-friends/internal/notifier"
	"github.com/mauv0809/finding-friends/internal/pubsub"
	"github.com/mauv0809/finding-friends/internal/tracker"
)

func NewServer(tr *tracker.Tracker, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Tracker:        tr,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	origins := s.Cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(requestIDMiddleware)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	// Everything except /metrics goes through paramsMiddleware for verbose and dry_run.
	s.Router.Handle("/metrics", s.MetricsHandler)

	s.Router.Group(func(r chi.Router) {
		r.Use(paramsMiddleware)
		r.Get("/health", handlers.HealthCheckHandler())

		r.Route("/api", func(r chi.Router) {
			r.Get("/days", handlers.ListDaysHandler(s.Tracker))
			r.Route("/days/{date}", func(r chi.Router) {
				r.Get("/", handlers.GetDayHandler(s.Tracker))
				r.Put("/players", handlers.SetRosterHandler(s.Tracker))
				r.Get("/rounds", handlers.RoundDetailsHandler(s.Tracker))
				r.Post("/rounds", handlers.RecordRoundHandler(s.Tracker))
				r.Get("/stats", handlers.StatsHandler(s.Tracker))
				r.Get("/scoreboard", handlers.ScoreboardHandler(s.Tracker))
			})
			r.Get("/stats/{view}", handlers.StatsHandler(s.Tracker))
			r.Post("/stats/{view}/announce", handlers.AnnounceHandler(s.Tracker))
			r.Get("/export", handlers.ExportHandler(s.Tracker))
			r.Post("/import", handlers.ImportHandler(s.Tracker))
		})

		verify := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)
		r.Method(http.MethodPost, "/slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Tracker, s.Notifier), verify))
		r.Method(http.MethodPost, "/slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Tracker, s.Notifier), verify))

		r.Post("/pubsub/round-recorded", handlers.RoundRecordedHandler(s.Tracker, s.pubsub))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
