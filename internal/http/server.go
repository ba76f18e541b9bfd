package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/juegoya/juegoya/internal/auth"
	"github.com/juegoya/juegoya/internal/config"
	"github.com/juegoya/juegoya/internal/http/handlers"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/processor"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/pubsub"
)

func NewServer(db handlers.Pinger, matches match.Store, profiles profile.Store, authenticator *auth.Authenticator, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		DB:             db,
		Matches:        matches,
		Profiles:       profiles,
		Auth:           authenticator,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      processor,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
		now:            time.Now,
	}

	server.routes()
	return server
}

// SetClock replaces the server's time source. Handlers read it on every request.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Server) clock() time.Time {
	return s.now()
}

func (s *Server) routes() {
	r := s.Router
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.Cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", s.MetricsHandler)
	r.Handle("/health", Chain(handlers.HealthCheckHandler(s.DB), paramsMiddleware))
	if token := s.Cfg.PubSub.PushToken; token != "" {
		r.Handle("/pubsub/roster-events", Chain(handlers.RosterEventsHandler(s.Processor, s.pubsub, token), paramsMiddleware))
	}

	baseURL := s.Cfg.PublicBaseURL
	r.Group(func(r chi.Router) {
		r.Use(requestMiddleware, s.sessionMiddleware)

		r.Get("/matches", handlers.ListMatchesHandler(s.Matches))
		r.Get("/matches/{id}", handlers.GetMatchHandler(s.Matches, s.Profiles, baseURL, s.clock))
		r.Get("/matches/{id}/share", handlers.ShareMatchHandler(s.Matches, baseURL))

		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Post("/matches", handlers.CreateMatchHandler(s.Matches, s.Metrics, s.pubsub, s.clock))
			r.Delete("/matches/{id}", handlers.DeleteMatchHandler(s.Matches, s.Metrics, s.pubsub, s.clock))
			r.Post("/matches/{id}/join", handlers.JoinMatchHandler(s.Matches, s.Metrics, s.pubsub, s.clock))
			r.Post("/matches/{id}/leave", handlers.LeaveMatchHandler(s.Matches, s.Metrics, s.pubsub, s.clock))
			r.Post("/matches/{id}/confirm", handlers.ConfirmMatchHandler(s.Matches, s.Metrics))

			r.Get("/me/profile", handlers.GetMyProfileHandler(s.Profiles))
			r.Put("/me/profile", handlers.PutMyProfileHandler(s.Profiles))
			r.Get("/me/matches", handlers.MyMatchesHandler(s.Matches, s.Profiles, s.clock))
			r.Get("/players/{id}", handlers.GetPlayerHandler(s.Profiles))
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
