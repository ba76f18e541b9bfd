package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/juegoya/juegoya/internal/auth"
	"github.com/juegoya/juegoya/internal/config"
	"github.com/juegoya/juegoya/internal/http/handlers"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/processor"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/pubsub"
)

type Server struct {
	DB             handlers.Pinger
	Matches        match.Store
	Profiles       profile.Store
	Auth           *auth.Authenticator
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Router         *chi.Mux
	pubsub         pubsub.PubSubClient
	now            func() time.Time
}
