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
		MatchesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "juegoya_matches_created_total",
			Help: "The total number of matches created, by sport.",
		}, []string{"sport"}),
		MatchesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "juegoya_matches_deleted_total",
			Help: "The total number of matches deleted by their organizer.",
		}),
		Joins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "juegoya_joins_total",
			Help: "The total number of successful joins, by assigned role.",
		}, []string{"role"}),
		JoinsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "juegoya_joins_rejected_total",
			Help: "The total number of rejected joins, by rejection code.",
		}, []string{"code"}),
		Leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "juegoya_leaves_total",
			Help: "The total number of players that left a match.",
		}),
		Confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "juegoya_confirmations_total",
			Help: "The total number of attendance confirmations.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "juegoya_events_published_total",
			Help: "The total number of roster events published, by type.",
		}, []string{"type"}),
		EventProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "juegoya_event_processing_duration_seconds",
			Help:    "The duration of processing a single roster event.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "juegoya_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "juegoya_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "juegoya_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.MatchesDeleted,
		s.Joins,
		s.JoinsRejected,
		s.Leaves,
		s.Confirmations,
		s.EventsPublished,
		s.EventProcessingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated(sport string) {
	s.MatchesCreated.WithLabelValues(sport).Inc()
}

func (s *Service) IncMatchesDeleted() {
	s.MatchesDeleted.Inc()
}

func (s *Service) IncJoins(role string) {
	s.Joins.WithLabelValues(role).Inc()
}

func (s *Service) IncJoinsRejected(code string) {
	s.JoinsRejected.WithLabelValues(code).Inc()
}

func (s *Service) IncLeaves() {
	s.Leaves.Inc()
}

func (s *Service) IncConfirmations() {
	s.Confirmations.Inc()
}

func (s *Service) IncEventsPublished(eventType string) {
	s.EventsPublished.WithLabelValues(eventType).Inc()
}

func (s *Service) ObserveEventProcessingDuration(duration float64) {
	s.EventProcessingDuration.Observe(duration)
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
