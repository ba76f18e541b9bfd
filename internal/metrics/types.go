package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesCreated          *prometheus.CounterVec
	MatchesDeleted          prometheus.Counter
	Joins                   *prometheus.CounterVec
	JoinsRejected           *prometheus.CounterVec
	Leaves                  prometheus.Counter
	Confirmations           prometheus.Counter
	EventsPublished         *prometheus.CounterVec
	EventProcessingDuration prometheus.Histogram
	SlackNotifSent          prometheus.Counter
	SlackNotifFailed        prometheus.Counter
	StartupTimeSeconds      prometheus.Gauge
}
