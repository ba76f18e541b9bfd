package processor

import (
	"github.com/juegoya/juegoya/internal/metrics"
)

// Processor turns roster events into community announcements.
type Processor struct {
	notifier Notifier
	metrics  metrics.Metrics
}
