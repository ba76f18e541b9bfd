package processor

import (
	"github.com/juegoya/juegoya/internal/notifier"
)

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
