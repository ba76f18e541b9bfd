package notifier

import (
	"sync"

	"github.com/juegoya/juegoya/internal/pubsub"
)

var _ Notifier = (*Mock)(nil)

// Call records one notification request.
type Call struct {
	Event  pubsub.RosterEvent
	DryRun bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendNewMatchNotificationCalls      []Call
	SendMatchFullNotificationCalls     []Call
	SendMatchCanceledNotificationCalls []Call

	// Err, when set, is returned by every Send method.
	Err error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendNewMatchNotificationCalls = nil
	m.SendMatchFullNotificationCalls = nil
	m.SendMatchCanceledNotificationCalls = nil
}

func (m *Mock) SendNewMatchNotification(event pubsub.RosterEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendNewMatchNotificationCalls = append(m.SendNewMatchNotificationCalls, Call{Event: event, DryRun: dryRun})
	return m.Err
}

func (m *Mock) SendMatchFullNotification(event pubsub.RosterEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchFullNotificationCalls = append(m.SendMatchFullNotificationCalls, Call{Event: event, DryRun: dryRun})
	return m.Err
}

func (m *Mock) SendMatchCanceledNotification(event pubsub.RosterEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCanceledNotificationCalls = append(m.SendMatchCanceledNotificationCalls, Call{Event: event, DryRun: dryRun})
	return m.Err
}

// Calls returns how many notifications of any kind were requested.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendNewMatchNotificationCalls) + len(m.SendMatchFullNotificationCalls) + len(m.SendMatchCanceledNotificationCalls)
}
