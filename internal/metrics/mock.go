package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesCreated      map[string]int
	matchesDeleted      int
	joins               map[string]int
	joinsRejected       map[string]int
	leaves              int
	confirmations       int
	eventsPublished     map[string]int
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchesCreated:      map[string]int{},
		joins:               map[string]int{},
		joinsRejected:       map[string]int{},
		eventsPublished:     map[string]int{},
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesCreated(sport string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated[sport]++
}

func (m *Mock) IncMatchesDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDeleted++
}

func (m *Mock) IncJoins(role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joins[role]++
}

func (m *Mock) IncJoinsRejected(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinsRejected[code]++
}

func (m *Mock) IncLeaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves++
}

func (m *Mock) IncConfirmations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations++
}

func (m *Mock) IncEventsPublished(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[eventType]++
}

func (m *Mock) ObserveEventProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesCreated returns how many matches were created for sport.
func (m *Mock) MatchesCreated(sport string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated[sport]
}

// MatchesDeleted returns the number of times IncMatchesDeleted was called.
func (m *Mock) MatchesDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDeleted
}

// Joins returns how many joins ended with role.
func (m *Mock) Joins(role string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joins[role]
}

// JoinsRejected returns how many joins were rejected with code.
func (m *Mock) JoinsRejected(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinsRejected[code]
}

// Leaves returns the number of times IncLeaves was called.
func (m *Mock) Leaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaves
}

// Confirmations returns the number of times IncConfirmations was called.
func (m *Mock) Confirmations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmations
}

// EventsPublished returns how many events of eventType were published.
func (m *Mock) EventsPublished(eventType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[eventType]
}

// ProcessingDurations returns every observed processing duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
