package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncMatchesCreated(sport string)
	IncMatchesDeleted()
	IncJoins(role string)
	IncJoinsRejected(code string)
	IncLeaves()
	IncConfirmations()
	IncEventsPublished(eventType string)
	ObserveEventProcessingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
