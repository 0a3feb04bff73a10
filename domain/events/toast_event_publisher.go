package events

// ToastEventPublisher defines the interface for publishing toast lifecycle events.
type ToastEventPublisher interface {
	PublishToastSpawned(event ToastSpawnedEvent)
	PublishToastPaused(event ToastPausedEvent)
	PublishToastResumed(event ToastResumedEvent)
	PublishToastDismissed(event ToastDismissedEvent)
	PublishToastRemoved(event ToastRemovedEvent)
}
