package events

import (
	"time"

	"toastd/domain/events"
)

// MetricsRecorder defines the counters fed by toast lifecycle events
type MetricsRecorder interface {
	ToastSpawned(variant, position string)
	ToastPaused()
	ToastResumed()
	ToastDismissed(reason string)
	ToastRemoved(lifetime time.Duration)
}

// MetricsEventHandlers converts toast events into metric updates
type MetricsEventHandlers struct {
	metrics MetricsRecorder
}

// NewMetricsEventHandlers creates event handlers for metrics
func NewMetricsEventHandlers(metrics MetricsRecorder) *MetricsEventHandlers {
	return &MetricsEventHandlers{metrics: metrics}
}

// RegisterHandlers registers all metrics event handlers with the event bus
func (h *MetricsEventHandlers) RegisterHandlers(eventBus *ToastEventBus) {
	eventBus.OnToastSpawned(h.handleToastSpawned)
	eventBus.OnToastPaused(h.handleToastPaused)
	eventBus.OnToastResumed(h.handleToastResumed)
	eventBus.OnToastDismissed(h.handleToastDismissed)
	eventBus.OnToastRemoved(h.handleToastRemoved)
}

func (h *MetricsEventHandlers) handleToastSpawned(event events.ToastSpawnedEvent) {
	h.metrics.ToastSpawned(string(event.Toast.Request.Variant), string(event.Toast.Request.Position))
}

func (h *MetricsEventHandlers) handleToastPaused(events.ToastPausedEvent) {
	h.metrics.ToastPaused()
}

func (h *MetricsEventHandlers) handleToastResumed(events.ToastResumedEvent) {
	h.metrics.ToastResumed()
}

func (h *MetricsEventHandlers) handleToastDismissed(event events.ToastDismissedEvent) {
	h.metrics.ToastDismissed(string(event.Reason))
}

func (h *MetricsEventHandlers) handleToastRemoved(event events.ToastRemovedEvent) {
	h.metrics.ToastRemoved(event.Lifetime)
}
