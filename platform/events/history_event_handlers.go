package events

import (
	"context"
	"time"

	"toastd/domain/contracts"
	"toastd/domain/events"
	"toastd/domain/toasts"
	"toastd/logging"
)

// HistoryEventHandlers records toast lifecycle events in the history store
type HistoryEventHandlers struct {
	repo    contracts.ToastHistoryRepository
	timeout time.Duration
	logger  *logging.Logger
}

// NewHistoryEventHandlers creates event handlers that persist lifecycle transitions
func NewHistoryEventHandlers(repo contracts.ToastHistoryRepository) *HistoryEventHandlers {
	return &HistoryEventHandlers{
		repo:    repo,
		timeout: 5 * time.Second,
		logger:  logging.Default().WithComponent("history_events"),
	}
}

// RegisterHandlers registers all history event handlers with the event bus
func (h *HistoryEventHandlers) RegisterHandlers(eventBus *ToastEventBus) {
	eventBus.OnToastSpawned(h.handleToastSpawned)
	eventBus.OnToastPaused(h.handleToastPaused)
	eventBus.OnToastResumed(h.handleToastResumed)
	eventBus.OnToastDismissed(h.handleToastDismissed)
	eventBus.OnToastRemoved(h.handleToastRemoved)
}

func (h *HistoryEventHandlers) handleToastSpawned(event events.ToastSpawnedEvent) {
	h.record(toasts.NewHistoryEntry(toasts.HistorySpawned, event.Toast, event.Timestamp))
}

func (h *HistoryEventHandlers) handleToastPaused(event events.ToastPausedEvent) {
	h.record(toasts.NewHistoryEntry(toasts.HistoryPaused, event.Toast, event.Timestamp))
}

func (h *HistoryEventHandlers) handleToastResumed(event events.ToastResumedEvent) {
	h.record(toasts.NewHistoryEntry(toasts.HistoryResumed, event.Toast, event.Timestamp))
}

func (h *HistoryEventHandlers) handleToastDismissed(event events.ToastDismissedEvent) {
	entry := toasts.NewHistoryEntry(toasts.HistoryDismissed, event.Toast, event.Timestamp)
	entry.Reason = event.Reason
	h.record(entry)
}

func (h *HistoryEventHandlers) handleToastRemoved(event events.ToastRemovedEvent) {
	h.record(toasts.NewHistoryEntry(toasts.HistoryRemoved, event.Toast, event.Timestamp))
}

func (h *HistoryEventHandlers) record(entry *toasts.HistoryEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.repo.Record(ctx, entry); err != nil {
		h.logger.ToastError("Failed to record toast history", err, string(entry.ToastID),
			"event", entry.Event)
	}
}
