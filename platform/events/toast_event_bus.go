package events

import (
	"sync"

	"toastd/domain/events"
	"toastd/domain/toasts"
	"toastd/logging"
)

// ToastEventBus provides type-safe event publishing and subscription for
// toast lifecycle events.
type ToastEventBus struct {
	mu     sync.RWMutex
	logger *logging.Logger

	// Event handler slices for each event type
	spawnedHandlers   []func(events.ToastSpawnedEvent)
	pausedHandlers    []func(events.ToastPausedEvent)
	resumedHandlers   []func(events.ToastResumedEvent)
	dismissedHandlers []func(events.ToastDismissedEvent)
	removedHandlers   []func(events.ToastRemovedEvent)
}

var _ events.ToastEventPublisher = (*ToastEventBus)(nil)

// NewToastEventBus creates a new typed toast event bus
func NewToastEventBus() *ToastEventBus {
	return &ToastEventBus{
		logger: logging.Default().WithComponent("toast_event_bus"),
	}
}

// Subscribe methods for each event type

func (bus *ToastEventBus) OnToastSpawned(handler func(events.ToastSpawnedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.spawnedHandlers = append(bus.spawnedHandlers, handler)
}

func (bus *ToastEventBus) OnToastPaused(handler func(events.ToastPausedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.pausedHandlers = append(bus.pausedHandlers, handler)
}

func (bus *ToastEventBus) OnToastResumed(handler func(events.ToastResumedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.resumedHandlers = append(bus.resumedHandlers, handler)
}

func (bus *ToastEventBus) OnToastDismissed(handler func(events.ToastDismissedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.dismissedHandlers = append(bus.dismissedHandlers, handler)
}

func (bus *ToastEventBus) OnToastRemoved(handler func(events.ToastRemovedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.removedHandlers = append(bus.removedHandlers, handler)
}

// Publish methods for each event type

func (bus *ToastEventBus) PublishToastSpawned(event events.ToastSpawnedEvent) {
	bus.mu.RLock()
	handlers := append([]func(events.ToastSpawnedEvent){}, bus.spawnedHandlers...)
	bus.mu.RUnlock()
	dispatch(bus, "ToastSpawned", event.Toast.ID, handlers, event)
}

func (bus *ToastEventBus) PublishToastPaused(event events.ToastPausedEvent) {
	bus.mu.RLock()
	handlers := append([]func(events.ToastPausedEvent){}, bus.pausedHandlers...)
	bus.mu.RUnlock()
	dispatch(bus, "ToastPaused", event.Toast.ID, handlers, event)
}

func (bus *ToastEventBus) PublishToastResumed(event events.ToastResumedEvent) {
	bus.mu.RLock()
	handlers := append([]func(events.ToastResumedEvent){}, bus.resumedHandlers...)
	bus.mu.RUnlock()
	dispatch(bus, "ToastResumed", event.Toast.ID, handlers, event)
}

func (bus *ToastEventBus) PublishToastDismissed(event events.ToastDismissedEvent) {
	bus.mu.RLock()
	handlers := append([]func(events.ToastDismissedEvent){}, bus.dismissedHandlers...)
	bus.mu.RUnlock()
	dispatch(bus, "ToastDismissed", event.Toast.ID, handlers, event)
}

func (bus *ToastEventBus) PublishToastRemoved(event events.ToastRemovedEvent) {
	bus.mu.RLock()
	handlers := append([]func(events.ToastRemovedEvent){}, bus.removedHandlers...)
	bus.mu.RUnlock()
	dispatch(bus, "ToastRemoved", event.Toast.ID, handlers, event)
}

// dispatch runs every handler on its own goroutine so the publisher, which
// may hold the manager lock, never blocks on a subscriber.
func dispatch[E any](bus *ToastEventBus, name string, id toasts.ID, handlers []func(E), event E) {
	for _, handler := range handlers {
		go func(h func(E)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in "+name,
						"toast_id", id,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
