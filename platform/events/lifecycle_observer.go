package events

import (
	"toastd/domain/events"
	"toastd/domain/toasts"
	"toastd/platform/clock"
)

// LifecycleObserver adapts manager transitions into published toast events.
type LifecycleObserver struct {
	publisher events.ToastEventPublisher
	clock     clock.Clock
}

var _ toasts.Observer = (*LifecycleObserver)(nil)

// NewLifecycleObserver creates an observer publishing to publisher. Event
// timestamps not carried by the snapshot are read from clk; nil means the
// wall clock.
func NewLifecycleObserver(publisher events.ToastEventPublisher, clk clock.Clock) *LifecycleObserver {
	if clk == nil {
		clk = clock.Real()
	}
	return &LifecycleObserver{publisher: publisher, clock: clk}
}

func (o *LifecycleObserver) ToastSpawned(inst toasts.Instance) {
	o.publisher.PublishToastSpawned(events.ToastSpawnedEvent{Toast: inst, Timestamp: inst.CreatedAt})
}

func (o *LifecycleObserver) ToastPaused(inst toasts.Instance) {
	o.publisher.PublishToastPaused(events.ToastPausedEvent{Toast: inst, Timestamp: o.clock.Now()})
}

func (o *LifecycleObserver) ToastResumed(inst toasts.Instance) {
	o.publisher.PublishToastResumed(events.ToastResumedEvent{Toast: inst, Timestamp: inst.StartedAt})
}

func (o *LifecycleObserver) ToastDismissed(inst toasts.Instance) {
	o.publisher.PublishToastDismissed(events.ToastDismissedEvent{
		Toast:     inst,
		Reason:    inst.DismissReason,
		Timestamp: inst.DismissedAt,
	})
}

// ToastRemoved reports the toast's lifetime from creation to removal.
func (o *LifecycleObserver) ToastRemoved(inst toasts.Instance) {
	now := o.clock.Now()
	o.publisher.PublishToastRemoved(events.ToastRemovedEvent{
		Toast:     inst,
		Lifetime:  now.Sub(inst.CreatedAt),
		Timestamp: now,
	})
}
