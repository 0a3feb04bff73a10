package toasts

import "time"

// HistoryEvent names a lifecycle transition recorded in the history log.
type HistoryEvent string

const (
	HistorySpawned   HistoryEvent = "spawned"
	HistoryPaused    HistoryEvent = "paused"
	HistoryResumed   HistoryEvent = "resumed"
	HistoryDismissed HistoryEvent = "dismissed"
	HistoryRemoved   HistoryEvent = "removed"
)

// HistoryEntry is one persisted lifecycle transition.
type HistoryEntry struct {
	ID         int64
	ToastID    ID
	Event      HistoryEvent
	Title      string
	Variant    Variant
	Position   Position
	Duration   time.Duration
	Remaining  time.Duration
	Reason     DismissReason
	OccurredAt time.Time
}

// NewHistoryEntry captures the parts of a snapshot worth keeping.
func NewHistoryEntry(event HistoryEvent, inst Instance, at time.Time) *HistoryEntry {
	return &HistoryEntry{
		ToastID:    inst.ID,
		Event:      event,
		Title:      inst.Request.Title,
		Variant:    inst.Request.Variant,
		Position:   inst.Request.Position,
		Duration:   inst.Duration,
		Remaining:  inst.Remaining,
		Reason:     inst.DismissReason,
		OccurredAt: at,
	}
}
