package events

import (
	"time"

	"toastd/domain/toasts"
)

// ToastSpawnedEvent represents a toast that was mounted and, if timed, armed
type ToastSpawnedEvent struct {
	Toast     toasts.Instance
	Timestamp time.Time
}

// ToastPausedEvent represents a countdown frozen by hover
type ToastPausedEvent struct {
	Toast     toasts.Instance
	Timestamp time.Time
}

// ToastResumedEvent represents a countdown re-armed for its remaining time
type ToastResumedEvent struct {
	Toast     toasts.Instance
	Timestamp time.Time
}

// ToastDismissedEvent represents the start of a toast's exit transition
type ToastDismissedEvent struct {
	Toast     toasts.Instance
	Reason    toasts.DismissReason
	Timestamp time.Time
}

// ToastRemovedEvent represents a toast detached after its exit transition
type ToastRemovedEvent struct {
	Toast     toasts.Instance
	Lifetime  time.Duration
	Timestamp time.Time
}
