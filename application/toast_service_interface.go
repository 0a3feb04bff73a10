package application

import (
	"context"
	"errors"

	"toastd/domain/toasts"
)

var (
	// ErrToastNotFound is returned for IDs that were never spawned or are already removed.
	ErrToastNotFound = errors.New("toast not found")
	// ErrInvalidSignal is returned for signal names the manager does not understand.
	ErrInvalidSignal = errors.New("invalid toast signal")
	// ErrHistoryDisabled is returned when no history store is configured.
	ErrHistoryDisabled = errors.New("toast history is disabled")
)

// ToastService provides toast lifecycle operations to the outer surfaces.
type ToastService interface {
	// Spawning
	Spawn(req toasts.Request) toasts.Instance
	SpawnFromAttributes(attrs map[string]string) toasts.Instance
	Defaults() toasts.Defaults

	// Lifecycle operations; unknown IDs yield ErrToastNotFound
	Pause(id toasts.ID) (toasts.Instance, error)
	Resume(id toasts.ID) (toasts.Instance, error)
	Dismiss(id toasts.ID) (toasts.Instance, error)
	Signal(id toasts.ID, signal toasts.Signal) error

	// Queries
	Get(id toasts.ID) (toasts.Instance, bool)
	Active() []toasts.Instance
	Positions() []toasts.Position

	// History
	History(ctx context.Context, limit int) ([]*toasts.HistoryEntry, error)
	ToastHistory(ctx context.Context, id toasts.ID) ([]*toasts.HistoryEntry, error)
}
