package contracts

import (
	"context"
	"time"

	"toastd/domain/toasts"
)

// ToastHistoryRepository persists the lifecycle transitions of toasts.
type ToastHistoryRepository interface {
	Record(ctx context.Context, entry *toasts.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]*toasts.HistoryEntry, error)
	ForToast(ctx context.Context, id toasts.ID) ([]*toasts.HistoryEntry, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}
