package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toastd/domain/toasts"
)

// MockToastHistoryRepository implements ToastHistoryRepository for testing
type MockToastHistoryRepository struct {
	mock.Mock
}

func (m *MockToastHistoryRepository) Record(ctx context.Context, entry *toasts.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockToastHistoryRepository) Recent(ctx context.Context, limit int) ([]*toasts.HistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*toasts.HistoryEntry), args.Error(1)
}

func (m *MockToastHistoryRepository) ForToast(ctx context.Context, id toasts.ID) ([]*toasts.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*toasts.HistoryEntry), args.Error(1)
}

func (m *MockToastHistoryRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
