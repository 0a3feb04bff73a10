package helpers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toastd/database"
	"toastd/domain/contracts"
	"toastd/domain/toasts"
	"toastd/logging"
	"toastd/test/mocks"
)

// TestEpoch is the fixed instant test data is anchored to.
var TestEpoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// MockRepositories holds all repository mocks for easy injection
type MockRepositories struct {
	History *mocks.MockToastHistoryRepository
}

// NewMockRepositories creates a new set of repository mocks
func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		History: &mocks.MockToastHistoryRepository{},
	}
}

// ExpectRecent sets up expectations for a recent-history query
func (m *MockRepositories) ExpectRecent(limit int, entries []*toasts.HistoryEntry) {
	m.History.On("Recent", mock.Anything, limit).Return(entries, nil)
}

// ExpectToastHistory sets up expectations for one toast's history. Nil
// entries mean the toast has no records.
func (m *MockRepositories) ExpectToastHistory(id toasts.ID, entries []*toasts.HistoryEntry) {
	if entries == nil {
		m.History.On("ForToast", mock.Anything, id).Return(nil, contracts.ErrNotFound)
		return
	}
	m.History.On("ForToast", mock.Anything, id).Return(entries, nil)
}

// ExpectAnyRecord accepts every Record call
func (m *MockRepositories) ExpectAnyRecord() {
	m.History.On("Record", mock.Anything, mock.Anything).Return(nil)
}

// AssertAllExpectations verifies all mock expectations were met
func (m *MockRepositories) AssertAllExpectations(t mock.TestingT) {
	m.History.AssertExpectations(t)
}

// NewTestDatabase opens a migrated database in a temporary directory.
func NewTestDatabase(t testing.TB) *database.Database {
	t.Helper()
	db, err := database.New(database.Config{
		Path:            filepath.Join(t.TempDir(), "toastd.db"),
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute,
		BusyTimeoutMs:   1000,
		EnableWAL:       true,
	}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestData provides simple builders for test data
type TestData struct{}

// NewTestData creates a test data builder
func NewTestData() *TestData {
	return &TestData{}
}

// Request creates a timed request with an indicator for the variant.
func (td *TestData) Request(variant toasts.Variant, d time.Duration) toasts.Request {
	return toasts.Request{
		Title:         "Saved",
		Variant:       variant,
		Position:      toasts.PositionTopRight,
		Duration:      d,
		Dismissible:   true,
		ShowIndicator: true,
		ShowIcon:      true,
	}
}

// Instance creates a snapshot spawned at TestEpoch.
func (td *TestData) Instance(id string, state toasts.State) toasts.Instance {
	req := td.Request(toasts.VariantSuccess, 3*time.Second)
	return toasts.Instance{
		ID:        toasts.ID(id),
		Request:   req,
		State:     state,
		Duration:  req.Duration,
		Remaining: req.Duration,
		StartedAt: TestEpoch,
		Paused:    state == toasts.StatePaused,
		CreatedAt: TestEpoch,
	}
}

// HistoryEntry creates a record for a 3s toast, at after TestEpoch.
func (td *TestData) HistoryEntry(id string, event toasts.HistoryEvent, at time.Duration) *toasts.HistoryEntry {
	return &toasts.HistoryEntry{
		ToastID:    toasts.ID(id),
		Event:      event,
		Title:      "Saved",
		Variant:    toasts.VariantSuccess,
		Position:   toasts.PositionTopRight,
		Duration:   3 * time.Second,
		Remaining:  3*time.Second - at,
		OccurredAt: TestEpoch.Add(at),
	}
}

// Helper for common test context
func TestContext() context.Context {
	return context.Background()
}
