package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toastd/domain/events"
	"toastd/domain/toasts"
	"toastd/test/mocks"
)

func TestHistoryEventHandlers_HandleToastSpawned_RecordsEntry(t *testing.T) {
	// Arrange
	repo := &mocks.MockToastHistoryRepository{}
	handlers := NewHistoryEventHandlers(repo)
	inst := createTestInstance("toast-h1", toasts.StateArmed)

	repo.On("Record", mock.Anything, mock.MatchedBy(func(e *toasts.HistoryEntry) bool {
		return e.ToastID == inst.ID &&
			e.Event == toasts.HistorySpawned &&
			e.Title == "Saved" &&
			e.Duration == toasts.DefaultDuration &&
			e.OccurredAt.Equal(testEpoch)
	})).Return(nil)

	// Act
	handlers.handleToastSpawned(events.ToastSpawnedEvent{Toast: inst, Timestamp: testEpoch})

	// Assert
	repo.AssertExpectations(t)
}

func TestHistoryEventHandlers_HandleToastDismissed_RecordsReason(t *testing.T) {
	// Arrange
	repo := &mocks.MockToastHistoryRepository{}
	handlers := NewHistoryEventHandlers(repo)
	inst := createTestInstance("toast-h2", toasts.StateDismissing)

	var recorded *toasts.HistoryEntry
	repo.On("Record", mock.Anything, mock.AnythingOfType("*toasts.HistoryEntry")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*toasts.HistoryEntry)
		}).
		Return(nil)

	// Act
	handlers.handleToastDismissed(events.ToastDismissedEvent{
		Toast:     inst,
		Reason:    toasts.ReasonAPI,
		Timestamp: testEpoch,
	})

	// Assert
	repo.AssertExpectations(t)
	if assert.NotNil(t, recorded) {
		assert.Equal(t, toasts.HistoryDismissed, recorded.Event)
		assert.Equal(t, toasts.ReasonAPI, recorded.Reason)
	}
}

func TestHistoryEventHandlers_RepositoryError_IsSwallowed(t *testing.T) {
	repo := &mocks.MockToastHistoryRepository{}
	handlers := NewHistoryEventHandlers(repo)
	repo.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	assert.NotPanics(t, func() {
		handlers.handleToastRemoved(events.ToastRemovedEvent{
			Toast:     createTestInstance("toast-h3", toasts.StateRemoved),
			Lifetime:  time.Second,
			Timestamp: testEpoch,
		})
	})
	repo.AssertExpectations(t)
}

func TestHistoryEventHandlers_RegisterHandlers_AllEventsRegistered(t *testing.T) {
	// Arrange
	repo := &mocks.MockToastHistoryRepository{}
	handlers := NewHistoryEventHandlers(repo)
	eventBus := NewToastEventBus()
	handlers.RegisterHandlers(eventBus)

	recorded := make(chan toasts.HistoryEvent, 5)
	repo.On("Record", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded <- args.Get(1).(*toasts.HistoryEntry).Event
		}).
		Return(nil)

	inst := createTestInstance("toast-h4", toasts.StateArmed)

	// Act
	eventBus.PublishToastSpawned(events.ToastSpawnedEvent{Toast: inst})
	eventBus.PublishToastPaused(events.ToastPausedEvent{Toast: inst})
	eventBus.PublishToastResumed(events.ToastResumedEvent{Toast: inst})
	eventBus.PublishToastDismissed(events.ToastDismissedEvent{Toast: inst})
	eventBus.PublishToastRemoved(events.ToastRemovedEvent{Toast: inst})

	// Assert
	seen := map[toasts.HistoryEvent]bool{}
	for i := 0; i < 5; i++ {
		select {
		case e := <-recorded:
			seen[e] = true
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("only %d of 5 events recorded", i)
		}
	}
	assert.Len(t, seen, 5)
}
