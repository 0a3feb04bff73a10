package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toastd/domain/events"
	"toastd/domain/toasts"
	"toastd/platform/clock"
	"toastd/test/mocks"
)

func TestLifecycleObserver_TimestampsFollowClock(t *testing.T) {
	// Arrange
	clk := clock.NewSimulated(testEpoch)
	publisher := &mocks.MockToastEventPublisher{}
	observer := NewLifecycleObserver(publisher, clk)

	inst := createTestInstance("toast-6", toasts.StateDismissing)
	inst.DismissReason = toasts.ReasonTimeout
	inst.DismissedAt = testEpoch.Add(3 * time.Second)

	publisher.On("PublishToastDismissed", events.ToastDismissedEvent{
		Toast:     inst,
		Reason:    toasts.ReasonTimeout,
		Timestamp: inst.DismissedAt,
	}).Return().Once()
	publisher.On("PublishToastRemoved", events.ToastRemovedEvent{
		Toast:     inst,
		Lifetime:  3300 * time.Millisecond,
		Timestamp: testEpoch.Add(3300 * time.Millisecond),
	}).Return().Once()

	// Act
	observer.ToastDismissed(inst)
	clk.Advance(3300 * time.Millisecond)
	observer.ToastRemoved(inst)

	// Assert
	publisher.AssertExpectations(t)
}

func TestLifecycleObserver_SpawnPauseResume(t *testing.T) {
	clk := clock.NewSimulated(testEpoch)
	publisher := &mocks.MockToastEventPublisher{}
	observer := NewLifecycleObserver(publisher, clk)

	armed := createTestInstance("toast-8", toasts.StateArmed)
	paused := armed
	paused.State = toasts.StatePaused
	paused.Paused = true
	resumed := armed
	resumed.StartedAt = testEpoch.Add(2 * time.Second)

	publisher.On("PublishToastSpawned", events.ToastSpawnedEvent{Toast: armed, Timestamp: testEpoch}).Return().Once()
	publisher.On("PublishToastPaused", events.ToastPausedEvent{Toast: paused, Timestamp: testEpoch.Add(time.Second)}).Return().Once()
	publisher.On("PublishToastResumed", events.ToastResumedEvent{Toast: resumed, Timestamp: resumed.StartedAt}).Return().Once()

	observer.ToastSpawned(armed)
	clk.Advance(time.Second)
	observer.ToastPaused(paused)
	observer.ToastResumed(resumed)

	publisher.AssertExpectations(t)
}

func TestLifecycleObserver_DrivenByManager(t *testing.T) {
	clk := clock.NewSimulated(testEpoch)
	publisher := &mocks.MockToastEventPublisher{}
	manager := toasts.NewManager(clk, nil, NewLifecycleObserver(publisher, clk))

	var order []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, name) }
	}
	publisher.On("PublishToastSpawned", mock.Anything).Run(record("spawned")).Return()
	publisher.On("PublishToastPaused", mock.Anything).Run(record("paused")).Return()
	publisher.On("PublishToastResumed", mock.Anything).Run(record("resumed")).Return()
	publisher.On("PublishToastDismissed", mock.MatchedBy(func(e events.ToastDismissedEvent) bool {
		return e.Reason == toasts.ReasonTimeout
	})).Run(record("dismissed")).Return()
	publisher.On("PublishToastRemoved", mock.Anything).Run(record("removed")).Return()

	req := toasts.BuiltinDefaults().Request()
	inst := manager.Spawn(req)
	manager.HandleSignal(inst.ID, toasts.SignalPointerEnter)
	clk.Advance(10 * time.Second)
	manager.HandleSignal(inst.ID, toasts.SignalPointerLeave)
	clk.Advance(req.Duration + toasts.ExitGracePeriod)

	assert.Equal(t, []string{"spawned", "paused", "resumed", "dismissed", "removed"}, order)
	publisher.AssertExpectations(t)
}
