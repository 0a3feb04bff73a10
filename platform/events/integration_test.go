package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toastd/domain/toasts"
	"toastd/platform/clock"
	"toastd/test/mocks"
)

// Integration test for the complete flow: Manager -> EventBus -> handlers
func TestEventSystem_EndToEndFlow_ManagerToHistoryAndMetrics(t *testing.T) {
	// Arrange
	clk := clock.NewSimulated(testEpoch)
	eventBus := NewToastEventBus()

	repo := &mocks.MockToastHistoryRepository{}
	metrics := &mocks.MockMetricsRecorder{}
	NewHistoryEventHandlers(repo).RegisterHandlers(eventBus)
	NewMetricsEventHandlers(metrics).RegisterHandlers(eventBus)

	recorded := make(chan *toasts.HistoryEntry, 8)
	repo.On("Record", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded <- args.Get(1).(*toasts.HistoryEntry)
		}).
		Return(nil)
	metricCalls := make(chan struct{}, 3)
	signal := func(mock.Arguments) { metricCalls <- struct{}{} }
	metrics.On("ToastSpawned", "success", "top-right").Run(signal).Return()
	metrics.On("ToastDismissed", "timeout").Run(signal).Return()
	metrics.On("ToastRemoved", 3300*time.Millisecond).Run(signal).Return()

	manager := toasts.NewManager(clk, nil, NewLifecycleObserver(eventBus, clk))
	req := toasts.BuiltinDefaults().Request()
	req.Title = "Uploaded"
	req.Variant = toasts.VariantSuccess
	req.Position = toasts.PositionTopRight

	// Act
	inst := manager.Spawn(req)
	clk.Advance(4 * time.Second)

	// Assert
	byEvent := map[toasts.HistoryEvent]*toasts.HistoryEntry{}
	for i := 0; i < 3; i++ {
		select {
		case e := <-recorded:
			byEvent[e.Event] = e
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("only %d of 3 history entries recorded", i)
		}
	}

	if assert.Contains(t, byEvent, toasts.HistoryDismissed) {
		assert.Equal(t, inst.ID, byEvent[toasts.HistoryDismissed].ToastID)
		assert.Equal(t, toasts.ReasonTimeout, byEvent[toasts.HistoryDismissed].Reason)
		assert.Equal(t, testEpoch.Add(3*time.Second), byEvent[toasts.HistoryDismissed].OccurredAt)
	}
	if assert.Contains(t, byEvent, toasts.HistoryRemoved) {
		assert.Equal(t, testEpoch.Add(3300*time.Millisecond), byEvent[toasts.HistoryRemoved].OccurredAt)
	}

	for i := 0; i < 3; i++ {
		select {
		case <-metricCalls:
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("only %d of 3 metric updates seen", i)
		}
	}
	metrics.AssertExpectations(t)
}
