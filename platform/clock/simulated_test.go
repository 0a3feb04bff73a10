package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSimulated_AdvanceFiresDueTimersInOrder(t *testing.T) {
	// Arrange
	c := NewSimulated(epoch)
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "b") })

	// Act
	c.Advance(250 * time.Millisecond)

	// Assert
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, epoch.Add(250*time.Millisecond), c.Now())
	assert.Equal(t, 1, c.Pending())
}

func TestSimulated_SameDeadlineIsFIFO(t *testing.T) {
	c := NewSimulated(epoch)
	var fired []int

	for i := 0; i < 5; i++ {
		i := i
		c.AfterFunc(time.Second, func() { fired = append(fired, i) })
	}

	c.Advance(time.Second)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, fired)
}

func TestSimulated_NowInsideCallbackIsDeadline(t *testing.T) {
	c := NewSimulated(epoch)
	var seen time.Time

	c.AfterFunc(700*time.Millisecond, func() { seen = c.Now() })
	c.Advance(5 * time.Second)

	assert.Equal(t, epoch.Add(700*time.Millisecond), seen)
	assert.Equal(t, epoch.Add(5*time.Second), c.Now())
}

func TestSimulated_StopCancels(t *testing.T) {
	c := NewSimulated(epoch)
	called := false

	timer := c.AfterFunc(time.Second, func() { called = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports already stopped")

	c.Advance(2 * time.Second)
	assert.False(t, called)
	assert.Equal(t, 0, c.Pending())
}

func TestSimulated_StopAfterFireReturnsFalse(t *testing.T) {
	c := NewSimulated(epoch)
	timer := c.AfterFunc(time.Millisecond, func() {})

	c.Advance(time.Millisecond)

	assert.False(t, timer.Stop())
}

func TestSimulated_CallbackSchedulesWithinWindow(t *testing.T) {
	// Arrange: a callback that chains another timer
	c := NewSimulated(epoch)
	var fired []time.Duration

	c.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, c.Now().Sub(epoch))
		c.AfterFunc(300*time.Millisecond, func() {
			fired = append(fired, c.Now().Sub(epoch))
		})
	})

	// Act
	c.Advance(time.Second)

	// Assert
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 400 * time.Millisecond}, fired)
}

func TestReal_AfterFuncFires(t *testing.T) {
	c := Real()
	done := make(chan struct{})

	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
