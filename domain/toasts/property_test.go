package toasts

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"toastd/platform/clock"
)

// lifecycleModel tracks what a single toast should look like after a
// sequence of operations on a simulated clock.
type lifecycleModel struct {
	state       State
	remaining   time.Duration
	startedAt   time.Duration
	dismissedAt time.Duration
	now         time.Duration
}

func (m *lifecycleModel) advance(d time.Duration) {
	target := m.now + d
	if m.state == StateArmed && m.startedAt+m.remaining <= target {
		m.dismissedAt = m.startedAt + m.remaining
		m.remaining = 0
		m.state = StateDismissing
	}
	if m.state == StateDismissing && m.dismissedAt+ExitGracePeriod <= target {
		m.state = StateRemoved
	}
	m.now = target
}

func (m *lifecycleModel) pause() {
	if m.state != StateArmed {
		return
	}
	m.remaining -= m.now - m.startedAt
	m.state = StatePaused
}

func (m *lifecycleModel) resume() {
	if m.state != StatePaused {
		return
	}
	m.startedAt = m.now
	m.state = StateArmed
}

func (m *lifecycleModel) dismiss() {
	if !m.state.Live() {
		return
	}
	if m.state == StateArmed {
		m.remaining -= m.now - m.startedAt
	}
	m.dismissedAt = m.now
	m.state = StateDismissing
}

func (m *lifecycleModel) liveRemaining() time.Duration {
	if m.state == StateArmed {
		return m.remaining - (m.now - m.startedAt)
	}
	return m.remaining
}

func TestManager_LifecycleProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clk := clock.NewSimulated(epoch)
		renderer := &recordingRenderer{clock: clk}
		observer := &countingObserver{}
		mgr := NewManager(clk, renderer, observer)

		duration := time.Duration(rapid.IntRange(1, 5000).Draw(t, "duration_ms")) * time.Millisecond
		inst := mgr.Spawn(timedRequest(duration))
		model := &lifecycleModel{state: StateArmed, remaining: duration}

		steps := rapid.IntRange(0, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.SampledFrom([]string{"advance", "pause", "resume", "dismiss"}).Draw(t, "op") {
			case "advance":
				d := time.Duration(rapid.IntRange(0, 2000).Draw(t, "advance_ms")) * time.Millisecond
				clk.Advance(d)
				model.advance(d)
			case "pause":
				mgr.Pause(inst.ID)
				model.pause()
			case "resume":
				mgr.Resume(inst.ID)
				model.resume()
			case "dismiss":
				mgr.Dismiss(inst.ID)
				model.dismiss()
			}

			got, ok := mgr.Get(inst.ID)
			if model.state == StateRemoved {
				if ok {
					t.Fatalf("toast still present in state %s, want removed", got.State)
				}
				continue
			}
			if !ok {
				t.Fatalf("toast missing, want state %s", model.state)
			}
			if got.State != model.state {
				t.Fatalf("state = %s, want %s", got.State, model.state)
			}
			if got.Remaining != model.liveRemaining() {
				t.Fatalf("remaining = %v, want %v", got.Remaining, model.liveRemaining())
			}
			if got.Remaining < 0 || got.Remaining > duration {
				t.Fatalf("remaining %v outside [0, %v]", got.Remaining, duration)
			}
		}

		// Drive every outstanding toast to completion.
		mgr.Dismiss(inst.ID)
		model.dismiss()
		clk.Advance(time.Hour)
		model.advance(time.Hour)

		if n := len(observer.dismissed); n != 1 {
			t.Fatalf("dismissed %d times, want exactly once", n)
		}
		if n := len(observer.removed); n != 1 {
			t.Fatalf("removed %d times, want exactly once", n)
		}
		exits := renderer.opTimes(inst.ID, "exit")
		removes := renderer.opTimes(inst.ID, "remove")
		if len(exits) != 1 || len(removes) != 1 {
			t.Fatalf("exit calls %d, remove calls %d", len(exits), len(removes))
		}
		if removes[0]-exits[0] != ExitGracePeriod {
			t.Fatalf("removed %v after exit, want %v", removes[0]-exits[0], ExitGracePeriod)
		}
		if exits[0] != model.dismissedAt {
			t.Fatalf("exit at %v, want %v", exits[0], model.dismissedAt)
		}
		if clk.Pending() != 0 {
			t.Fatalf("%d timers still pending", clk.Pending())
		}
	})
}

func TestManager_PersistentNeverDismissesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clk := clock.NewSimulated(epoch)
		observer := &countingObserver{}
		mgr := NewManager(clk, nil, observer)

		inst := mgr.Spawn(timedRequest(0))
		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				clk.Advance(time.Duration(rapid.IntRange(0, 1_000_000).Draw(t, "advance_ms")) * time.Millisecond)
			case 1:
				mgr.HandleSignal(inst.ID, SignalPointerEnter)
			case 2:
				mgr.HandleSignal(inst.ID, SignalPointerLeave)
			case 3:
				mgr.Pause(inst.ID)
			}
		}

		got, ok := mgr.Get(inst.ID)
		if !ok || got.State != StatePersistent {
			t.Fatalf("persistent toast changed: ok=%v state=%s", ok, got.State)
		}
		if len(observer.dismissed) != 0 {
			t.Fatalf("persistent toast dismissed")
		}
	})
}
