// Package toasts implements the toast notification lifecycle: spawning,
// per-toast countdown timers with hover pause/resume, dismissal and removal
// after a fixed exit grace period.
//
// A Manager owns every timer and the remaining-time bookkeeping. Visuals are
// delegated to a Renderer; interaction arrives as Signals.
//
//	ARMED <-> PAUSED -> DISMISSING -> REMOVED
//	PERSISTENT ---------^
package toasts

import (
	"sync"
	"time"

	"toastd/logging"
	"toastd/platform/clock"
)

type instance struct {
	id        ID
	req       Request
	state     State
	remaining time.Duration
	startedAt time.Time
	createdAt time.Time

	dismissedAt time.Time
	reason      DismissReason

	// gen identifies the current countdown timer; callbacks carrying an
	// older generation are stale.
	gen     uint64
	timer   clock.Timer
	removal clock.Timer
}

// Manager coordinates the lifecycle of every spawned toast. All methods are
// safe for concurrent use and are applied in a single total order.
type Manager struct {
	mu         sync.Mutex
	clock      clock.Clock
	renderer   Renderer
	observer   Observer
	containers *Containers
	instances  map[ID]*instance
	logger     *logging.Logger
}

// NewManager creates a manager. A nil renderer or observer is replaced by a
// no-op implementation.
func NewManager(clk clock.Clock, renderer Renderer, observer Observer) *Manager {
	if clk == nil {
		clk = clock.Real()
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Manager{
		clock:      clk,
		renderer:   renderer,
		observer:   observer,
		containers: NewContainers(),
		instances:  make(map[ID]*instance),
		logger:     logging.Default().WithComponent("toast_manager"),
	}
}

// Spawn mounts a new toast and arms its countdown when it has a duration.
// It never blocks on rendering beyond the renderer calls themselves.
func (m *Manager) Spawn(req Request) Instance {
	req = req.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	inst := &instance{
		id:        NewID(),
		req:       req,
		state:     StatePersistent,
		remaining: req.Duration,
		startedAt: now,
		createdAt: now,
	}
	if req.Duration > 0 {
		inst.state = StateArmed
	}

	m.containers.Append(req.Position, inst.id)
	m.instances[inst.id] = inst

	m.rendered("mount", inst.id, m.renderer.Mount(inst.snapshot(now)))

	if inst.state == StateArmed {
		m.arm(inst, req.Duration)
		if req.HasIndicator() {
			m.rendered("start_progress", inst.id, m.renderer.StartProgress(inst.id, req.Duration))
		}
	}

	snap := inst.snapshot(now)
	m.logger.Toast("Toast spawned", string(inst.id),
		"variant", req.Variant,
		"position", req.Position,
		"duration_ms", req.Duration.Milliseconds())
	m.observer.ToastSpawned(snap)
	return snap
}

// Pause freezes the countdown. It is a no-op unless the toast is armed.
func (m *Manager) Pause(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok || inst.state != StateArmed {
		return
	}

	now := m.clock.Now()
	m.disarm(inst)
	inst.remaining = clampRemaining(inst.remaining-now.Sub(inst.startedAt), inst.req.Duration)

	if inst.remaining == 0 {
		// The deadline passed while the timer callback was in flight.
		m.dismissLocked(inst, ReasonTimeout, now)
		return
	}

	inst.state = StatePaused
	if inst.req.HasIndicator() {
		fraction := float64(inst.remaining) / float64(inst.req.Duration)
		m.rendered("freeze_progress", id, m.renderer.FreezeProgress(id, fraction))
	}

	m.logger.Toast("Toast paused", string(id), "remaining_ms", inst.remaining.Milliseconds())
	m.observer.ToastPaused(inst.snapshot(now))
}

// Resume re-arms a paused toast for its remaining time. It is a no-op
// unless the toast is paused with time left.
func (m *Manager) Resume(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok || inst.state != StatePaused || inst.remaining <= 0 {
		return
	}

	now := m.clock.Now()
	inst.startedAt = now
	inst.state = StateArmed
	m.arm(inst, inst.remaining)
	if inst.req.HasIndicator() {
		m.rendered("start_progress", id, m.renderer.StartProgress(id, inst.remaining))
	}

	m.logger.Toast("Toast resumed", string(id), "remaining_ms", inst.remaining.Milliseconds())
	m.observer.ToastResumed(inst.snapshot(now))
}

// Dismiss starts the exit of a toast on behalf of an external caller.
// Dismissing an unknown, dismissing or removed toast is a no-op.
func (m *Manager) Dismiss(id ID) {
	m.dismiss(id, ReasonAPI)
}

// HandleSignal applies an interaction signal reported by the renderer.
// Dismiss requests are honoured only for dismissible toasts.
func (m *Manager) HandleSignal(id ID, signal Signal) {
	switch signal {
	case SignalPointerEnter:
		m.Pause(id)
	case SignalPointerLeave:
		m.Resume(id)
	case SignalDismissRequested:
		m.mu.Lock()
		inst, ok := m.instances[id]
		dismissible := ok && inst.req.Dismissible
		m.mu.Unlock()
		if dismissible {
			m.dismiss(id, ReasonUser)
		}
	default:
		m.logger.Debug("Ignoring unknown toast signal", "toast_id", id, "signal", signal)
	}
}

// Attach subscribes the manager to a signal source.
func (m *Manager) Attach(src SignalSource) {
	src.OnSignal(m.HandleSignal)
}

// Get returns a snapshot of a toast that has not been removed yet.
func (m *Manager) Get(id ID) (Instance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok {
		return Instance{}, false
	}
	return inst.snapshot(m.clock.Now()), true
}

// Active returns every toast not yet removed, container by container in
// allocation order and stacking order within each container.
func (m *Manager) Active() []Instance {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	out := make([]Instance, 0, len(m.instances))
	for _, pos := range m.containers.Positions() {
		for _, id := range m.containers.IDs(pos) {
			if inst, ok := m.instances[id]; ok {
				out = append(out, inst.snapshot(now))
			}
		}
	}
	return out
}

// Container returns the stacking order of the container for pos.
func (m *Manager) Container(pos Position) []ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containers.IDs(pos)
}

// Positions returns the positions whose containers have been allocated.
func (m *Manager) Positions() []Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containers.Positions()
}

// Close cancels every outstanding timer and forgets all toasts. Renderers
// are not notified.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, inst := range m.instances {
		m.disarm(inst)
		if inst.removal != nil {
			inst.removal.Stop()
			inst.removal = nil
		}
		m.containers.Remove(inst.req.Position, id)
		delete(m.instances, id)
	}
}

func (m *Manager) dismiss(id ID, reason DismissReason) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok {
		return
	}
	m.dismissLocked(inst, reason, m.clock.Now())
}

func (m *Manager) dismissLocked(inst *instance, reason DismissReason, now time.Time) {
	if !inst.state.Live() {
		return
	}

	if inst.state == StateArmed {
		m.disarm(inst)
		inst.remaining = clampRemaining(inst.remaining-now.Sub(inst.startedAt), inst.req.Duration)
	}
	if reason == ReasonTimeout {
		inst.remaining = 0
	}

	inst.state = StateDismissing
	inst.dismissedAt = now
	inst.reason = reason

	m.rendered("exit", inst.id, m.renderer.Exit(inst.id))

	id := inst.id
	inst.removal = m.clock.AfterFunc(ExitGracePeriod, func() {
		m.finalize(id)
	})

	m.logger.Toast("Toast dismissed", string(id), "reason", reason)
	m.observer.ToastDismissed(inst.snapshot(now))
}

func (m *Manager) finalize(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok || inst.state != StateDismissing {
		return
	}

	now := m.clock.Now()
	inst.state = StateRemoved
	inst.removal = nil
	m.containers.Remove(inst.req.Position, id)
	delete(m.instances, id)

	m.rendered("remove", id, m.renderer.Remove(id))

	m.logger.Toast("Toast removed", string(id), "lifetime_ms", now.Sub(inst.createdAt).Milliseconds())
	m.observer.ToastRemoved(inst.snapshot(now))
}

// expire is the countdown callback.
func (m *Manager) expire(id ID, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok || inst.gen != gen || inst.state != StateArmed {
		m.logger.Toast("Ignoring stale toast timer", string(id))
		return
	}
	inst.timer = nil
	m.dismissLocked(inst, ReasonTimeout, m.clock.Now())
}

func (m *Manager) arm(inst *instance, d time.Duration) {
	inst.gen++
	gen := inst.gen
	id := inst.id
	inst.timer = m.clock.AfterFunc(d, func() {
		m.expire(id, gen)
	})
}

func (m *Manager) disarm(inst *instance) {
	inst.gen++
	if inst.timer != nil {
		inst.timer.Stop()
		inst.timer = nil
	}
}

func (m *Manager) rendered(op string, id ID, err error) {
	if err != nil {
		m.logger.Debug("Toast renderer call failed",
			"operation", op,
			"toast_id", id,
			"error", err)
	}
}

func (inst *instance) snapshot(now time.Time) Instance {
	remaining := inst.remaining
	if inst.state == StateArmed {
		remaining = clampRemaining(remaining-now.Sub(inst.startedAt), inst.req.Duration)
	}
	return Instance{
		ID:            inst.id,
		Request:       inst.req,
		State:         inst.state,
		Duration:      inst.req.Duration,
		Remaining:     remaining,
		StartedAt:     inst.startedAt,
		Paused:        inst.state == StatePaused,
		CreatedAt:     inst.createdAt,
		DismissedAt:   inst.dismissedAt,
		DismissReason: inst.reason,
	}
}

func clampRemaining(d, limit time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > limit {
		return limit
	}
	return d
}
