package clock

import (
	"sort"
	"sync"
	"time"
)

// Simulated is a manually advanced Clock. Timers fire synchronously on the
// goroutine calling Advance, in deadline order; timers sharing a deadline
// fire in the order they were scheduled.
type Simulated struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*simTimer
}

type simTimer struct {
	clock *Simulated
	when  time.Time
	seq   uint64
	fn    func()
}

// NewSimulated creates a simulated clock starting at start.
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{now: start}
}

// Now returns the simulated current time.
func (s *Simulated) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc schedules f to run once the clock has been advanced by d.
// A non-positive d fires on the next Advance call, including Advance(0).
func (s *Simulated) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &simTimer{clock: s, when: s.now.Add(d), seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window. Timers scheduled by callbacks during the advance
// fire as well if their deadline is reached.
func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.when
		s.removeLocked(next)
		s.mu.Unlock()

		next.fn()
	}
}

// Pending reports how many timers are scheduled and not yet fired or stopped.
func (s *Simulated) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Simulated) nextDueLocked(target time.Time) *simTimer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].when.Equal(s.timers[j].when) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].when.Before(s.timers[j].when)
	})
	if s.timers[0].when.After(target) {
		return nil
	}
	return s.timers[0]
}

func (s *Simulated) removeLocked(t *simTimer) bool {
	for i, candidate := range s.timers {
		if candidate == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (t *simTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.removeLocked(t)
}
