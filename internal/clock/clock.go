// Package clock schedules delayed callbacks. Callbacks never run on the
// timer goroutine: LoopScheduler hands them to a post function that queues
// them on the UI event loop, and Manual runs them when a test advances time.
package clock

import (
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/logger"
)

// Timer is a handle to a pending callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// fired or was stopped.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// PostFunc queues f for execution on the event loop.
type PostFunc func(f func()) error

// LoopScheduler fires timers on the Go runtime and posts their callbacks to
// the event loop.
type LoopScheduler struct {
	post PostFunc
}

// NewLoopScheduler creates a scheduler that delivers callbacks through post.
func NewLoopScheduler(post PostFunc) *LoopScheduler {
	return &LoopScheduler{post: post}
}

type loopTimer struct {
	t *time.Timer
}

func (lt *loopTimer) Stop() bool { return lt.t.Stop() }

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return &loopTimer{t: time.AfterFunc(d, func() {
		if err := s.post(f); err != nil {
			logger.Warnf("clock: dropping timer callback: %v", err)
		}
	})}
}

// Manual is a Scheduler driven by Advance. It is safe for concurrent use but
// callbacks run on the goroutine calling Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m       *Manual
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewManual returns a scheduler whose time starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, running due callbacks in deadline order.
// Callbacks scheduled by a callback run too if they fall within d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		t.f()
	}
	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// nextDue pops the earliest live timer due at or before target and marks it
// fired.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *manualTimer
	live := m.pending[:0]
	for _, t := range m.pending {
		if t.stopped || t.fired {
			continue
		}
		live = append(live, t)
		if t.at <= target && (best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq)) {
			best = t
		}
	}
	m.pending = live
	if best != nil {
		best.fired = true
		m.now = best.at
	}
	return best
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
