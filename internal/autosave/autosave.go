// Package autosave saves the document a fixed delay after the last change.
package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/logger"
)

// DefaultDelay is the quiet period after the last change before saving.
const DefaultDelay = 1000 * time.Millisecond

// SaveFunc persists content as an autosave.
type SaveFunc func(content *document.ContentState)

// Autosaver debounces saves on the trailing edge: every change restarts the
// delay and only the last state is saved.
type Autosaver struct {
	scheduler clock.Scheduler
	delay     time.Duration
	save      SaveFunc

	mu         sync.Mutex
	timer      clock.Timer
	generation uint64
	pending    *document.ContentState
	closed     bool
}

// New creates an Autosaver. A non-positive delay means DefaultDelay.
func New(scheduler clock.Scheduler, delay time.Duration, save SaveFunc) *Autosaver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Autosaver{scheduler: scheduler, delay: delay, save: save}
}

// Delay returns the debounce delay.
func (a *Autosaver) Delay() time.Duration { return a.delay }

// Changed records s as the latest state and re-arms the timer, cancelling
// any pending save.
func (a *Autosaver) Changed(s document.EditorState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.generation++
	gen := a.generation
	a.pending = s.CurrentContent()
	a.timer = a.scheduler.AfterFunc(a.delay, func() { a.fire(gen) })
}

// Pending reports whether a save is scheduled.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// fire runs an expired timer. A timer whose callback was already queued when
// it got superseded carries a stale generation and does nothing.
func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	if a.closed || gen != a.generation {
		a.mu.Unlock()
		logger.DebugTagf("autosave", "dropping superseded timer %d", gen)
		return
	}
	content := a.pending
	a.timer = nil
	a.pending = nil
	a.mu.Unlock()

	if content == nil || !content.HasText() {
		logger.DebugTagf("autosave", "document empty, skipping autosave")
		return
	}
	logger.DebugTagf("autosave", "autosaving %d blocks", content.BlockCount())
	a.save(content)
}

// Close cancels any pending save. Later changes are ignored.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
	a.closed = true
}
