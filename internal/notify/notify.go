// Package notify shows short-lived messages to the user.
package notify

import (
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/logger"
)

// DefaultDuration is how long a notification stays up unless dismissed.
const DefaultDuration = 3000 * time.Millisecond

// ChangeFunc is told whenever the notification appears, changes or hides.
type ChangeFunc func(visible bool, message string)

// Presenter holds at most one notification. It is driven from the event loop
// and is not safe for concurrent use.
type Presenter struct {
	scheduler clock.Scheduler
	duration  time.Duration
	onChange  ChangeFunc

	message    string
	visible    bool
	timer      clock.Timer
	generation uint64
}

// New creates a Presenter. A non-positive duration means DefaultDuration;
// onChange may be nil.
func New(scheduler clock.Scheduler, duration time.Duration, onChange ChangeFunc) *Presenter {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Presenter{scheduler: scheduler, duration: duration, onChange: onChange}
}

// Show displays message. A notification that is already visible takes the
// new text but keeps its original hide time.
func (p *Presenter) Show(message string) {
	p.message = message
	if !p.visible {
		p.visible = true
		p.generation++
		gen := p.generation
		p.timer = p.scheduler.AfterFunc(p.duration, func() { p.expire(gen) })
	}
	logger.DebugTagf("notify", "showing %q", message)
	p.changed()
}

// Dismiss hides the notification now and cancels its timer.
func (p *Presenter) Dismiss() {
	if !p.visible {
		return
	}
	p.stopTimer()
	p.visible = false
	p.changed()
}

// Visible reports whether a notification is showing.
func (p *Presenter) Visible() bool { return p.visible }

// Message returns the current (or last) message.
func (p *Presenter) Message() string { return p.message }

// Close cancels the timer without notifying the owner.
func (p *Presenter) Close() {
	p.stopTimer()
	p.visible = false
}

// expire hides the notification shown as generation gen, unless it has been
// dismissed or replaced since.
func (p *Presenter) expire(gen uint64) {
	if !p.visible || gen != p.generation {
		return
	}
	p.timer = nil
	p.visible = false
	p.changed()
}

func (p *Presenter) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Presenter) changed() {
	if p.onChange != nil {
		p.onChange(p.visible, p.message)
	}
}
