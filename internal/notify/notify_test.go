package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/scribe/internal/clock"
)

type change struct {
	visible bool
	message string
}

func newPresenter(d time.Duration) (*Presenter, *clock.Manual, *[]change) {
	m := clock.NewManual()
	var changes []change
	p := New(m, d, func(visible bool, msg string) {
		changes = append(changes, change{visible, msg})
	})
	return p, m, &changes
}

func TestAutoHide(t *testing.T) {
	p, m, changes := newPresenter(0)
	p.Show("Content saved successfully!")
	require.True(t, p.Visible())
	assert.Equal(t, "Content saved successfully!", p.Message())

	m.Advance(DefaultDuration - time.Millisecond)
	assert.True(t, p.Visible())

	m.Advance(time.Millisecond)
	assert.False(t, p.Visible())
	assert.Equal(t, []change{
		{true, "Content saved successfully!"},
		{false, "Content saved successfully!"},
	}, *changes)
}

func TestDismissCancelsTimer(t *testing.T) {
	p, m, changes := newPresenter(3 * time.Second)
	p.Show("hello")
	m.Advance(time.Second)

	p.Dismiss()
	assert.False(t, p.Visible())
	assert.Zero(t, m.Pending())

	m.Advance(time.Minute)
	assert.Len(t, *changes, 2, "nothing happens after dismissal")

	p.Dismiss()
	assert.Len(t, *changes, 2, "dismissing twice is a no-op")
}

func TestShowWhileVisibleKeepsTimer(t *testing.T) {
	p, m, _ := newPresenter(3 * time.Second)
	p.Show("first")
	m.Advance(2 * time.Second)
	p.Show("second")
	assert.Equal(t, "second", p.Message())
	assert.Equal(t, 1, m.Pending())

	m.Advance(time.Second)
	assert.False(t, p.Visible(), "hides at the first message's deadline")
}

func TestStaleExpiryIgnored(t *testing.T) {
	var queued []func()
	sched := schedulerFunc(func(d time.Duration, f func()) clock.Timer {
		queued = append(queued, f)
		return stopless{}
	})
	p := New(sched, time.Second, nil)

	p.Show("one")
	p.Dismiss()
	p.Show("two")
	require.Len(t, queued, 2)

	queued[0]()
	assert.True(t, p.Visible(), "the first notification's timer must not hide the second")
	queued[1]()
	assert.False(t, p.Visible())
}

func TestClose(t *testing.T) {
	p, m, changes := newPresenter(time.Second)
	p.Show("bye")
	p.Close()
	assert.Zero(t, m.Pending())
	assert.False(t, p.Visible())
	assert.Len(t, *changes, 1)
}

type schedulerFunc func(d time.Duration, f func()) clock.Timer

func (f schedulerFunc) AfterFunc(d time.Duration, fn func()) clock.Timer { return f(d, fn) }

type stopless struct{}

func (stopless) Stop() bool { return false }
