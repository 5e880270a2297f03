package autosave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/document"
)

type saves struct {
	contents []*document.ContentState
}

func (s *saves) save(c *document.ContentState) { s.contents = append(s.contents, c) }

func TestDebounceSavesLastStateOnce(t *testing.T) {
	m := clock.NewManual()
	rec := &saves{}
	a := New(m, time.Second, rec.save)

	s := document.CreateEmpty()
	for _, r := range "hello" {
		s = document.InsertText(s, string(r))
		a.Changed(s)
		m.Advance(999 * time.Millisecond)
	}
	assert.Empty(t, rec.contents)
	assert.True(t, a.Pending())

	m.Advance(time.Millisecond)
	require.Len(t, rec.contents, 1)
	assert.Same(t, s.CurrentContent(), rec.contents[0])
	assert.False(t, a.Pending())

	m.Advance(time.Hour)
	assert.Len(t, rec.contents, 1)
}

func TestNoLeadingEdge(t *testing.T) {
	m := clock.NewManual()
	rec := &saves{}
	a := New(m, 0, rec.save)
	assert.Equal(t, DefaultDelay, a.Delay())

	a.Changed(document.CreateWithContent(document.FromText("x")))
	m.Advance(0)
	assert.Empty(t, rec.contents)
	m.Advance(DefaultDelay)
	assert.Len(t, rec.contents, 1)
}

func TestEmptyDocumentIsNotSaved(t *testing.T) {
	m := clock.NewManual()
	rec := &saves{}
	a := New(m, time.Second, rec.save)

	a.Changed(document.CreateEmpty())
	m.Advance(time.Second)
	assert.Empty(t, rec.contents)

	// Two empty blocks count as text.
	a.Changed(document.CreateWithContent(document.FromText("\n")))
	m.Advance(time.Second)
	assert.Len(t, rec.contents, 1)
}

func TestStaleCallbackIsDropped(t *testing.T) {
	// A scheduler whose timers cannot be stopped, like a callback already
	// queued on the event loop.
	var queued []func()
	sched := schedulerFunc(func(d time.Duration, f func()) clock.Timer {
		queued = append(queued, f)
		return stopless{}
	})
	rec := &saves{}
	a := New(sched, time.Second, rec.save)

	first := document.CreateWithContent(document.FromText("first"))
	second := document.CreateWithContent(document.FromText("second"))
	a.Changed(first)
	a.Changed(second)
	require.Len(t, queued, 2)

	queued[0]()
	assert.Empty(t, rec.contents)
	queued[1]()
	require.Len(t, rec.contents, 1)
	assert.Equal(t, "second", rec.contents[0].PlainText())
}

func TestCloseCancels(t *testing.T) {
	m := clock.NewManual()
	rec := &saves{}
	a := New(m, time.Second, rec.save)

	a.Changed(document.CreateWithContent(document.FromText("x")))
	a.Close()
	assert.Zero(t, m.Pending())
	m.Advance(time.Minute)
	assert.Empty(t, rec.contents)

	a.Changed(document.CreateWithContent(document.FromText("y")))
	assert.Zero(t, m.Pending())
}

type schedulerFunc func(d time.Duration, f func()) clock.Timer

func (f schedulerFunc) AfterFunc(d time.Duration, fn func()) clock.Timer { return f(d, fn) }

type stopless struct{}

func (stopless) Stop() bool { return false }
