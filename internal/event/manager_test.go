package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndData(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeNotificationShown, func(e Event) bool {
		got = append(got, "a:"+e.Data.(NotificationData).Message)
		return false
	})
	m.Subscribe(TypeNotificationShown, func(e Event) bool {
		got = append(got, "b:"+e.Data.(NotificationData).Message)
		return false
	})
	m.Subscribe(TypeNotificationHidden, func(e Event) bool {
		got = append(got, "hidden")
		return false
	})

	m.Dispatch(TypeNotificationShown, NotificationData{Message: "hi"})
	assert.Equal(t, []string{"a:hi", "b:hi"}, got)
}

func TestConsumedStopsPropagation(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeAppQuit, func(Event) bool { calls++; return true })
	m.Subscribe(TypeAppQuit, func(Event) bool { calls++; return false })
	m.Dispatch(TypeAppQuit, AppQuitData{})
	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	sub := m.Subscribe(TypeContentSaved, func(Event) bool { calls++; return false })
	m.Dispatch(TypeContentSaved, nil)
	m.Unsubscribe(sub)
	m.Unsubscribe(sub)
	m.Dispatch(TypeContentSaved, nil)
	assert.Equal(t, 1, calls)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		m.Subscribe(TypeAppReady, func(Event) bool { calls++; return false })
		return false
	})
	m.Dispatch(TypeAppReady, nil)
	assert.Zero(t, calls, "handlers added during dispatch wait for the next one")
	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 1, calls)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "content-changed", TypeContentChanged.String())
	assert.Equal(t, "type(99)", Type(99).String())
}
