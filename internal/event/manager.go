// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
)

// Handler defines the function signature for event subscribers.
// Returning true marks the event consumed and stops later handlers.
type Handler func(e Event) bool

// Subscription identifies a handler for Unsubscribe.
type Subscription struct {
	eventType Type
	id        uint64
}

type entry struct {
	id      uint64
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]entry
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]entry),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], entry{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "handler subscribed to %v", eventType)
	return Subscription{eventType: eventType, id: m.nextID}
}

// Unsubscribe removes the handler behind sub. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.handlers[sub.eventType]
	for i, e := range list {
		if e.id == sub.id {
			next := make([]entry, 0, len(list)-1)
			next = append(next, list[:i]...)
			m.handlers[sub.eventType] = append(next, list[i+1:]...)
			return
		}
	}
}

// Dispatch sends an event to the handlers for its type, synchronously and in
// subscription order. Handlers may subscribe or unsubscribe while running.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.DebugTagf("event", "dispatching %v to %d handler(s)", eventType, len(handlers))

	// Subscribe and Unsubscribe replace the slice, so handlers is a stable
	// snapshot.
	for _, e := range handlers {
		if e.handler(event) {
			break
		}
	}
}
