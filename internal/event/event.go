// internal/event/event.go
package event

import (
	"fmt"

	"github.com/bethropolis/scribe/internal/document"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeContentChanged // The controller replaced its editor state
	TypeContentLoaded  // Startup load finished (possibly with the empty fallback)
	TypeContentSaved   // A save reached the store
	TypeSaveFailed     // A save did not reach the store
	TypeLoadFailed     // The stored snapshot could not be restored

	// Notification events
	TypeNotificationShown // A notification appeared or changed text
	TypeNotificationHidden

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:            "unknown",
	TypeContentChanged:     "content-changed",
	TypeContentLoaded:      "content-loaded",
	TypeContentSaved:       "content-saved",
	TypeSaveFailed:         "save-failed",
	TypeLoadFailed:         "load-failed",
	TypeNotificationShown:  "notification-shown",
	TypeNotificationHidden: "notification-hidden",
	TypeAppReady:           "app-ready",
	TypeAppQuit:            "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ContentChangedData carries the new editor state.
type ContentChangedData struct {
	State document.EditorState
}

// ContentSavedData describes a completed save.
type ContentSavedData struct {
	IsAutosave bool
}

// FailureData carries the error behind a failed save or load.
type FailureData struct {
	Err error
}

// NotificationData carries the notification text.
type NotificationData struct {
	Message string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
