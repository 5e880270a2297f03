package app

import (
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
)

// subscribe wires the app's reactions to editor events.
func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeContentChanged, a.handleContentChanged)
	a.eventManager.Subscribe(event.TypeContentSaved, a.handleContentSaved)
	a.eventManager.Subscribe(event.TypeSaveFailed, a.handleFailure)
	a.eventManager.Subscribe(event.TypeLoadFailed, a.handleFailure)
	a.eventManager.Subscribe(event.TypeContentLoaded, func(event.Event) bool {
		logger.Debugf("App: stored document restored")
		return false
	})
}

// handleContentChanged re-arms the autosave timer and refreshes the status bar.
func (a *App) handleContentChanged(e event.Event) bool {
	data, ok := e.Data.(event.ContentChangedData)
	if !ok {
		logger.Warnf("App: content-changed event with unexpected data type: %T", e.Data)
		return false
	}
	a.statusBar.SetState(data.State)
	a.autosaver.Changed(data.State)
	return false
}

func (a *App) handleContentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.ContentSavedData); ok {
		logger.DebugTagf("persist", "App: content saved (autosave=%v)", data.IsAutosave)
	}
	return false
}

func (a *App) handleFailure(e event.Event) bool {
	if data, ok := e.Data.(event.FailureData); ok {
		logger.Errorf("App: %s: %v", e.Type, data.Err)
	}
	return false
}

// handleNotificationChange mirrors the presenter into the status bar and
// announces the change on the bus.
func (a *App) handleNotificationChange(visible bool, message string) {
	a.statusBar.SetNotification(visible, message)
	if visible {
		a.eventManager.Dispatch(event.TypeNotificationShown, event.NotificationData{Message: message})
		return
	}
	a.eventManager.Dispatch(event.TypeNotificationHidden, event.NotificationData{Message: message})
}
