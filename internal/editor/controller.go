// Package editor owns the editor state and routes input to the document
// model, the trigger detector and persistence.
package editor

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/keymap"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/persist"
	"github.com/bethropolis/scribe/internal/trigger"
)

var _ Persister = (*persist.Manager)(nil)

// HandleResult reports whether an input was consumed.
type HandleResult string

const (
	Handled    HandleResult = "handled"
	NotHandled HandleResult = "not-handled"
)

// Persister saves and restores documents.
type Persister interface {
	Save(content *document.ContentState, isAutosave bool) error
	Load() (document.EditorState, error)
}

// Config holds dependencies for the Controller.
type Config struct {
	Persister    Persister
	EventManager *event.Manager
	Keymap       *keymap.Resolver  // defaults to keymap.New()
	Triggers     *trigger.Detector // defaults to trigger.New()
	UndoLimit    int               // 0 keeps document.DefaultUndoLimit

	// Clipboard is read by the paste command; nil disables it.
	Clipboard func() (string, error)
	// Post defers f to the event loop so a "saving" frame can be drawn before
	// an explicit save runs. Nil runs saves immediately.
	Post func(f func()) error
	// AppCommand receives commands the editor does not own (quit, escape,
	// cycle-theme).
	AppCommand func(cmd keymap.Command) bool
}

// Controller is the single owner of the editor state.
type Controller struct {
	persister    Persister
	eventManager *event.Manager
	keymap       *keymap.Resolver
	triggers     *trigger.Detector
	clipboard    func() (string, error)
	undoLimit    int
	post         func(f func()) error
	appCommand   func(cmd keymap.Command) bool

	state  document.EditorState
	saving bool
}

// New creates a Controller holding an empty document.
func New(cfg Config) (*Controller, error) {
	if cfg.Persister == nil || cfg.EventManager == nil {
		return nil, errors.New("editor.New: persister and event manager are required")
	}
	c := &Controller{
		persister:    cfg.Persister,
		eventManager: cfg.EventManager,
		keymap:       cfg.Keymap,
		triggers:     cfg.Triggers,
		clipboard:    cfg.Clipboard,
		undoLimit:    cfg.UndoLimit,
		post:         cfg.Post,
		appCommand:   cfg.AppCommand,
	}
	if c.keymap == nil {
		c.keymap = keymap.New()
	}
	if c.triggers == nil {
		c.triggers = trigger.New()
	}
	c.state = c.prepare(document.CreateEmpty())
	return c, nil
}

func (c *Controller) prepare(s document.EditorState) document.EditorState {
	if c.undoLimit != 0 {
		s = document.SetUndoLimit(s, c.undoLimit)
	}
	return s
}

// State returns the current editor state.
func (c *Controller) State() document.EditorState { return c.state }

// Saving reports whether an explicit save is in progress.
func (c *Controller) Saving() bool { return c.saving }

// SetState replaces the editor state and announces the change.
func (c *Controller) SetState(s document.EditorState) {
	c.state = s
	c.eventManager.Dispatch(event.TypeContentChanged, event.ContentChangedData{State: s})
}

// Load restores the stored document. Failures leave an empty document; the
// persister has already told the user.
func (c *Controller) Load() error {
	s, err := c.persister.Load()
	c.SetState(c.prepare(s))
	if err != nil {
		c.eventManager.Dispatch(event.TypeLoadFailed, event.FailureData{Err: err})
		return err
	}
	c.eventManager.Dispatch(event.TypeContentLoaded, nil)
	return nil
}

// SaveContent persists content. Failures are reported by the persister and
// through the event bus; they never stop the editor.
func (c *Controller) SaveContent(content *document.ContentState, isAutosave bool) error {
	err := c.persister.Save(content, isAutosave)
	if err != nil {
		c.eventManager.Dispatch(event.TypeSaveFailed, event.FailureData{Err: err})
		return err
	}
	c.eventManager.Dispatch(event.TypeContentSaved, event.ContentSavedData{IsAutosave: isAutosave})
	return nil
}

// Autosave persists content as an autosave.
func (c *Controller) Autosave(content *document.ContentState) {
	_ = c.SaveContent(content, true)
}

// Save starts an explicit save of the current content. Requests made while
// one is in progress are ignored.
func (c *Controller) Save() {
	if c.saving {
		logger.Debugf("editor: save already in progress, ignoring request")
		return
	}
	c.saving = true
	content := c.state.CurrentContent()
	run := func() {
		defer func() { c.saving = false }()
		_ = c.SaveContent(content, false)
	}
	if c.post == nil {
		run()
		return
	}
	if err := c.post(run); err != nil {
		logger.Warnf("editor: could not queue save, saving now: %v", err)
		run()
	}
}

// Select moves the selection, ending any run of typing.
func (c *Controller) Select(sel document.SelectionState) {
	c.SetState(document.AcceptSelection(c.state, sel))
}

// HandleKey routes a key event: bound commands first, then character input
// through the trigger detector.
func (c *Controller) HandleKey(ev *tcell.EventKey) HandleResult {
	if cmd := c.keymap.Resolve(ev); cmd != keymap.CommandNone {
		return c.HandleKeyCommand(cmd)
	}
	if text, ok := keymap.Text(ev); ok {
		return c.HandleBeforeInput(text)
	}
	return NotHandled
}

// HandleBeforeInput runs the trigger detector on typed chars and inserts
// them when no trigger fires.
func (c *Controller) HandleBeforeInput(chars string) HandleResult {
	if next, ok := c.triggers.HandleBeforeInput(chars, c.state); ok {
		c.SetState(next)
		return Handled
	}
	c.SetState(document.InsertText(c.state, chars))
	return Handled
}

// HandleKeyCommand dispatches a named command.
func (c *Controller) HandleKeyCommand(cmd keymap.Command) HandleResult {
	switch cmd {
	case keymap.CommandToggleBold:
		c.SetState(document.ToggleInlineStyle(c.state, document.StyleBold))
		return Handled
	case keymap.CommandToggleUnderline:
		c.SetState(document.ToggleInlineStyle(c.state, document.StyleUnderline))
		return Handled
	case keymap.CommandSave:
		c.Save()
		return Handled
	case keymap.CommandPaste:
		return c.pasteFromClipboard()
	case keymap.CommandQuit, keymap.CommandEscape, keymap.CommandCycleTheme:
		if c.appCommand != nil && c.appCommand(cmd) {
			return Handled
		}
		return NotHandled
	}
	if next, ok := document.HandleKeyCommand(c.state, string(cmd)); ok {
		c.SetState(next)
		return Handled
	}
	return NotHandled
}

// HandlePastedText replaces the selection with text.
func (c *Controller) HandlePastedText(text string) HandleResult {
	text = strings.ReplaceAll(text, "\t", "    ")
	content := document.ReplaceText(c.state.CurrentContent(), c.state.Selection(), text, c.state.CurrentInlineStyle(), "")
	c.SetState(document.Push(c.state, content, document.ChangeInsertCharacters))
	return Handled
}

func (c *Controller) pasteFromClipboard() HandleResult {
	if c.clipboard == nil {
		return NotHandled
	}
	text, err := c.clipboard()
	if err != nil {
		logger.Warnf("editor: reading clipboard: %v", err)
		return NotHandled
	}
	if text == "" {
		return NotHandled
	}
	return c.HandlePastedText(text)
}
