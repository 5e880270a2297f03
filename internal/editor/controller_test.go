package editor

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/keymap"
	"github.com/bethropolis/scribe/internal/persist"
	"github.com/bethropolis/scribe/internal/storage"
)

type recorder struct {
	messages []string
}

func (r *recorder) Show(msg string) { r.messages = append(r.messages, msg) }

type fixture struct {
	ctrl   *Controller
	store  *storage.MemoryStore
	notes  *recorder
	events *event.Manager
}

func newFixture(t *testing.T, mutate func(*Config)) *fixture {
	t.Helper()
	store := storage.NewMemory()
	notes := &recorder{}
	pm, err := persist.New(store, "", notes)
	require.NoError(t, err)
	events := event.NewManager()
	cfg := Config{Persister: pm, EventManager: events}
	if mutate != nil {
		mutate(&cfg)
	}
	ctrl, err := New(cfg)
	require.NoError(t, err)
	return &fixture{ctrl: ctrl, store: store, notes: notes, events: events}
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey { return tcell.NewEventKey(k, 0, mod) }
func char(r rune) *tcell.EventKey                        { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func (f *fixture) typeString(s string) {
	for _, r := range s {
		f.ctrl.HandleKey(char(r))
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestTypingAndHeadingTrigger(t *testing.T) {
	f := newFixture(t, nil)
	f.typeString("# Title")

	block := f.ctrl.State().CurrentContent().FirstBlock()
	assert.Equal(t, document.BlockHeaderOne, block.Type())
	assert.Equal(t, "Title", block.Text())
}

func TestSpaceWithoutTriggerIsInserted(t *testing.T) {
	f := newFixture(t, nil)
	f.typeString("a *b")
	assert.Equal(t, "a *b", f.ctrl.State().CurrentContent().PlainText())
}

func TestBoldTriggerThenTyping(t *testing.T) {
	f := newFixture(t, nil)
	f.typeString("* hi")
	block := f.ctrl.State().CurrentContent().FirstBlock()
	require.Equal(t, "hi", block.Text())
	assert.True(t, block.StyleAt(0).Has(document.StyleBold))
	assert.True(t, block.StyleAt(1).Has(document.StyleBold))
}

func TestShortcuts(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, Handled, f.ctrl.HandleKey(key(tcell.KeyCtrlB, tcell.ModCtrl)))
	assert.True(t, f.ctrl.State().CurrentInlineStyle().Has(document.StyleBold))

	assert.Equal(t, Handled, f.ctrl.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModAlt)))
	assert.True(t, f.ctrl.State().CurrentInlineStyle().Has(document.StyleUnderline))

	f.typeString("x")
	style := f.ctrl.State().CurrentContent().FirstBlock().StyleAt(0)
	assert.True(t, style.Has(document.StyleBold))
	assert.True(t, style.Has(document.StyleUnderline))
}

func TestExplicitSaveOnce(t *testing.T) {
	f := newFixture(t, nil)
	var saved []event.ContentSavedData
	f.events.Subscribe(event.TypeContentSaved, func(e event.Event) bool {
		saved = append(saved, e.Data.(event.ContentSavedData))
		return false
	})
	f.typeString("hello")

	assert.Equal(t, Handled, f.ctrl.HandleKey(key(tcell.KeyCtrlS, tcell.ModCtrl)))
	assert.Equal(t, []event.ContentSavedData{{IsAutosave: false}}, saved)
	assert.Equal(t, []string{persist.MsgSaved}, f.notes.messages)
	assert.False(t, f.ctrl.Saving())

	value, ok, err := f.store.Get(persist.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, value, `"text":"hello"`)
}

func TestSaveIgnoredWhileSaving(t *testing.T) {
	var queued []func()
	f := newFixture(t, func(c *Config) {
		c.Post = func(fn func()) error {
			queued = append(queued, fn)
			return nil
		}
	})
	f.ctrl.Save()
	assert.True(t, f.ctrl.Saving())
	f.ctrl.Save()
	require.Len(t, queued, 1)

	queued[0]()
	assert.False(t, f.ctrl.Saving())
	assert.Equal(t, []string{persist.MsgSaved}, f.notes.messages)
}

func TestSavePostFailureSavesNow(t *testing.T) {
	f := newFixture(t, func(c *Config) {
		c.Post = func(func()) error { return errors.New("queue full") }
	})
	f.ctrl.Save()
	assert.False(t, f.ctrl.Saving())
	assert.Equal(t, []string{persist.MsgSaved}, f.notes.messages)
}

func TestAutosaveIsSilent(t *testing.T) {
	f := newFixture(t, nil)
	f.typeString("x")
	f.ctrl.Autosave(f.ctrl.State().CurrentContent())
	assert.Empty(t, f.notes.messages)
	_, ok, _ := f.store.Get(persist.DefaultKey)
	assert.True(t, ok)
}

func TestLoadRestoresAndFallsBack(t *testing.T) {
	f := newFixture(t, nil)
	f.typeString("# Saved")
	f.ctrl.Save()

	g := newFixture(t, nil)
	value, _, _ := f.store.Get(persist.DefaultKey)
	require.NoError(t, g.store.Set(persist.DefaultKey, value))
	require.NoError(t, g.ctrl.Load())
	block := g.ctrl.State().CurrentContent().FirstBlock()
	assert.Equal(t, "Saved", block.Text())
	assert.Equal(t, document.BlockHeaderOne, block.Type())

	h := newFixture(t, nil)
	var failures int
	h.events.Subscribe(event.TypeLoadFailed, func(event.Event) bool { failures++; return false })
	require.NoError(t, h.store.Set(persist.DefaultKey, "{not json"))
	assert.ErrorIs(t, h.ctrl.Load(), persist.ErrLoadFailed)
	assert.False(t, h.ctrl.State().CurrentContent().HasText())
	assert.Equal(t, []string{persist.MsgLoadFailed}, h.notes.messages)
	assert.Equal(t, 1, failures)
}

func TestContentChangedEvents(t *testing.T) {
	f := newFixture(t, nil)
	var states []document.EditorState
	f.events.Subscribe(event.TypeContentChanged, func(e event.Event) bool {
		states = append(states, e.Data.(event.ContentChangedData).State)
		return false
	})
	f.typeString("ab")
	require.Len(t, states, 2)
	assert.Equal(t, "a", states[0].CurrentContent().PlainText())
	assert.Equal(t, f.ctrl.State(), states[1])
}

func TestPaste(t *testing.T) {
	f := newFixture(t, func(c *Config) {
		c.Clipboard = func() (string, error) { return "one\ntwo\tx", nil }
	})
	f.typeString(">")
	assert.Equal(t, Handled, f.ctrl.HandleKey(key(tcell.KeyCtrlV, tcell.ModCtrl)))

	content := f.ctrl.State().CurrentContent()
	assert.Equal(t, ">one\ntwo    x", content.PlainText())
	assert.Equal(t, 2, content.BlockCount())
	assert.Equal(t, content.LastBlock().Key(), f.ctrl.State().Selection().FocusKey)
}

func TestPasteWithoutClipboard(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, NotHandled, f.ctrl.HandleKeyCommand(keymap.CommandPaste))

	g := newFixture(t, func(c *Config) {
		c.Clipboard = func() (string, error) { return "", errors.New("no xclip") }
	})
	assert.Equal(t, NotHandled, g.ctrl.HandleKeyCommand(keymap.CommandPaste))
}

func TestAppCommands(t *testing.T) {
	var got []keymap.Command
	f := newFixture(t, func(c *Config) {
		c.AppCommand = func(cmd keymap.Command) bool {
			got = append(got, cmd)
			return cmd == keymap.CommandQuit
		}
	})
	assert.Equal(t, Handled, f.ctrl.HandleKey(key(tcell.KeyCtrlQ, tcell.ModCtrl)))
	assert.Equal(t, NotHandled, f.ctrl.HandleKey(key(tcell.KeyEscape, tcell.ModNone)))
	assert.Equal(t, []keymap.Command{keymap.CommandQuit, keymap.CommandEscape}, got)
}

func TestDefaultCommandsAndFallthrough(t *testing.T) {
	f := newFixture(t, nil)
	f.typeString("ab")
	assert.Equal(t, Handled, f.ctrl.HandleKey(key(tcell.KeyBackspace2, tcell.ModNone)))
	assert.Equal(t, "a", f.ctrl.State().CurrentContent().PlainText())

	assert.Equal(t, Handled, f.ctrl.HandleKey(key(tcell.KeyCtrlZ, tcell.ModCtrl)))
	assert.Equal(t, "ab", f.ctrl.State().CurrentContent().PlainText())

	assert.Equal(t, NotHandled, f.ctrl.HandleKey(key(tcell.KeyF5, tcell.ModNone)))
	assert.Equal(t, NotHandled, f.ctrl.HandleKeyCommand("transpose"))
	f.ctrl.HandleKey(key(tcell.KeyHome, tcell.ModNone))
	assert.Equal(t, NotHandled, f.ctrl.HandleKey(key(tcell.KeyLeft, tcell.ModNone)), "nothing left of the first character")
}

func TestUndoLimitApplied(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.UndoLimit = -1 })
	f.typeString("a")
	assert.False(t, f.ctrl.State().CanUndo())
}
