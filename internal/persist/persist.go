// Package persist saves the editor document to the local store as a JSON
// snapshot and restores it on startup.
package persist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/storage"
)

// DefaultKey is the store key the document lives under.
const DefaultKey = "editorContent"

// User-facing outcome messages.
const (
	MsgSaved      = "Content saved successfully!"
	MsgSaveFailed = "Error saving content. Please try again."
	MsgLoadFailed = "Error loading saved content. Starting with empty editor."
)

var (
	// ErrSaveFailed wraps every error returned by Save.
	ErrSaveFailed = errors.New("save failed")
	// ErrLoadFailed wraps every error returned by Load.
	ErrLoadFailed = errors.New("load failed")
)

//go:embed snapshot.schema.json
var snapshotSchema []byte

const schemaURL = "snapshot.schema.json"

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Show(message string)
}

// Manager moves documents between the editor and a storage.Store.
type Manager struct {
	store    storage.Store
	key      string
	notifier Notifier
	schema   *jsonschema.Schema
}

// New creates a Manager storing under key (DefaultKey if empty). notifier may
// be nil.
func New(store storage.Store, key string, notifier Notifier) (*Manager, error) {
	if key == "" {
		key = DefaultKey
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(snapshotSchema)); err != nil {
		return nil, fmt.Errorf("add snapshot schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	return &Manager{store: store, key: key, notifier: notifier, schema: schema}, nil
}

// Key returns the store key in use.
func (m *Manager) Key() string { return m.key }

func (m *Manager) notify(msg string) {
	if m.notifier != nil {
		m.notifier.Show(msg)
	}
}

// Save writes content to the store. Explicit saves announce success; any
// failure is announced, logged and returned wrapping ErrSaveFailed.
func (m *Manager) Save(content *document.ContentState, isAutosave bool) error {
	data, err := json.Marshal(document.ToRaw(content))
	if err == nil {
		err = m.store.Set(m.key, string(data))
	}
	if err != nil {
		logger.Errorf("persist: saving %q failed: %v", m.key, err)
		m.notify(MsgSaveFailed)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	logger.DebugTagf("persist", "saved %d bytes under %q (autosave=%v)", len(data), m.key, isAutosave)
	if !isAutosave {
		m.notify(MsgSaved)
	}
	return nil
}

// Load reads the stored document. An absent key yields an empty editor
// silently; an unreadable or invalid snapshot yields an empty editor, a
// notification and an error wrapping ErrLoadFailed.
func (m *Manager) Load() (document.EditorState, error) {
	value, ok, err := m.store.Get(m.key)
	if err != nil {
		return m.loadFailed(err)
	}
	if !ok {
		logger.Debugf("persist: nothing stored under %q", m.key)
		return document.CreateEmpty(), nil
	}
	content, err := m.decode([]byte(value))
	if err != nil {
		return m.loadFailed(err)
	}
	logger.Infof("persist: loaded %d blocks from %q", content.BlockCount(), m.key)
	return document.CreateWithContent(content), nil
}

func (m *Manager) loadFailed(err error) (document.EditorState, error) {
	logger.Errorf("persist: loading %q failed: %v", m.key, err)
	m.notify(MsgLoadFailed)
	return document.CreateEmpty(), fmt.Errorf("%w: %w", ErrLoadFailed, err)
}

// decode parses and validates a snapshot.
func (m *Manager) decode(data []byte) (*document.ContentState, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if err := m.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("validate snapshot: %w", err)
	}
	var raw document.RawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return document.FromRaw(raw)
}
