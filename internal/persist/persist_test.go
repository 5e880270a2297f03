package persist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/storage"
)

type recorder struct {
	messages []string
}

func (r *recorder) Show(msg string) { r.messages = append(r.messages, msg) }

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(string, string) error         { return f.err }

func newManager(t *testing.T, store storage.Store) (*Manager, *recorder) {
	t.Helper()
	rec := &recorder{}
	m, err := New(store, "", rec)
	require.NoError(t, err)
	return m, rec
}

func sampleContent() *document.ContentState {
	s := document.CreateEmpty()
	s = document.ToggleBlockType(s, document.BlockHeaderOne)
	s = document.InsertText(s, "Notes")
	s, _ = document.HandleKeyCommand(s, document.CommandSplitBlock)
	s = document.InsertText(s, "plain ")
	s = document.ToggleInlineStyle(s, document.StyleBold)
	s = document.InsertText(s, "bold")
	s = document.ToggleInlineStyle(s, document.StyleRedLine)
	s = document.InsertText(s, "red")
	return s.CurrentContent()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "scribe.db"))
	require.NoError(t, err)
	defer store.Close()

	m, rec := newManager(t, store)
	original := sampleContent()
	require.NoError(t, m.Save(original, false))
	assert.Equal(t, []string{MsgSaved}, rec.messages)

	state, err := m.Load()
	require.NoError(t, err)
	loaded := state.CurrentContent()

	want, got := document.ToRaw(original), document.ToRaw(loaded)
	require.Len(t, got.Blocks, len(want.Blocks))
	for i := range want.Blocks {
		assert.Equal(t, want.Blocks[i].Text, got.Blocks[i].Text)
		assert.Equal(t, want.Blocks[i].Type, got.Blocks[i].Type)
		assert.Equal(t, want.Blocks[i].InlineStyleRanges, got.Blocks[i].InlineStyleRanges)
	}
	assert.Len(t, rec.messages, 1, "loading notifies nothing")
}

func TestSaveUsesFixedKey(t *testing.T) {
	store := storage.NewMemory()
	m, _ := newManager(t, store)
	assert.Equal(t, DefaultKey, m.Key())

	require.NoError(t, m.Save(document.FromText("hi"), true))
	value, ok, err := store.Get("editorContent")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, value, `"blocks"`)
	assert.Contains(t, value, `"entityMap"`)
}

func TestAutosaveDoesNotNotify(t *testing.T) {
	m, rec := newManager(t, storage.NewMemory())
	require.NoError(t, m.Save(document.FromText("x"), true))
	assert.Empty(t, rec.messages)
}

func TestSaveFailure(t *testing.T) {
	for _, autosave := range []bool{false, true} {
		m, rec := newManager(t, failingStore{err: errors.New("disk full")})
		err := m.Save(document.FromText("x"), autosave)
		assert.ErrorIs(t, err, ErrSaveFailed)
		assert.Equal(t, []string{MsgSaveFailed}, rec.messages)
	}
}

func TestLoadAbsentKey(t *testing.T) {
	m, rec := newManager(t, storage.NewMemory())
	state, err := m.Load()
	require.NoError(t, err)
	assert.False(t, state.CurrentContent().HasText())
	assert.Empty(t, rec.messages)
}

func TestLoadInvalidSnapshot(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"malformed json", `{"blocks": [`},
		{"not an object", `"hello"`},
		{"missing entity map", `{"blocks":[{"key":"a","text":"x"}]}`},
		{"no blocks", `{"blocks":[],"entityMap":{}}`},
		{"negative offset", `{"blocks":[{"key":"a","text":"x","inlineStyleRanges":[{"offset":-1,"length":1,"style":"BOLD"}]}],"entityMap":{}}`},
		{"range past text", `{"blocks":[{"key":"a","text":"x","inlineStyleRanges":[{"offset":0,"length":4,"style":"BOLD"}]}],"entityMap":{}}`},
		{"unknown block type", `{"blocks":[{"key":"a","text":"x","type":"table"}],"entityMap":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			require.NoError(t, store.Set(DefaultKey, tt.value))
			m, rec := newManager(t, store)

			var state document.EditorState
			var err error
			require.NotPanics(t, func() { state, err = m.Load() })
			assert.ErrorIs(t, err, ErrLoadFailed)
			assert.False(t, state.CurrentContent().HasText())
			assert.Equal(t, []string{MsgLoadFailed}, rec.messages)
		})
	}
}

func TestLoadStoreError(t *testing.T) {
	m, rec := newManager(t, failingStore{err: errors.New("locked")})
	state, err := m.Load()
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.False(t, state.IsZero())
	assert.Equal(t, []string{MsgLoadFailed}, rec.messages)
}

func TestNilNotifier(t *testing.T) {
	m, err := New(storage.NewMemory(), "custom", nil)
	require.NoError(t, err)
	assert.NoError(t, m.Save(document.FromText("x"), false))
	assert.Equal(t, "custom", m.Key())
}
