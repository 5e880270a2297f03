package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/scribe/internal/document"
)

// typeInBlock types text into a fresh editor one character at a time.
func typeInBlock(text string) document.EditorState {
	s := document.CreateEmpty()
	for _, r := range text {
		s = document.InsertText(s, string(r))
	}
	return s
}

func TestHeadingTrigger(t *testing.T) {
	s, handled := New().HandleBeforeInput(" ", typeInBlock("#"))
	require.True(t, handled)

	block := s.CurrentContent().FirstBlock()
	assert.Equal(t, "", block.Text())
	assert.Equal(t, document.BlockHeaderOne, block.Type())
	assert.Equal(t, document.CollapsedAt(block.Key(), 0), s.Selection())
	assert.Equal(t, document.ChangeBlockData, s.LastChangeType())
}

func TestHeadingTriggerOnHeadingToggles(t *testing.T) {
	s := document.ToggleBlockType(document.CreateEmpty(), document.BlockHeaderOne)
	s = document.InsertText(s, "#")
	s, handled := New().HandleBeforeInput(" ", s)
	require.True(t, handled)
	assert.Equal(t, document.BlockUnstyled, s.CurrentContent().FirstBlock().Type())
}

func TestInlineTriggers(t *testing.T) {
	tests := []struct {
		trigger string
		style   document.Style
	}{
		{"*", document.StyleBold},
		{"**", document.StyleRedLine},
		{"***", document.StyleUnderline},
	}
	for _, tt := range tests {
		t.Run(tt.trigger, func(t *testing.T) {
			s, handled := New().HandleBeforeInput(" ", typeInBlock(tt.trigger))
			require.True(t, handled)

			content := s.CurrentContent()
			assert.Equal(t, "", content.PlainText(), "exactly the trigger characters are removed")
			assert.Equal(t, document.BlockUnstyled, content.FirstBlock().Type())
			assert.Equal(t, 0, s.Selection().FocusOffset)

			active := s.CurrentInlineStyle()
			assert.True(t, active.Has(tt.style))
			assert.Equal(t, 1, active.Len())

			// The pending style applies to what is typed next.
			s = document.InsertText(s, "x")
			assert.True(t, s.CurrentContent().FirstBlock().StyleAt(0).Has(tt.style))
		})
	}
}

func TestUnderlineRemovesExactlyThreeCharacters(t *testing.T) {
	before := typeInBlock("***")
	require.Equal(t, 3, before.CurrentContent().FirstBlock().Len())
	s, handled := New().HandleBeforeInput(" ", before)
	require.True(t, handled)
	assert.Equal(t, 0, s.CurrentContent().FirstBlock().Len())
	assert.True(t, s.CurrentInlineStyle().Has(document.StyleUnderline))
}

func TestRedLineAlwaysEndsOn(t *testing.T) {
	d := New()
	starts := map[string]document.EditorState{
		"plain": typeInBlock("**"),
		"red override": func() document.EditorState {
			s := document.ToggleInlineStyle(document.CreateEmpty(), document.StyleRedLine)
			return document.InsertText(s, "**")
		}(),
		"after red text": func() document.EditorState {
			s := document.ToggleInlineStyle(document.CreateEmpty(), document.StyleRedLine)
			s = document.InsertText(s, "red")
			s, _ = document.HandleKeyCommand(s, document.CommandSplitBlock)
			s = document.ToggleInlineStyle(s, document.StyleRedLine)
			return document.InsertText(s, "**")
		}(),
	}
	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			s, handled := d.HandleBeforeInput(" ", start)
			require.True(t, handled)
			assert.True(t, s.CurrentInlineStyle().Has(document.StyleRedLine))

			// Firing again over red "**" still leaves it on.
			s = document.InsertText(s, "**")
			s, handled = d.HandleBeforeInput(" ", s)
			require.True(t, handled)
			assert.True(t, s.CurrentInlineStyle().Has(document.StyleRedLine))
		})
	}
}

func TestNotHandled(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		chars string
	}{
		{"other character", "#", "a"},
		{"multi character input", "#", "  "},
		{"text before trigger", "a#", " "},
		{"text after trigger", "#a", " "},
		{"too many stars", "****", " "},
		{"empty block", "", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := typeInBlock(tt.text)
			s, handled := New().HandleBeforeInput(tt.chars, start)
			assert.False(t, handled)
			assert.Equal(t, start, s)
		})
	}
}

func TestTriggerInLaterBlock(t *testing.T) {
	s := typeInBlock("intro")
	s, _ = document.HandleKeyCommand(s, document.CommandSplitBlock)
	s = document.InsertText(s, "#")

	s, handled := New().HandleBeforeInput(" ", s)
	require.True(t, handled)
	content := s.CurrentContent()
	require.Equal(t, 2, content.BlockCount())
	assert.Equal(t, document.BlockUnstyled, content.BlockAt(0).Type())
	assert.Equal(t, "intro", content.BlockAt(0).Text())
	assert.Equal(t, document.BlockHeaderOne, content.BlockAt(1).Type())
	assert.Equal(t, "", content.BlockAt(1).Text())
}

func TestCustomRules(t *testing.T) {
	quote := Rule{Trigger: ">", Name: "quote", Apply: func(s document.EditorState, m Match) document.EditorState {
		s = document.ToggleBlockType(s, document.BlockBlockquote)
		return m.Remove(s, document.ChangeBlockData)
	}}
	d := New(quote)

	s, handled := d.HandleBeforeInput(" ", typeInBlock(">"))
	require.True(t, handled)
	assert.Equal(t, document.BlockBlockquote, s.CurrentContent().FirstBlock().Type())

	_, handled = d.HandleBeforeInput(" ", typeInBlock("#"))
	assert.False(t, handled)
}

func TestUndoRestoresTrigger(t *testing.T) {
	s, handled := New().HandleBeforeInput(" ", typeInBlock("*"))
	require.True(t, handled)
	s = document.Undo(s)
	assert.Equal(t, "*", s.CurrentContent().PlainText())
}
