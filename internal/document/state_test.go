package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(s EditorState, text string) EditorState {
	for _, r := range text {
		s = InsertText(s, string(r))
	}
	return s
}

func TestCreateEmpty(t *testing.T) {
	s := CreateEmpty()
	c := s.CurrentContent()
	require.Equal(t, 1, c.BlockCount())
	assert.Equal(t, "", c.FirstBlock().Text())
	assert.Equal(t, BlockUnstyled, c.FirstBlock().Type())
	assert.False(t, c.HasText())
	assert.True(t, s.Selection().IsCollapsed())
	assert.Equal(t, c.FirstBlock().Key(), s.Selection().AnchorKey)
}

func TestPushKeepsPreviousStates(t *testing.T) {
	s0 := CreateEmpty()
	s1 := InsertText(s0, "hello")

	assert.Equal(t, "", s0.CurrentContent().PlainText())
	assert.Equal(t, "hello", s1.CurrentContent().PlainText())
	assert.Equal(t, 5, s1.Selection().FocusOffset)
	assert.Equal(t, ChangeInsertCharacters, s1.LastChangeType())
}

func TestUndoRedo(t *testing.T) {
	s := typeText(CreateEmpty(), "abc")
	s, _ = HandleKeyCommand(s, CommandSplitBlock)
	s = typeText(s, "de")
	require.Equal(t, "abc\nde", s.CurrentContent().PlainText())

	// Consecutive typing collapses into one undo step.
	s, ok := HandleKeyCommand(s, CommandUndo)
	require.True(t, ok)
	assert.Equal(t, "abc\n", s.CurrentContent().PlainText())

	s, ok = HandleKeyCommand(s, CommandUndo)
	require.True(t, ok)
	assert.Equal(t, "abc", s.CurrentContent().PlainText())

	s, ok = HandleKeyCommand(s, CommandRedo)
	require.True(t, ok)
	assert.Equal(t, "abc\n", s.CurrentContent().PlainText())

	s = InsertText(s, "x")
	assert.False(t, s.CanRedo())
}

func TestUndoLimit(t *testing.T) {
	s := SetUndoLimit(CreateEmpty(), 2)
	for i := 0; i < 5; i++ {
		s, _ = HandleKeyCommand(s, CommandSplitBlock)
	}
	var undone int
	for s.CanUndo() {
		s = Undo(s)
		undone++
	}
	assert.Equal(t, 2, undone)
	assert.Equal(t, 4, s.CurrentContent().BlockCount())

	s = SetUndoLimit(s, 0)
	s, _ = HandleKeyCommand(s, CommandSplitBlock)
	assert.False(t, s.CanUndo())
}

func TestCollapsedToggleSetsOverride(t *testing.T) {
	s := ToggleInlineStyle(CreateEmpty(), StyleBold)
	assert.True(t, s.CurrentInlineStyle().Has(StyleBold))

	s = InsertText(s, "a")
	b := s.CurrentContent().FirstBlock()
	assert.True(t, b.StyleAt(0).Has(StyleBold))
	_, pending := s.InlineStyleOverride()
	assert.False(t, pending, "insertion consumes the override")
	assert.True(t, s.CurrentInlineStyle().Has(StyleBold), "style continues from the previous character")

	s = ToggleInlineStyle(s, StyleBold)
	s = InsertText(s, "b")
	assert.False(t, s.CurrentContent().FirstBlock().StyleAt(1).Has(StyleBold))
}

func TestOverrideSurvivesBlockTypeChange(t *testing.T) {
	s := ToggleInlineStyle(CreateEmpty(), StyleUnderline)
	s = ToggleBlockType(s, BlockHeaderOne)
	assert.True(t, s.CurrentInlineStyle().Has(StyleUnderline))

	s = AcceptSelection(s, s.Selection())
	assert.False(t, s.CurrentInlineStyle().Has(StyleUnderline))
}

func TestToggleInlineStyleOnRange(t *testing.T) {
	s := typeText(CreateEmpty(), "hello")
	key := s.CurrentContent().FirstBlock().Key()
	sel := CollapsedAt(key, 1).WithOffsets(1, 4)
	s = AcceptSelection(s, sel)

	s = ToggleInlineStyle(s, StyleBold)
	b := s.CurrentContent().FirstBlock()
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, i >= 1 && i < 4, b.StyleAt(i).Has(StyleBold), "offset %d", i)
	}
	assert.Equal(t, ChangeInlineStyle, s.LastChangeType())

	s = ToggleInlineStyle(s, StyleBold)
	b = s.CurrentContent().FirstBlock()
	for i := 0; i < b.Len(); i++ {
		assert.False(t, b.StyleAt(i).Has(StyleBold), "offset %d", i)
	}
}

func TestToggleBlockType(t *testing.T) {
	s := ToggleBlockType(CreateEmpty(), BlockHeaderOne)
	assert.Equal(t, BlockHeaderOne, s.CurrentContent().FirstBlock().Type())
	s = ToggleBlockType(s, BlockHeaderOne)
	assert.Equal(t, BlockUnstyled, s.CurrentContent().FirstBlock().Type())
}

func TestBackspace(t *testing.T) {
	s := typeText(CreateEmpty(), "ab")
	s, _ = HandleKeyCommand(s, CommandSplitBlock)
	s = ToggleBlockType(s, BlockHeaderOne)
	s = typeText(s, "c")

	s, ok := HandleKeyCommand(s, CommandBackspace)
	require.True(t, ok)
	assert.Equal(t, "ab\n", s.CurrentContent().PlainText())

	s, ok = HandleKeyCommand(s, CommandBackspace)
	require.True(t, ok)
	assert.Equal(t, BlockUnstyled, s.CurrentContent().LastBlock().Type(), "styled block is reset first")
	assert.Equal(t, 2, s.CurrentContent().BlockCount())

	s, ok = HandleKeyCommand(s, CommandBackspace)
	require.True(t, ok)
	assert.Equal(t, "ab", s.CurrentContent().PlainText())
	assert.Equal(t, 2, s.Selection().FocusOffset)

	s = AcceptSelection(s, CollapsedAt(s.CurrentContent().FirstBlock().Key(), 0))
	_, ok = HandleKeyCommand(s, CommandBackspace)
	assert.False(t, ok)
}

func TestDeleteForward(t *testing.T) {
	s := typeText(CreateEmpty(), "ab")
	s, _ = HandleKeyCommand(s, CommandSplitBlock)
	s = typeText(s, "cd")
	first := s.CurrentContent().FirstBlock().Key()

	s = AcceptSelection(s, CollapsedAt(first, 2))
	s, ok := HandleKeyCommand(s, CommandDelete)
	require.True(t, ok)
	assert.Equal(t, "abcd", s.CurrentContent().PlainText())

	s, ok = HandleKeyCommand(s, CommandDelete)
	require.True(t, ok)
	assert.Equal(t, "abd", s.CurrentContent().PlainText())
}

func TestMovement(t *testing.T) {
	s := typeText(CreateEmpty(), "abc")
	s, _ = HandleKeyCommand(s, CommandSplitBlock)
	s = typeText(s, "d")
	c := s.CurrentContent()
	first, second := c.BlockAt(0).Key(), c.BlockAt(1).Key()

	s, ok := HandleKeyCommand(s, CommandMoveUp)
	require.True(t, ok)
	assert.Equal(t, CollapsedAt(first, 1), s.Selection())

	s, _ = HandleKeyCommand(s, CommandMoveLineEnd)
	assert.Equal(t, 3, s.Selection().FocusOffset)

	s, _ = HandleKeyCommand(s, CommandMoveRight)
	assert.Equal(t, CollapsedAt(second, 0), s.Selection())

	s, _ = HandleKeyCommand(s, CommandMoveLeft)
	assert.Equal(t, CollapsedAt(first, 3), s.Selection())

	s, _ = HandleKeyCommand(s, CommandSelectLeft)
	s, _ = HandleKeyCommand(s, CommandSelectLeft)
	sel := s.Selection()
	assert.True(t, sel.IsBackward)
	assert.Equal(t, 1, sel.StartOffset())
	assert.Equal(t, 3, sel.EndOffset())

	s, _ = HandleKeyCommand(s, CommandMoveRight)
	assert.Equal(t, CollapsedAt(first, 3), s.Selection())

	_, ok = HandleKeyCommand(s, CommandMoveUp)
	assert.False(t, ok)
}

func TestUnknownCommand(t *testing.T) {
	s := CreateEmpty()
	next, ok := HandleKeyCommand(s, "transpose-characters")
	assert.False(t, ok)
	assert.Equal(t, s, next)
}
