package document

import "slices"

// ChangeType tags the kind of edit that produced a new content state.
type ChangeType string

const (
	ChangeNone             ChangeType = ""
	ChangeInsertCharacters ChangeType = "insert-characters"
	ChangeRemoveRange      ChangeType = "remove-range"
	ChangeBackspace        ChangeType = "backspace-character"
	ChangeDelete           ChangeType = "delete-character"
	ChangeSplitBlock       ChangeType = "split-block"
	ChangeInlineStyle      ChangeType = "change-inline-style"
	ChangeBlockType        ChangeType = "change-block-type"
	ChangeBlockData        ChangeType = "change-block-data"
	ChangeAdjustDepth      ChangeType = "adjust-depth"
	ChangeUndo             ChangeType = "undo"
	ChangeRedo             ChangeType = "redo"
)

// DefaultUndoLimit bounds the undo stack of new editor states.
const DefaultUndoLimit = 100

// EditorState is a snapshot of everything the editor shows: the content,
// the selection, a pending inline style for the next typed character and the
// undo/redo stacks. It is a value; every operation returns a new one and
// earlier values remain valid.
type EditorState struct {
	content    *ContentState
	selection  SelectionState
	override   *StyleSet
	undo       []*ContentState
	redo       []*ContentState
	lastChange ChangeType
	undoLimit  int
}

// CreateEmpty returns a state holding an empty document.
func CreateEmpty() EditorState {
	return CreateWithContent(EmptyContent())
}

// CreateWithContent returns a state showing c with the caret at its start.
func CreateWithContent(c *ContentState) EditorState {
	return EditorState{
		content:   c,
		selection: CollapsedAt(c.FirstBlock().Key(), 0),
		undoLimit: DefaultUndoLimit,
	}
}

// IsZero reports whether s was never initialised.
func (s EditorState) IsZero() bool { return s.content == nil }

func (s EditorState) CurrentContent() *ContentState { return s.content }
func (s EditorState) Selection() SelectionState     { return s.selection }
func (s EditorState) LastChangeType() ChangeType    { return s.lastChange }
func (s EditorState) CanUndo() bool                 { return len(s.undo) > 0 }
func (s EditorState) CanRedo() bool                 { return len(s.redo) > 0 }

// InlineStyleOverride returns the pending style for the next inserted text,
// if one is set.
func (s EditorState) InlineStyleOverride() (StyleSet, bool) {
	if s.override == nil {
		return StyleSet{}, false
	}
	return *s.override, true
}

// CurrentInlineStyle is the style the next typed character will get: the
// override if set, otherwise the style of the character before the caret (or
// at the selection start). An empty block has no style.
func (s EditorState) CurrentInlineStyle() StyleSet {
	if s.override != nil {
		return *s.override
	}
	block, _ := s.content.BlockForKey(s.selection.StartKey())
	if block == nil || block.Len() == 0 {
		return StyleSet{}
	}
	offset := s.selection.StartOffset()
	if s.selection.IsCollapsed() {
		if offset > 0 {
			return block.StyleAt(min(offset, block.Len()) - 1)
		}
		return block.StyleAt(0)
	}
	return block.StyleAt(min(offset, block.Len()-1))
}

// SetUndoLimit returns s with a different undo bound; n <= 0 disables undo.
func SetUndoLimit(s EditorState, n int) EditorState {
	s.undoLimit = n
	if n <= 0 {
		s.undo = nil
	} else if len(s.undo) > n {
		s.undo = slices.Clone(s.undo[len(s.undo)-n:])
	}
	return s
}

// Push records c as the new current content. The selection moves to the
// content's selection-after, the redo stack is cleared and, unless the change
// continues a run of the same typing change, the previous content becomes an
// undo step. Pending inline styles survive only block-level changes.
func Push(s EditorState, c *ContentState, change ChangeType) EditorState {
	if c == s.content {
		return s
	}
	next := s
	next.lastChange = change
	next.redo = nil
	if startsUndoStep(s, change) {
		if s.undoLimit > 0 {
			next.undo = appendBounded(s.undo, s.content, s.undoLimit)
		}
	} else {
		// A run of typing undoes as one step back to where it started.
		c = c.with(c.blocks, s.content.selectionBefore, c.selectionAfter)
	}
	next.content = c
	next.selection = c.SelectionAfter()
	if !keepsOverride(change) {
		next.override = nil
	}
	return next
}

func startsUndoStep(s EditorState, change ChangeType) bool {
	if change != s.lastChange || s.selection != s.content.selectionAfter {
		return true
	}
	switch change {
	case ChangeInsertCharacters, ChangeBackspace, ChangeDelete:
		return false
	}
	return true
}

func keepsOverride(change ChangeType) bool {
	switch change {
	case ChangeAdjustDepth, ChangeBlockType, ChangeSplitBlock:
		return true
	}
	return false
}

func appendBounded(stack []*ContentState, c *ContentState, limit int) []*ContentState {
	next := append(slices.Clip(stack), c)
	if len(next) > limit {
		next = next[len(next)-limit:]
	}
	return next
}

// SetInlineStyleOverride sets the style the next inserted text will carry.
func SetInlineStyleOverride(s EditorState, style StyleSet) EditorState {
	s.override = &style
	return s
}

// AcceptSelection moves the selection. Any pending inline style is dropped.
func AcceptSelection(s EditorState, sel SelectionState) EditorState {
	s.selection = sel.orient(s.content)
	s.override = nil
	return s
}

// Undo restores the previous content, if any.
func Undo(s EditorState) EditorState {
	if len(s.undo) == 0 {
		return s
	}
	prev := s.undo[len(s.undo)-1]
	next := s
	next.undo = slices.Clip(s.undo[:len(s.undo)-1])
	next.redo = append(slices.Clip(s.redo), s.content)
	next.content = prev
	next.selection = s.content.SelectionBefore()
	next.lastChange = ChangeUndo
	next.override = nil
	return next
}

// Redo reapplies the most recently undone content, if any.
func Redo(s EditorState) EditorState {
	if len(s.redo) == 0 {
		return s
	}
	c := s.redo[len(s.redo)-1]
	next := s
	next.redo = slices.Clip(s.redo[:len(s.redo)-1])
	next.undo = appendBounded(s.undo, s.content, max(s.undoLimit, 1))
	next.content = c
	next.selection = c.SelectionAfter()
	next.lastChange = ChangeRedo
	next.override = nil
	return next
}
