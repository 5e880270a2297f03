package document

// Commands understood by HandleKeyCommand.
const (
	CommandBold          = "bold"
	CommandItalic        = "italic"
	CommandUnderline     = "underline"
	CommandCode          = "code"
	CommandBackspace     = "backspace"
	CommandDelete        = "delete"
	CommandSplitBlock    = "split-block"
	CommandUndo          = "undo"
	CommandRedo          = "redo"
	CommandMoveLeft      = "move-left"
	CommandMoveRight     = "move-right"
	CommandMoveUp        = "move-up"
	CommandMoveDown      = "move-down"
	CommandMoveLineStart = "move-line-start"
	CommandMoveLineEnd   = "move-line-end"
	CommandSelectLeft    = "select-left"
	CommandSelectRight   = "select-right"
)

// ToggleInlineStyle toggles style on the selection. With a caret the style
// becomes a pending override for the next typed text; with a range it is
// removed if every selected character has it and applied otherwise.
func ToggleInlineStyle(s EditorState, style Style) EditorState {
	sel := s.Selection()
	if sel.IsCollapsed() {
		return SetInlineStyleOverride(s, s.CurrentInlineStyle().Toggle(style))
	}
	content := s.CurrentContent()
	var next *ContentState
	if selectionHasStyle(content, sel, style) {
		next = RemoveInlineStyle(content, sel, style)
	} else {
		next = ApplyInlineStyle(content, sel, style)
	}
	return Push(s, next, ChangeInlineStyle)
}

// ToggleBlockType sets t on the selected blocks, or resets them to unstyled
// when the block at the selection start already has type t.
func ToggleBlockType(s EditorState, t BlockType) EditorState {
	sel := s.Selection()
	content := s.CurrentContent()
	block, _ := content.BlockForKey(sel.StartKey())
	if block == nil {
		return s
	}
	target := t
	if block.Type() == t {
		target = BlockUnstyled
	}
	return Push(s, SetBlockType(content, sel, target), ChangeBlockType)
}

// InsertText replaces the selection with text in the current inline style.
func InsertText(s EditorState, text string) EditorState {
	content := ReplaceText(s.CurrentContent(), s.Selection(), text, s.CurrentInlineStyle(), "")
	return Push(s, content, ChangeInsertCharacters)
}

// HandleKeyCommand runs one of the built-in editing commands. It reports
// false when the command is unknown or has nothing to act on.
func HandleKeyCommand(s EditorState, command string) (EditorState, bool) {
	switch command {
	case CommandBold:
		return ToggleInlineStyle(s, StyleBold), true
	case CommandItalic:
		return ToggleInlineStyle(s, StyleItalic), true
	case CommandUnderline:
		return ToggleInlineStyle(s, StyleUnderline), true
	case CommandCode:
		return ToggleInlineStyle(s, StyleCode), true
	case CommandBackspace:
		return backspace(s)
	case CommandDelete:
		return deleteForward(s)
	case CommandSplitBlock:
		return Push(s, SplitBlock(s.CurrentContent(), s.Selection()), ChangeSplitBlock), true
	case CommandUndo:
		if !s.CanUndo() {
			return s, false
		}
		return Undo(s), true
	case CommandRedo:
		if !s.CanRedo() {
			return s, false
		}
		return Redo(s), true
	case CommandMoveLeft, CommandMoveRight, CommandMoveUp, CommandMoveDown,
		CommandMoveLineStart, CommandMoveLineEnd:
		return move(s, command)
	case CommandSelectLeft, CommandSelectRight:
		return extend(s, command == CommandSelectRight)
	}
	return s, false
}

func backspace(s EditorState) (EditorState, bool) {
	content := s.CurrentContent()
	sel := s.Selection()
	if !sel.IsCollapsed() {
		return Push(s, RemoveRange(content, sel), ChangeRemoveRange), true
	}
	block, idx := content.BlockForKey(sel.StartKey())
	if block == nil {
		return s, false
	}
	offset := clamp(sel.StartOffset(), 0, block.Len())
	switch {
	case offset > 0:
		return Push(s, RemoveRange(content, sel.WithOffsets(offset-1, offset)), ChangeBackspace), true
	case block.Type() != BlockUnstyled:
		// A styled block first loses its style, like a list bullet would.
		return Push(s, SetBlockType(content, sel, BlockUnstyled), ChangeBlockType), true
	case idx > 0:
		return Push(s, mergeBlocks(content, sel, idx-1), ChangeBackspace), true
	}
	return s, false
}

func deleteForward(s EditorState) (EditorState, bool) {
	content := s.CurrentContent()
	sel := s.Selection()
	if !sel.IsCollapsed() {
		return Push(s, RemoveRange(content, sel), ChangeRemoveRange), true
	}
	block, idx := content.BlockForKey(sel.StartKey())
	if block == nil {
		return s, false
	}
	offset := clamp(sel.StartOffset(), 0, block.Len())
	if offset < block.Len() {
		return Push(s, RemoveRange(content, sel.WithOffsets(offset, offset+1)), ChangeDelete), true
	}
	if idx+1 < content.BlockCount() {
		return Push(s, mergeBlocks(content, sel, idx), ChangeDelete), true
	}
	return s, false
}

// move collapses the selection to a new caret position.
func move(s EditorState, command string) (EditorState, bool) {
	content := s.CurrentContent()
	sel := s.Selection()
	key, offset := sel.FocusKey, sel.FocusOffset
	if !sel.IsCollapsed() {
		switch command {
		case CommandMoveLeft:
			return AcceptSelection(s, CollapsedAt(sel.StartKey(), sel.StartOffset())), true
		case CommandMoveRight:
			return AcceptSelection(s, CollapsedAt(sel.EndKey(), sel.EndOffset())), true
		}
	}
	nextKey, nextOffset, ok := step(content, key, offset, command)
	if !ok {
		return s, false
	}
	return AcceptSelection(s, CollapsedAt(nextKey, nextOffset)), true
}

// extend moves only the focus, growing or shrinking the selection.
func extend(s EditorState, forward bool) (EditorState, bool) {
	command := CommandMoveLeft
	if forward {
		command = CommandMoveRight
	}
	sel := s.Selection()
	key, offset, ok := step(s.CurrentContent(), sel.FocusKey, sel.FocusOffset, command)
	if !ok {
		return s, false
	}
	sel.FocusKey, sel.FocusOffset = key, offset
	sel.HasFocus = true
	next := AcceptSelection(s, sel)
	return next, true
}

// step computes the caret position one movement away from (key, offset).
func step(c *ContentState, key string, offset int, command string) (string, int, bool) {
	block, idx := c.BlockForKey(key)
	if block == nil {
		return "", 0, false
	}
	offset = clamp(offset, 0, block.Len())
	switch command {
	case CommandMoveLeft:
		if offset > 0 {
			return key, offset - 1, true
		}
		if idx > 0 {
			prev := c.BlockAt(idx - 1)
			return prev.Key(), prev.Len(), true
		}
	case CommandMoveRight:
		if offset < block.Len() {
			return key, offset + 1, true
		}
		if idx+1 < c.BlockCount() {
			return c.BlockAt(idx + 1).Key(), 0, true
		}
	case CommandMoveUp:
		if idx > 0 {
			prev := c.BlockAt(idx - 1)
			return prev.Key(), min(offset, prev.Len()), true
		}
	case CommandMoveDown:
		if idx+1 < c.BlockCount() {
			next := c.BlockAt(idx + 1)
			return next.Key(), min(offset, next.Len()), true
		}
	case CommandMoveLineStart:
		if offset != 0 {
			return key, 0, true
		}
	case CommandMoveLineEnd:
		if offset != block.Len() {
			return key, block.Len(), true
		}
	}
	return "", 0, false
}
