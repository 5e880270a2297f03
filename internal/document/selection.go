package document

// SelectionState is a cursor or range inside a document, expressed as an
// anchor and a focus (block key + rune offset). IsBackward is true when the
// focus comes before the anchor in document order.
type SelectionState struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
	IsBackward   bool
	HasFocus     bool
}

// CollapsedAt returns a caret selection at offset in block key.
func CollapsedAt(key string, offset int) SelectionState {
	return SelectionState{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
		HasFocus:     true,
	}
}

// IsCollapsed reports whether the selection is a caret.
func (s SelectionState) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

func (s SelectionState) StartKey() string {
	if s.IsBackward {
		return s.FocusKey
	}
	return s.AnchorKey
}

func (s SelectionState) StartOffset() int {
	if s.IsBackward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

func (s SelectionState) EndKey() string {
	if s.IsBackward {
		return s.AnchorKey
	}
	return s.FocusKey
}

func (s SelectionState) EndOffset() int {
	if s.IsBackward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// WithOffsets returns a forward selection in the anchor block spanning
// [anchor, focus). The focus moves into the anchor block.
func (s SelectionState) WithOffsets(anchor, focus int) SelectionState {
	s.FocusKey = s.AnchorKey
	s.AnchorOffset = anchor
	s.FocusOffset = focus
	s.IsBackward = focus < anchor
	return s
}

// orient recomputes IsBackward from the block order in c.
func (s SelectionState) orient(c *ContentState) SelectionState {
	_, ai := c.BlockForKey(s.AnchorKey)
	_, fi := c.BlockForKey(s.FocusKey)
	switch {
	case ai == fi:
		s.IsBackward = s.FocusOffset < s.AnchorOffset
	default:
		s.IsBackward = fi < ai
	}
	return s
}
