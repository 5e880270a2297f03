package document

import (
	"strings"
	"unicode/utf8"
)

// The functions in this file transform a ContentState into a new one. Each
// result records the given selection as its selection-before and the caret
// position the edit leaves behind as its selection-after.

// selectionBounds resolves sel against c into block indices and clamped
// offsets, start first.
func selectionBounds(c *ContentState, sel SelectionState) (si, so, ei, eo int, ok bool) {
	sb, si := c.BlockForKey(sel.StartKey())
	eb, ei := c.BlockForKey(sel.EndKey())
	if sb == nil || eb == nil {
		return 0, 0, 0, 0, false
	}
	so = clamp(sel.StartOffset(), 0, sb.Len())
	eo = clamp(sel.EndOffset(), 0, eb.Len())
	if si > ei || (si == ei && so > eo) {
		si, so, ei, eo = ei, eo, si, so
	}
	return si, so, ei, eo, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func replaceBlocks(blocks []*Block, from, to int, with ...*Block) []*Block {
	out := make([]*Block, 0, len(blocks)-(to-from)+len(with))
	out = append(out, blocks[:from]...)
	out = append(out, with...)
	return append(out, blocks[to:]...)
}

// RemoveRange deletes the selected text, joining the first and last selected
// blocks. The first block keeps its type.
func RemoveRange(c *ContentState, sel SelectionState) *ContentState {
	si, so, ei, eo, ok := selectionBounds(c, sel)
	if !ok || (si == ei && so == eo) {
		return c
	}
	start, end := c.blocks[si], c.blocks[ei]
	headText, headChars := start.slice(0, so)
	tailText, tailChars := end.slice(eo, end.Len())
	merged := start.withContent(append(headText, tailText...), append(headChars, tailChars...))
	blocks := replaceBlocks(c.blocks, si, ei+1, merged)
	return c.with(blocks, sel, CollapsedAt(start.key, so))
}

// ReplaceText replaces the selection with text. Every inserted character
// carries style and entity; newlines in text start new blocks.
func ReplaceText(c *ContentState, sel SelectionState, text string, style StyleSet, entity string) *ContentState {
	si, so, _, _, ok := selectionBounds(c, sel)
	if !ok {
		return c
	}
	if text == "" && sel.IsCollapsed() {
		return c
	}
	caretKey, caretOffset := c.blocks[si].key, so
	out := RemoveRange(c, sel)
	for i, line := range strings.Split(normalizeNewlines(text), "\n") {
		if i > 0 {
			out, caretKey = splitAt(out, caretKey, caretOffset)
			caretOffset = 0
		}
		out = insertAt(out, caretKey, caretOffset, line, style, entity)
		caretOffset += utf8.RuneCountInString(line)
	}
	return out.with(out.blocks, sel, CollapsedAt(caretKey, caretOffset))
}

// insertAt inserts a single line of text at offset in block key.
func insertAt(c *ContentState, key string, offset int, text string, style StyleSet, entity string) *ContentState {
	if text == "" {
		return c
	}
	b, i := c.BlockForKey(key)
	if b == nil {
		return c
	}
	offset = clamp(offset, 0, b.Len())
	runes := []rune(text)
	newText := make([]rune, 0, b.Len()+len(runes))
	newText = append(newText, b.text[:offset]...)
	newText = append(newText, runes...)
	newText = append(newText, b.text[offset:]...)
	newChars := make([]CharMeta, 0, b.Len()+len(runes))
	newChars = append(newChars, b.chars[:offset]...)
	for range runes {
		newChars = append(newChars, CharMeta{Style: style, Entity: entity})
	}
	newChars = append(newChars, b.chars[offset:]...)
	blocks := replaceBlocks(c.blocks, i, i+1, b.withContent(newText, newChars))
	return c.with(blocks, c.selectionBefore, c.selectionAfter)
}

// splitAt cuts block key at offset and returns the new content and the key
// of the lower half. Splitting a heading at its end starts a plain block.
func splitAt(c *ContentState, key string, offset int) (*ContentState, string) {
	b, i := c.BlockForKey(key)
	if b == nil {
		return c, key
	}
	offset = clamp(offset, 0, b.Len())
	upperText, upperChars := b.slice(0, offset)
	lowerText, lowerChars := b.slice(offset, b.Len())
	lowerType := b.typ
	if b.typ == BlockHeaderOne && offset == b.Len() {
		lowerType = BlockUnstyled
	}
	lowerKey := c.uniqueKey()
	upper := b.withContent(upperText, upperChars)
	lower := &Block{key: lowerKey, typ: lowerType, depth: b.depth, text: lowerText, chars: lowerChars}
	blocks := replaceBlocks(c.blocks, i, i+1, upper, lower)
	return c.with(blocks, c.selectionBefore, c.selectionAfter), lowerKey
}

// SplitBlock removes the selection and splits the block at the caret.
func SplitBlock(c *ContentState, sel SelectionState) *ContentState {
	si, so, _, _, ok := selectionBounds(c, sel)
	if !ok {
		return c
	}
	key := c.blocks[si].key
	out, lowerKey := splitAt(RemoveRange(c, sel), key, so)
	return out.with(out.blocks, sel, CollapsedAt(lowerKey, 0))
}

// SetBlockType changes the type of every block the selection touches.
func SetBlockType(c *ContentState, sel SelectionState, t BlockType) *ContentState {
	si, _, ei, _, ok := selectionBounds(c, sel)
	if !ok {
		return c
	}
	blocks := make([]*Block, len(c.blocks))
	copy(blocks, c.blocks)
	for i := si; i <= ei; i++ {
		blocks[i] = blocks[i].withType(t)
	}
	return c.with(blocks, sel, sel)
}

// ApplyInlineStyle adds style to every selected character.
func ApplyInlineStyle(c *ContentState, sel SelectionState, style Style) *ContentState {
	return mapStyles(c, sel, func(s StyleSet) StyleSet { return s.Add(style) })
}

// RemoveInlineStyle removes style from every selected character.
func RemoveInlineStyle(c *ContentState, sel SelectionState, style Style) *ContentState {
	return mapStyles(c, sel, func(s StyleSet) StyleSet { return s.Remove(style) })
}

func mapStyles(c *ContentState, sel SelectionState, fn func(StyleSet) StyleSet) *ContentState {
	si, so, ei, eo, ok := selectionBounds(c, sel)
	if !ok {
		return c
	}
	blocks := make([]*Block, len(c.blocks))
	copy(blocks, c.blocks)
	for i := si; i <= ei; i++ {
		b := blocks[i]
		from, to := 0, b.Len()
		if i == si {
			from = so
		}
		if i == ei {
			to = eo
		}
		if from >= to {
			continue
		}
		text, chars := b.slice(0, b.Len())
		for j := from; j < to; j++ {
			chars[j].Style = fn(chars[j].Style)
		}
		blocks[i] = b.withContent(text, chars)
	}
	return c.with(blocks, sel, sel)
}

// selectionHasStyle reports whether every selected character carries style.
func selectionHasStyle(c *ContentState, sel SelectionState, style Style) bool {
	si, so, ei, eo, ok := selectionBounds(c, sel)
	if !ok {
		return false
	}
	seen := false
	for i := si; i <= ei; i++ {
		b := c.blocks[i]
		from, to := 0, b.Len()
		if i == si {
			from = so
		}
		if i == ei {
			to = eo
		}
		for j := from; j < to; j++ {
			if !b.chars[j].Style.Has(style) {
				return false
			}
			seen = true
		}
	}
	return seen
}

// mergeBlocks appends block idx+1 to block idx; the upper block keeps its
// type and the caret lands at the join.
func mergeBlocks(c *ContentState, sel SelectionState, idx int) *ContentState {
	if idx < 0 || idx+1 >= len(c.blocks) {
		return c
	}
	upper, lower := c.blocks[idx], c.blocks[idx+1]
	upperText, upperChars := upper.slice(0, upper.Len())
	lowerText, lowerChars := lower.slice(0, lower.Len())
	merged := upper.withContent(append(upperText, lowerText...), append(upperChars, lowerChars...))
	blocks := replaceBlocks(c.blocks, idx, idx+2, merged)
	return c.with(blocks, sel, CollapsedAt(upper.key, upper.Len()))
}
