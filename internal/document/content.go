package document

import (
	"maps"
	"strings"
)

// Entity is a piece of metadata (a link, a mention...) that a run of
// characters refers to by key.
type Entity struct {
	Type       string
	Mutability string
	Data       map[string]any
}

// ContentState is an immutable document: ordered blocks plus the entity map,
// and the selections before and after the change that produced it.
type ContentState struct {
	blocks          []*Block
	entities        map[string]Entity
	selectionBefore SelectionState
	selectionAfter  SelectionState
}

// NewContent builds a document from blocks. An empty block list yields a
// document holding one empty unstyled block.
func NewContent(blocks []*Block, entities map[string]Entity) *ContentState {
	if len(blocks) == 0 {
		blocks = []*Block{NewBlock(GenerateKey(), BlockUnstyled, "", StyleSet{})}
	}
	own := make([]*Block, len(blocks))
	copy(own, blocks)
	first := own[0].key
	sel := CollapsedAt(first, 0)
	sel.HasFocus = false
	return &ContentState{
		blocks:          own,
		entities:        maps.Clone(entities),
		selectionBefore: sel,
		selectionAfter:  sel,
	}
}

// EmptyContent returns a document with a single empty block.
func EmptyContent() *ContentState {
	return NewContent(nil, nil)
}

// FromText builds an unstyled document, one block per line.
func FromText(text string) *ContentState {
	lines := strings.Split(normalizeNewlines(text), "\n")
	blocks := make([]*Block, len(lines))
	for i, line := range lines {
		blocks[i] = NewBlock(GenerateKey(), BlockUnstyled, line, StyleSet{})
	}
	return NewContent(blocks, nil)
}

// Blocks returns the blocks in document order.
func (c *ContentState) Blocks() []*Block {
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

func (c *ContentState) BlockCount() int      { return len(c.blocks) }
func (c *ContentState) BlockAt(i int) *Block { return c.blocks[i] }
func (c *ContentState) FirstBlock() *Block   { return c.blocks[0] }
func (c *ContentState) LastBlock() *Block    { return c.blocks[len(c.blocks)-1] }

// BlockForKey returns the block with key and its index, or nil and -1.
func (c *ContentState) BlockForKey(key string) (*Block, int) {
	for i, b := range c.blocks {
		if b.key == key {
			return b, i
		}
	}
	return nil, -1
}

// PlainText joins the block texts with newlines.
func (c *ContentState) PlainText() string {
	texts := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		texts[i] = b.Text()
	}
	return strings.Join(texts, "\n")
}

// HasText reports whether the document holds anything beyond a single empty
// block.
func (c *ContentState) HasText() bool {
	return len(c.blocks) > 1 || c.blocks[0].Len() > 0
}

// Entity looks up an entity by key.
func (c *ContentState) Entity(key string) (Entity, bool) {
	e, ok := c.entities[key]
	return e, ok
}

// Entities returns a copy of the entity map.
func (c *ContentState) Entities() map[string]Entity {
	return maps.Clone(c.entities)
}

func (c *ContentState) SelectionBefore() SelectionState { return c.selectionBefore }
func (c *ContentState) SelectionAfter() SelectionState  { return c.selectionAfter }

func (c *ContentState) with(blocks []*Block, before, after SelectionState) *ContentState {
	return &ContentState{
		blocks:          blocks,
		entities:        c.entities,
		selectionBefore: before,
		selectionAfter:  after,
	}
}

// uniqueKey returns a block key not used in c.
func (c *ContentState) uniqueKey() string {
	for {
		key := GenerateKey()
		if b, _ := c.BlockForKey(key); b == nil {
			return key
		}
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
