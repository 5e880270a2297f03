package document

import "maps"

// BlockType identifies how a block is rendered as a whole.
type BlockType string

const (
	BlockUnstyled          BlockType = "unstyled"
	BlockHeaderOne         BlockType = "header-one"
	BlockUnorderedListItem BlockType = "unordered-list-item"
	BlockOrderedListItem   BlockType = "ordered-list-item"
	BlockBlockquote        BlockType = "blockquote"
	BlockCodeBlock         BlockType = "code-block"
)

var knownBlockTypes = map[BlockType]struct{}{
	BlockUnstyled:          {},
	BlockHeaderOne:         {},
	BlockUnorderedListItem: {},
	BlockOrderedListItem:   {},
	BlockBlockquote:        {},
	BlockCodeBlock:         {},
}

// IsKnownBlockType reports whether t is a block type the editor can render.
func IsKnownBlockType(t BlockType) bool {
	_, ok := knownBlockTypes[t]
	return ok
}

// CharMeta is the per-character metadata of a block: its inline styles and
// the key of the entity it belongs to ("" for none).
type CharMeta struct {
	Style  StyleSet
	Entity string
}

// Block is one paragraph-level unit of a document. Blocks are immutable;
// every edit builds a new Block.
type Block struct {
	key   string
	typ   BlockType
	depth int
	text  []rune
	chars []CharMeta // len(chars) == len(text)
	data  map[string]any
}

// NewBlock creates a block whose characters all carry style.
func NewBlock(key string, typ BlockType, text string, style StyleSet) *Block {
	runes := []rune(text)
	chars := make([]CharMeta, len(runes))
	for i := range chars {
		chars[i] = CharMeta{Style: style}
	}
	return &Block{key: key, typ: typ, text: runes, chars: chars}
}

func (b *Block) Key() string     { return b.key }
func (b *Block) Type() BlockType { return b.typ }
func (b *Block) Depth() int      { return b.depth }
func (b *Block) Text() string    { return string(b.text) }

// Len returns the block length in runes.
func (b *Block) Len() int { return len(b.text) }

// RuneAt returns the rune at offset i.
func (b *Block) RuneAt(i int) rune { return b.text[i] }

// CharAt returns the metadata of the character at offset i.
func (b *Block) CharAt(i int) CharMeta { return b.chars[i] }

// StyleAt returns the inline styles of the character at offset i.
func (b *Block) StyleAt(i int) StyleSet { return b.chars[i].Style }

// EntityAt returns the entity key of the character at offset i.
func (b *Block) EntityAt(i int) string { return b.chars[i].Entity }

// Data returns a copy of the block's free-form data.
func (b *Block) Data() map[string]any { return maps.Clone(b.data) }

func (b *Block) clone() *Block {
	c := *b
	return &c
}

func (b *Block) withType(t BlockType) *Block {
	c := b.clone()
	c.typ = t
	return c
}

// withContent replaces the text and metadata; both slices are owned by the
// new block afterwards.
func (b *Block) withContent(text []rune, chars []CharMeta) *Block {
	c := b.clone()
	c.text = text
	c.chars = chars
	return c
}

// slice returns copies of the runes and metadata in [start, end).
func (b *Block) slice(start, end int) ([]rune, []CharMeta) {
	text := make([]rune, end-start)
	copy(text, b.text[start:end])
	chars := make([]CharMeta, end-start)
	copy(chars, b.chars[start:end])
	return text, chars
}
