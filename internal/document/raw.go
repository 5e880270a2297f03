package document

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// RawInlineStyleRange marks [Offset, Offset+Length) runes of a block with Style.
type RawInlineStyleRange struct {
	Offset int   `json:"offset"`
	Length int   `json:"length"`
	Style  Style `json:"style"`
}

// RawEntityRange links [Offset, Offset+Length) runes to entity Key of the
// snapshot's entity map.
type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// RawBlock is the serialisable form of a Block.
type RawBlock struct {
	Key               string                `json:"key"`
	Text              string                `json:"text"`
	Type              BlockType             `json:"type"`
	Depth             int                   `json:"depth"`
	InlineStyleRanges []RawInlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange      `json:"entityRanges"`
	Data              map[string]any        `json:"data"`
}

// RawEntity is the serialisable form of an Entity.
type RawEntity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// RawContent is the transport-neutral form of a document: blocks plus the
// entity map, keyed by the decimal index used in entity ranges.
type RawContent struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

// ErrInvalidRaw is wrapped by every FromRaw error.
var ErrInvalidRaw = errors.New("invalid raw content")

// ToRaw converts c to its raw form. Offsets and lengths count runes.
func ToRaw(c *ContentState) RawContent {
	raw := RawContent{
		Blocks:    make([]RawBlock, 0, len(c.blocks)),
		EntityMap: make(map[string]RawEntity),
	}
	entityIndex := make(map[string]int)
	for _, b := range c.blocks {
		rb := RawBlock{
			Key:               b.key,
			Text:              b.Text(),
			Type:              b.typ,
			Depth:             b.depth,
			InlineStyleRanges: styleRanges(b),
			EntityRanges:      []RawEntityRange{},
			Data:              b.Data(),
		}
		if rb.Data == nil {
			rb.Data = map[string]any{}
		}
		for _, r := range runs(b, func(m CharMeta) string { return m.Entity }) {
			idx, ok := entityIndex[r.value]
			if !ok {
				idx = len(entityIndex)
				entityIndex[r.value] = idx
				e := c.entities[r.value]
				data := e.Data
				if data == nil {
					data = map[string]any{}
				}
				mutability := e.Mutability
				if mutability == "" {
					mutability = "MUTABLE"
				}
				raw.EntityMap[strconv.Itoa(idx)] = RawEntity{Type: e.Type, Mutability: mutability, Data: data}
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{Offset: r.offset, Length: r.length, Key: idx})
		}
		raw.Blocks = append(raw.Blocks, rb)
	}
	return raw
}

type run struct {
	value  string
	offset int
	length int
}

// runs returns the maximal runs of characters sharing a non-empty value.
func runs(b *Block, value func(CharMeta) string) []run {
	var out []run
	for i := 0; i < len(b.chars); {
		v := value(b.chars[i])
		j := i + 1
		for j < len(b.chars) && value(b.chars[j]) == v {
			j++
		}
		if v != "" {
			out = append(out, run{value: v, offset: i, length: j - i})
		}
		i = j
	}
	return out
}

func styleRanges(b *Block) []RawInlineStyleRange {
	present := make(map[Style]struct{})
	for _, ch := range b.chars {
		for _, s := range ch.Style.styles {
			present[s] = struct{}{}
		}
	}
	ranges := []RawInlineStyleRange{}
	for style := range present {
		for _, r := range runs(b, func(m CharMeta) string {
			if m.Style.Has(style) {
				return string(style)
			}
			return ""
		}) {
			ranges = append(ranges, RawInlineStyleRange{Offset: r.offset, Length: r.length, Style: style})
		}
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Offset != ranges[j].Offset {
			return ranges[i].Offset < ranges[j].Offset
		}
		return ranges[i].Style < ranges[j].Style
	})
	return ranges
}

// FromRaw rebuilds a document from its raw form. Any inconsistency (no
// blocks, unknown block type, duplicate keys, ranges outside the text,
// dangling entity references) is an error wrapping ErrInvalidRaw.
func FromRaw(raw RawContent) (*ContentState, error) {
	if len(raw.Blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrInvalidRaw)
	}
	entities := make(map[string]Entity, len(raw.EntityMap))
	for key, e := range raw.EntityMap {
		if _, err := strconv.Atoi(key); err != nil {
			return nil, fmt.Errorf("%w: entity key %q is not an index", ErrInvalidRaw, key)
		}
		entities[key] = Entity{Type: e.Type, Mutability: e.Mutability, Data: e.Data}
	}

	seen := make(map[string]struct{}, len(raw.Blocks))
	blocks := make([]*Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		b, err := blockFromRaw(rb, entities)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if _, dup := seen[b.key]; dup {
			return nil, fmt.Errorf("%w: duplicate block key %q", ErrInvalidRaw, b.key)
		}
		seen[b.key] = struct{}{}
		blocks = append(blocks, b)
	}
	return NewContent(blocks, entities), nil
}

func blockFromRaw(rb RawBlock, entities map[string]Entity) (*Block, error) {
	t := rb.Type
	if t == "" {
		t = BlockUnstyled
	}
	if !IsKnownBlockType(t) {
		return nil, fmt.Errorf("%w: unknown block type %q", ErrInvalidRaw, rb.Type)
	}
	if rb.Depth < 0 {
		return nil, fmt.Errorf("%w: negative depth", ErrInvalidRaw)
	}
	key := rb.Key
	if key == "" {
		key = GenerateKey()
	}
	b := NewBlock(key, t, rb.Text, StyleSet{})
	b.depth = rb.Depth
	if len(rb.Data) > 0 {
		b.data = rb.Data
	}

	styles := make([][]Style, b.Len())
	for _, r := range rb.InlineStyleRanges {
		if err := checkRange(r.Offset, r.Length, b.Len()); err != nil {
			return nil, fmt.Errorf("style %q: %w", r.Style, err)
		}
		if r.Style == "" {
			return nil, fmt.Errorf("%w: empty style name", ErrInvalidRaw)
		}
		for j := r.Offset; j < r.Offset+r.Length; j++ {
			styles[j] = append(styles[j], r.Style)
		}
	}
	for j := range styles {
		b.chars[j].Style = NewStyleSet(styles[j]...)
	}

	for _, r := range rb.EntityRanges {
		if err := checkRange(r.Offset, r.Length, b.Len()); err != nil {
			return nil, fmt.Errorf("entity %d: %w", r.Key, err)
		}
		key := strconv.Itoa(r.Key)
		if _, ok := entities[key]; !ok {
			return nil, fmt.Errorf("%w: entity %d not in entity map", ErrInvalidRaw, r.Key)
		}
		for j := r.Offset; j < r.Offset+r.Length; j++ {
			b.chars[j].Entity = key
		}
	}
	return b, nil
}

func checkRange(offset, length, size int) error {
	if offset < 0 || length < 0 || offset+length > size {
		return fmt.Errorf("%w: range [%d,%d) outside text of length %d", ErrInvalidRaw, offset, offset+length, size)
	}
	return nil
}
