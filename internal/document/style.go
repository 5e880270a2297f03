// Package document implements the immutable rich-text document model the editor
// is built on: blocks of styled text, selections, and editor states that are
// replaced (never mutated) on every change.
package document

import (
	"sort"
	"strings"
)

// Style names an inline style applied to individual characters.
type Style string

// Inline styles known to the editor. Other names survive a raw round trip but
// have no key command or theme entry of their own.
const (
	StyleBold      Style = "BOLD"
	StyleItalic    Style = "ITALIC"
	StyleUnderline Style = "UNDERLINE"
	StyleCode      Style = "CODE"
	StyleRedLine   Style = "RED_LINE"
)

// StyleSet is an immutable, ordered set of inline styles.
// The zero value is the empty set.
type StyleSet struct {
	styles []Style // sorted, deduplicated, never written after construction
}

// NewStyleSet builds a set from the given styles.
func NewStyleSet(styles ...Style) StyleSet {
	if len(styles) == 0 {
		return StyleSet{}
	}
	out := make([]Style, 0, len(styles))
	for _, s := range styles {
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	deduped := out[:0]
	for i, s := range out {
		if i == 0 || s != out[i-1] {
			deduped = append(deduped, s)
		}
	}
	return StyleSet{styles: deduped}
}

// Has reports whether style is in the set.
func (s StyleSet) Has(style Style) bool {
	i := sort.Search(len(s.styles), func(i int) bool { return s.styles[i] >= style })
	return i < len(s.styles) && s.styles[i] == style
}

// Add returns a set that also contains style.
func (s StyleSet) Add(style Style) StyleSet {
	if s.Has(style) {
		return s
	}
	next := make([]Style, len(s.styles), len(s.styles)+1)
	copy(next, s.styles)
	return NewStyleSet(append(next, style)...)
}

// Remove returns a set without style.
func (s StyleSet) Remove(style Style) StyleSet {
	if !s.Has(style) {
		return s
	}
	next := make([]Style, 0, len(s.styles)-1)
	for _, st := range s.styles {
		if st != style {
			next = append(next, st)
		}
	}
	return StyleSet{styles: next}
}

// Toggle adds style if absent and removes it if present.
func (s StyleSet) Toggle(style Style) StyleSet {
	if s.Has(style) {
		return s.Remove(style)
	}
	return s.Add(style)
}

// Len returns the number of styles in the set.
func (s StyleSet) Len() int { return len(s.styles) }

// Styles returns the styles in sorted order.
func (s StyleSet) Styles() []Style {
	out := make([]Style, len(s.styles))
	copy(out, s.styles)
	return out
}

// Equal reports whether both sets hold the same styles.
func (s StyleSet) Equal(other StyleSet) bool {
	if len(s.styles) != len(other.styles) {
		return false
	}
	for i := range s.styles {
		if s.styles[i] != other.styles[i] {
			return false
		}
	}
	return true
}

func (s StyleSet) String() string {
	names := make([]string, len(s.styles))
	for i, st := range s.styles {
		names[i] = string(st)
	}
	return "{" + strings.Join(names, ",") + "}"
}
