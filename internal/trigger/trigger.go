// Package trigger turns markdown-like prefixes into formatting when a space is
// typed: "#" starts a heading, "*" bold, "**" red text and "***" underline.
// A trigger only fires when it is the whole text of the current block.
package trigger

import (
	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/logger"
)

// Match locates the trigger text that fired: the first Length runes of
// block Block.
type Match struct {
	Block  string
	Length int
}

// Rule formats the editor after its trigger text has been matched. Apply is
// responsible for removing the trigger text.
type Rule struct {
	Trigger string
	Name    string
	Apply   func(s document.EditorState, m Match) document.EditorState
}

// DefaultRules are the triggers the editor ships with.
var DefaultRules = []Rule{
	{Trigger: "#", Name: "heading", Apply: heading},
	{Trigger: "*", Name: "bold", Apply: inlineToggle(document.StyleBold)},
	{Trigger: "**", Name: "red-line", Apply: redLine},
	{Trigger: "***", Name: "underline", Apply: inlineToggle(document.StyleUnderline)},
}

// Detector matches typed input against a set of rules.
type Detector struct {
	rules map[string]Rule
}

// New returns a detector for rules; with no rules it uses DefaultRules.
func New(rules ...Rule) *Detector {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	d := &Detector{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		d.rules[r.Trigger] = r
	}
	return d
}

// HandleBeforeInput runs before chars is inserted. When chars is a space and
// the block at the selection start holds exactly a trigger, it returns the
// formatted state and true; the space itself is swallowed.
func (d *Detector) HandleBeforeInput(chars string, s document.EditorState) (document.EditorState, bool) {
	if chars != " " {
		return s, false
	}
	block, _ := s.CurrentContent().BlockForKey(s.Selection().StartKey())
	if block == nil {
		return s, false
	}
	rule, ok := d.rules[block.Text()]
	if !ok {
		return s, false
	}
	logger.DebugTagf("trigger", "applying %s trigger in block %s", rule.Name, block.Key())
	return rule.Apply(s, Match{Block: block.Key(), Length: block.Len()}), true
}

// Remove deletes the matched trigger text and pushes the result with change.
func (m Match) Remove(s document.EditorState, change document.ChangeType) document.EditorState {
	sel := document.CollapsedAt(m.Block, 0).WithOffsets(0, m.Length)
	content := document.ReplaceText(s.CurrentContent(), sel, "", document.StyleSet{}, "")
	return document.Push(s, content, change)
}

func heading(s document.EditorState, m Match) document.EditorState {
	s = document.ToggleBlockType(s, document.BlockHeaderOne)
	return m.Remove(s, document.ChangeBlockData)
}

func inlineToggle(style document.Style) func(document.EditorState, Match) document.EditorState {
	return func(s document.EditorState, m Match) document.EditorState {
		s = m.Remove(s, document.ChangeInlineStyle)
		return document.ToggleInlineStyle(s, style)
	}
}

// redLine leaves RED_LINE active whatever the style before the trigger was.
func redLine(s document.EditorState, m Match) document.EditorState {
	s = m.Remove(s, document.ChangeInlineStyle)
	if s.CurrentInlineStyle().Has(document.StyleRedLine) {
		s = document.ToggleInlineStyle(s, document.StyleRedLine)
	}
	return document.ToggleInlineStyle(s, document.StyleRedLine)
}
