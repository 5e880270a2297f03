// internal/tui/drawing.go
package tui

import (
	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Save button labels.
const (
	SaveLabel   = "[ Save ]"
	SavingLabel = "[ Saving... ]"
)

// Placeholder is shown while the document is empty.
const Placeholder = "Start typing... Use markdown-style formatting: # for heading, * for bold, ** for red text, *** for underline"

// inlineOverlays maps document styles to theme overlays, in drawing order.
var inlineOverlays = []struct {
	style document.Style
	name  string
}{
	{document.StyleBold, theme.StyleBold},
	{document.StyleItalic, theme.StyleItalic},
	{document.StyleUnderline, theme.StyleUnderline},
	{document.StyleCode, theme.StyleCode},
	{document.StyleRedLine, theme.StyleRedLine},
}

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func calculateVisualColumn(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		visualWidth += gr.Width()
		currentRuneIndex += len(gr.Runes())
	}
	return visualWidth
}

// drawString draws text from x, stopping at maxX, and returns the column
// after the last cluster drawn.
func drawString(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += clusterWidth
	}
	return x
}

// DrawTitleBar draws the title on the left and the save button on the
// right of the first row. While saving the button shows SavingLabel in the
// disabled style.
func (t *TUI) DrawTitleBar(th *theme.Theme, title string, saving bool) {
	width, height := t.Size()
	if width <= 0 || height <= 0 {
		t.saveButton = Rect{}
		return
	}
	barStyle := th.GetStyle(theme.StyleTitleBar)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, 0, ' ', nil, barStyle)
	}

	label, buttonStyle := SaveLabel, th.GetStyle(theme.StyleSaveButton)
	if saving {
		label, buttonStyle = SavingLabel, th.GetStyle(theme.StyleSaveButtonDisabled)
	}
	labelWidth := uniseg.StringWidth(label)
	buttonX := width - labelWidth - 1
	if buttonX < 0 {
		buttonX = 0
	}

	drawString(t.screen, 1, 0, buttonX-1, title, barStyle)
	end := drawString(t.screen, buttonX, 0, width, label, buttonStyle)
	t.saveButton = Rect{X: buttonX, Y: 0, W: end - buttonX, H: 1}
}

// SaveButtonHit reports whether (x, y) is on the save button drawn last.
func (t *TUI) SaveButtonHit(x, y int) bool {
	return t.saveButton.Contains(x, y)
}

// StatusBarHit reports whether (x, y) is on the status bar row.
func (t *TUI) StatusBarHit(x, y int) bool {
	width, height := t.Size()
	return x >= 0 && x < width && y == height-StatusBarHeight
}

// scrollToCursor moves the viewport so the caret is visible.
func (t *TUI) scrollToCursor(s document.EditorState) {
	width, _ := t.Size()
	viewHeight := t.documentHeight()
	sel := s.Selection()
	block, idx := s.CurrentContent().BlockForKey(sel.FocusKey)
	if block == nil || viewHeight <= 0 || width <= 0 {
		return
	}

	if idx < t.viewTop {
		t.viewTop = idx
	} else if idx >= t.viewTop+viewHeight {
		t.viewTop = idx - viewHeight + 1
	}
	if maxTop := s.CurrentContent().BlockCount() - 1; t.viewTop > maxTop {
		t.viewTop = max(maxTop, 0)
	}

	col := calculateVisualColumn(block.Text(), sel.FocusOffset)
	if col < t.viewLeft {
		t.viewLeft = col
	} else if col >= t.viewLeft+width {
		t.viewLeft = col - width + 1
	}
}

// selectionRange returns the selection as ordered (block index, offset)
// pairs, or ok=false for a caret.
func selectionRange(s document.EditorState) (startIdx, startOff, endIdx, endOff int, ok bool) {
	sel := s.Selection()
	if sel.IsCollapsed() {
		return 0, 0, 0, 0, false
	}
	content := s.CurrentContent()
	_, si := content.BlockForKey(sel.StartKey())
	_, ei := content.BlockForKey(sel.EndKey())
	if si < 0 || ei < 0 {
		return 0, 0, 0, 0, false
	}
	return si, sel.StartOffset(), ei, sel.EndOffset(), true
}

func inSelection(idx, offset, startIdx, startOff, endIdx, endOff int) bool {
	if idx < startIdx || idx > endIdx {
		return false
	}
	if idx == startIdx && offset < startOff {
		return false
	}
	if idx == endIdx && offset >= endOff {
		return false
	}
	return true
}

// charStyle layers the theme overlays for styles on top of base.
func charStyle(th *theme.Theme, base tcell.Style, styles document.StyleSet) tcell.Style {
	for _, o := range inlineOverlays {
		if styles.Has(o.style) {
			base = th.Overlay(base, o.name)
		}
	}
	return base
}

// DrawDocument draws the visible blocks between the title and status bars,
// one row per block, scrolling so the caret stays visible.
func (t *TUI) DrawDocument(s document.EditorState, th *theme.Theme) {
	width, _ := t.Size()
	viewHeight := t.documentHeight()
	if viewHeight <= 0 || width <= 0 {
		return
	}
	t.scrollToCursor(s)

	defaultStyle := th.GetStyle(theme.StyleDefault)
	headingStyle := th.GetStyle(theme.StyleHeading)
	content := s.CurrentContent()
	startIdx, startOff, endIdx, endOff, selecting := selectionRange(s)

	for row := 0; row < viewHeight; row++ {
		screenY := row + TitleBarHeight
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}

		idx := t.viewTop + row
		if idx >= content.BlockCount() {
			continue
		}
		if idx == 0 && !content.HasText() && content.BlockCount() == 1 {
			drawString(t.screen, 0, screenY, width, Placeholder, th.GetStyle(theme.StylePlaceholder))
			continue
		}

		block := content.BlockAt(idx)
		base := defaultStyle
		if block.Type() == document.BlockHeaderOne {
			base = headingStyle
		}

		gr := uniseg.NewGraphemes(block.Text())
		visualX := 0
		runeIndex := 0
		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			screenX := visualX - t.viewLeft

			if screenX >= 0 && screenX+clusterWidth <= width {
				style := charStyle(th, base, block.StyleAt(runeIndex))
				if selecting && inSelection(idx, runeIndex, startIdx, startOff, endIdx, endOff) {
					style = th.Overlay(style, theme.StyleSelection)
				}
				t.screen.SetContent(screenX, screenY, clusterRunes[0], clusterRunes[1:], style)
				for cw := 1; cw < clusterWidth; cw++ {
					t.screen.SetContent(screenX+cw, screenY, ' ', nil, style)
				}
			}

			visualX += clusterWidth
			runeIndex += len(clusterRunes)
			if visualX >= t.viewLeft+width {
				break
			}
		}
	}
}

// PositionAt maps a screen cell in the document area to a caret position,
// clamping to the end of short blocks and to the last block.
func (t *TUI) PositionAt(s document.EditorState, x, y int) (document.SelectionState, bool) {
	viewHeight := t.documentHeight()
	row := y - TitleBarHeight
	if row < 0 || row >= viewHeight || x < 0 {
		return document.SelectionState{}, false
	}
	content := s.CurrentContent()
	idx := min(t.viewTop+row, content.BlockCount()-1)
	block := content.BlockAt(idx)

	target := x + t.viewLeft
	visualX, offset := 0, 0
	gr := uniseg.NewGraphemes(block.Text())
	for gr.Next() {
		w := gr.Width()
		if visualX+w > target {
			break
		}
		visualX += w
		offset += len(gr.Runes())
	}
	return document.CollapsedAt(block.Key(), offset), true
}

// DrawCursor positions the terminal cursor at the caret.
func (t *TUI) DrawCursor(s document.EditorState) {
	width, _ := t.Size()
	viewHeight := t.documentHeight()
	sel := s.Selection()
	block, idx := s.CurrentContent().BlockForKey(sel.FocusKey)
	if block == nil || viewHeight <= 0 {
		t.screen.HideCursor()
		return
	}

	screenX := calculateVisualColumn(block.Text(), sel.FocusOffset) - t.viewLeft
	screenY := idx - t.viewTop + TitleBarHeight
	if screenX < 0 || screenX >= width || screenY < TitleBarHeight || screenY >= TitleBarHeight+viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
