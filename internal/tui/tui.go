// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/bethropolis/scribe/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// Screen rows reserved above and below the document.
const (
	TitleBarHeight  = 1
	StatusBarHeight = 1
)

// TUI manages the terminal screen using tcell, plus the scroll position of
// the document view.
type TUI struct {
	screen tcell.Screen

	viewTop  int // first block shown
	viewLeft int // first visual column shown

	saveButton Rect
}

// New creates and initializes a TUI on the real terminal.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, th)
}

// NewWithScreen initializes s and wraps it. Tests pass a simulation screen.
func NewWithScreen(s tcell.Screen, th *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.EnableMouse(tcell.MouseButtonEvents)
	s.EnablePaste()
	t := &TUI{screen: s}
	t.SetTheme(th)
	return t, nil
}

// SetTheme applies the theme's default style to the screen background.
func (t *TUI) SetTheme(th *theme.Theme) {
	if th != nil {
		t.screen.SetStyle(th.GetStyle(theme.StyleDefault))
	}
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent queues ev for PollEvent.
func (t *TUI) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws everything, e.g. after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}

// Viewport returns the first visible block index and visual column.
func (t *TUI) Viewport() (top, left int) {
	return t.viewTop, t.viewLeft
}

// documentHeight is the number of rows available for blocks.
func (t *TUI) documentHeight() int {
	_, height := t.Size()
	return height - TitleBarHeight - StatusBarHeight
}
