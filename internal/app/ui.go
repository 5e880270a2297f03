package app

import (
	"github.com/bethropolis/scribe/internal/logger"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	state := a.editor.State()

	logger.DebugTagf("draw", "draw: screen %dx%d, saving=%v", width, height, a.editor.Saving())

	a.tuiManager.Clear()
	a.tuiManager.DrawTitleBar(currentTheme, Title, a.editor.Saving())
	a.tuiManager.DrawDocument(state, currentTheme)
	a.statusBar.SetState(state)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.DrawCursor(state)
	a.tuiManager.Show()
}
