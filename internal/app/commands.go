package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/scribe/internal/keymap"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/statusbar"
)

// handleAppCommand runs the commands the editor hands back to the app.
func (a *App) handleAppCommand(cmd keymap.Command) bool {
	switch cmd {
	case keymap.CommandQuit:
		a.quit = true
		return true
	case keymap.CommandEscape:
		if a.presenter.Visible() {
			a.presenter.Dismiss()
			return true
		}
		a.quit = true
		return true
	case keymap.CommandCycleTheme:
		a.cycleTheme()
		return true
	}
	return false
}

// cycleTheme activates the theme after the current one in name order.
func (a *App) cycleTheme() {
	names := a.themeManager.ListThemes()
	if len(names) == 0 {
		return
	}
	current := a.themeManager.Current().Name
	next := names[0]
	for i, name := range names {
		if strings.EqualFold(name, current) {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := a.themeManager.SetTheme(next); err != nil {
		logger.Warnf("App: %v", err)
		return
	}
	th := a.themeManager.Current()
	a.tuiManager.SetTheme(th)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th))
	a.presenter.Show(fmt.Sprintf("Theme set to: %s", th.Name))
}
