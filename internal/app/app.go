// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribe/internal/autosave"
	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/editor"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/notify"
	"github.com/bethropolis/scribe/internal/persist"
	"github.com/bethropolis/scribe/internal/statusbar"
	"github.com/bethropolis/scribe/internal/storage"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/tui"
)

// Title is shown on the left of the title bar.
const Title = "Scribe"

// Options carries the dependencies NewApp does not build from config. Zero
// values select the real terminal, the configured store, loop timers and
// the system clipboard.
type Options struct {
	Screen    tcell.Screen
	Store     storage.Store
	Scheduler clock.Scheduler
	Clipboard func() (string, error)
	ThemesDir string
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	themeManager *theme.Manager
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	store        storage.Store
	presenter    *notify.Presenter
	persister    *persist.Manager
	editor       *editor.Controller
	autosaver    *autosave.Autosaver

	// Bracketed paste arrives as key events between start and end markers.
	pasting  bool
	pasteBuf strings.Builder

	quit   bool
	closed bool
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config, opts Options) (a *App, err error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	a = &App{
		cfg:          cfg,
		eventManager: event.NewManager(),
	}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()

	themesDir := opts.ThemesDir
	if themesDir == "" {
		if p, perr := config.DefaultConfigPath(); perr == nil {
			themesDir = filepath.Join(filepath.Dir(p), config.ThemesDirName)
		}
	}
	a.themeManager = theme.NewManager(themesDir)
	if err := theme.Select(a.themeManager, cfg.ThemeFile); err != nil {
		logger.Warnf("App: %v, keeping theme '%s'", err, a.themeManager.Current().Name)
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("TUI initialization failed: %w", err)
		}
	}
	if a.tuiManager, err = tui.NewWithScreen(screen, a.themeManager.Current()); err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a.store = opts.Store
	if a.store == nil {
		if a.store, err = openStore(cfg.Storage); err != nil {
			return nil, err
		}
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = clock.NewLoopScheduler(a.post)
	}

	a.statusBar = statusbar.New(statusbar.ConfigFromTheme(a.themeManager.Current()))
	a.presenter = notify.New(scheduler, cfg.Editor.NotificationDuration, a.handleNotificationChange)

	if a.persister, err = persist.New(a.store, cfg.Storage.Key, a.presenter); err != nil {
		return nil, fmt.Errorf("persistence setup failed: %w", err)
	}

	read := opts.Clipboard
	if read == nil && cfg.Editor.SystemClipboard && !clipboard.Unsupported {
		read = clipboard.ReadAll
	}

	undoLimit := cfg.Editor.UndoLimit
	if undoLimit == 0 {
		undoLimit = -1
	}
	a.editor, err = editor.New(editor.Config{
		Persister:    a.persister,
		EventManager: a.eventManager,
		UndoLimit:    undoLimit,
		Clipboard:    read,
		Post:         a.post,
		AppCommand:   a.handleAppCommand,
	})
	if err != nil {
		return nil, fmt.Errorf("editor setup failed: %w", err)
	}

	a.autosaver = autosave.New(scheduler, cfg.Editor.AutosaveDelay, a.editor.Autosave)
	a.subscribe()

	return a, nil
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Infof("App: using in-memory storage, documents will not survive exit")
		return storage.NewMemory(), nil
	default:
		store, err := storage.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("storage initialization failed: %w", err)
		}
		logger.Infof("App: using SQLite storage at %s", cfg.Path)
		return store, nil
	}
}

// post queues f to run on the event loop.
func (a *App) post(f func()) error {
	return a.tuiManager.PostEvent(tcell.NewEventInterrupt(f))
}

// Run loads the stored document and processes events until quit.
func (a *App) Run() error {
	defer a.Close()

	if err := a.editor.Load(); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.draw()

	for !a.quit {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ev)
		if !a.quit {
			a.draw()
		}
	}

	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	logger.Infof("App: exiting")
	return nil
}

// Close stops timers and releases the store and the terminal. It is safe
// to call more than once.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.autosaver != nil {
		a.autosaver.Close()
	}
	if a.presenter != nil {
		a.presenter.Close()
	}
	var err error
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}
	if a.tuiManager != nil {
		a.tuiManager.Close()
	}
	return err
}

// handleEvent processes one terminal event.
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()

	case *tcell.EventInterrupt:
		if f, ok := ev.Data().(func()); ok {
			f()
		}

	case *tcell.EventPaste:
		a.handlePaste(ev)

	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(ev)
			return
		}
		if a.editor.HandleKey(ev) == editor.NotHandled {
			logger.DebugTagf("input", "App: unhandled key %s", ev.Name())
		}

	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
}

func (a *App) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.pasteBuf.Reset()
		return
	}
	a.pasting = false
	if a.pasteBuf.Len() > 0 {
		a.editor.HandlePastedText(a.pasteBuf.String())
	}
	a.pasteBuf.Reset()
}

func (a *App) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.pasteBuf.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		a.pasteBuf.WriteByte('\n')
	case tcell.KeyTab:
		a.pasteBuf.WriteByte('\t')
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	switch {
	case a.tuiManager.SaveButtonHit(x, y):
		a.editor.Save()
	case a.tuiManager.StatusBarHit(x, y):
		if a.presenter.Visible() {
			a.presenter.Dismiss()
		}
	default:
		if sel, ok := a.tuiManager.PositionAt(a.editor.State(), x, y); ok {
			a.editor.Select(sel)
		}
	}
}
