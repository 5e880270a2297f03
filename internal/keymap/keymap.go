// internal/keymap/keymap.go
package keymap

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribe/internal/document"
)

// Command names an editor operation a key can be bound to.
type Command string

// Editor commands. Commands without a document counterpart are handled by the
// controller or the app.
const (
	CommandNone            Command = ""
	CommandToggleBold      Command = "toggle-bold"
	CommandToggleUnderline Command = "toggle-underline"
	CommandSave            Command = "save"
	CommandPaste           Command = "paste"
	CommandQuit            Command = "quit"
	CommandEscape          Command = "escape"
	CommandCycleTheme      Command = "cycle-theme"

	CommandBackspace     Command = document.CommandBackspace
	CommandDelete        Command = document.CommandDelete
	CommandSplitBlock    Command = document.CommandSplitBlock
	CommandUndo          Command = document.CommandUndo
	CommandRedo          Command = document.CommandRedo
	CommandMoveLeft      Command = document.CommandMoveLeft
	CommandMoveRight     Command = document.CommandMoveRight
	CommandMoveUp        Command = document.CommandMoveUp
	CommandMoveDown      Command = document.CommandMoveDown
	CommandMoveLineStart Command = document.CommandMoveLineStart
	CommandMoveLineEnd   Command = document.CommandMoveLineEnd
	CommandSelectLeft    Command = document.CommandSelectLeft
	CommandSelectRight   Command = document.CommandSelectRight
)

// Keymap maps special keys (including Ctrl+letter key codes) to commands.
type Keymap map[tcell.Key]Command

// RuneKeymap maps runes typed with Alt held to commands.
type RuneKeymap map[rune]Command

// ModKeymap maps keys pressed with a specific modifier set to commands.
type ModKeymap map[tcell.ModMask]Keymap

// Resolver translates tcell key events into commands.
type Resolver struct {
	keymap    Keymap
	altRunes  RuneKeymap
	modKeymap ModKeymap
}

// New creates a resolver with the default bindings.
func New() *Resolver {
	r := &Resolver{
		keymap:    make(Keymap),
		altRunes:  make(RuneKeymap),
		modKeymap: make(ModKeymap),
	}
	r.loadDefaultBindings()
	return r
}

func (r *Resolver) loadDefaultBindings() {
	// Formatting shortcuts, reachable with Ctrl or Alt (the terminal's
	// stand-in for the platform modifier).
	r.keymap[tcell.KeyCtrlB] = CommandToggleBold
	r.keymap[tcell.KeyCtrlU] = CommandToggleUnderline
	r.keymap[tcell.KeyCtrlS] = CommandSave
	r.altRunes['b'] = CommandToggleBold
	r.altRunes['u'] = CommandToggleUnderline
	r.altRunes['s'] = CommandSave

	// --- Default editing keys ---
	r.keymap[tcell.KeyBackspace] = CommandBackspace
	r.keymap[tcell.KeyBackspace2] = CommandBackspace
	r.keymap[tcell.KeyDelete] = CommandDelete
	r.keymap[tcell.KeyEnter] = CommandSplitBlock
	r.keymap[tcell.KeyCtrlZ] = CommandUndo
	r.keymap[tcell.KeyCtrlY] = CommandRedo
	r.keymap[tcell.KeyCtrlV] = CommandPaste
	r.keymap[tcell.KeyCtrlQ] = CommandQuit
	r.keymap[tcell.KeyEscape] = CommandEscape
	r.keymap[tcell.KeyCtrlT] = CommandCycleTheme

	r.keymap[tcell.KeyLeft] = CommandMoveLeft
	r.keymap[tcell.KeyRight] = CommandMoveRight
	r.keymap[tcell.KeyUp] = CommandMoveUp
	r.keymap[tcell.KeyDown] = CommandMoveDown
	r.keymap[tcell.KeyHome] = CommandMoveLineStart
	r.keymap[tcell.KeyEnd] = CommandMoveLineEnd

	r.modKeymap[tcell.ModShift] = Keymap{
		tcell.KeyLeft:  CommandSelectLeft,
		tcell.KeyRight: CommandSelectRight,
	}
}

// Bind maps key pressed with exactly mod to cmd. ModNone binds the plain key.
func (r *Resolver) Bind(mod tcell.ModMask, key tcell.Key, cmd Command) {
	if mod == tcell.ModNone {
		r.keymap[key] = cmd
		return
	}
	if r.modKeymap[mod] == nil {
		r.modKeymap[mod] = make(Keymap)
	}
	r.modKeymap[mod][key] = cmd
}

// BindAlt maps Alt+ch to cmd.
func (r *Resolver) BindAlt(ch rune, cmd Command) {
	r.altRunes[unicode.ToLower(ch)] = cmd
}

// Resolve returns the command bound to ev, or CommandNone. Plain runes always
// resolve to CommandNone; see Text.
func (r *Resolver) Resolve(ev *tcell.EventKey) Command {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Exact modifier + key combinations
	if modKeyMap, ok := r.modKeymap[mod]; ok {
		if cmd, ok := modKeyMap[key]; ok {
			return cmd
		}
	}

	// 2. Alt + rune
	if key == tcell.KeyRune {
		if mod&tcell.ModAlt != 0 {
			return r.altRunes[unicode.ToLower(ev.Rune())]
		}
		return CommandNone
	}

	// 3. Plain keys. Ctrl+letter arrives as its own key code, so the Ctrl
	// modifier carries no extra information there.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}
	if mod == tcell.ModNone || mod == tcell.ModShift {
		return r.keymap[key]
	}
	return CommandNone
}

// Text returns the text a key event types, if it is plain character input.
func Text(ev *tcell.EventKey) (string, bool) {
	if ev.Key() != tcell.KeyRune {
		return "", false
	}
	if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) != 0 {
		return "", false
	}
	ch := ev.Rune()
	if !unicode.IsPrint(ch) {
		return "", false
	}
	return string(ch), true
}
