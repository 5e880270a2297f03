// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/scribe/internal/document"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance of the status bar.
type Config struct {
	StyleDefault      tcell.Style // Default background/foreground
	StyleActive       tcell.Style // Active inline styles
	StyleNotification tcell.Style // Notification banner
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:      tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleActive:       tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleNotification: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true),
	}
}

// ConfigFromTheme takes the status bar styles from t.
func ConfigFromTheme(t *theme.Theme) Config {
	return Config{
		StyleDefault:      t.GetStyle(theme.StyleStatusBar),
		StyleActive:       t.GetStyle(theme.StyleStatusBarActive),
		StyleNotification: t.GetStyle(theme.StyleNotification),
	}
}

// DismissHint trails the notification banner.
const DismissHint = "[x]"

var blockLabels = map[document.BlockType]string{
	document.BlockUnstyled:          "Text",
	document.BlockHeaderOne:         "Heading",
	document.BlockUnorderedListItem: "Bullet",
	document.BlockOrderedListItem:   "Numbered",
	document.BlockBlockquote:        "Quote",
	document.BlockCodeBlock:         "Code",
}

// BlockLabel is the status bar name of a block type.
func BlockLabel(t document.BlockType) string {
	if label, ok := blockLabels[t]; ok {
		return label
	}
	return string(t)
}

// StatusBar shows where the caret is and which styles the next character
// gets, or the current notification while one is visible.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	blockType document.BlockType
	styles    []string
	line, col int

	message string
	visible bool
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config:    config,
		blockType: document.BlockUnstyled,
	}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetState updates the block type, active styles and caret position from s.
func (sb *StatusBar) SetState(s document.EditorState) {
	content := s.CurrentContent()
	sel := s.Selection()
	block, idx := content.BlockForKey(sel.FocusKey)

	sb.mu.Lock()
	defer sb.mu.Unlock()
	if block == nil {
		sb.blockType, sb.line, sb.col = document.BlockUnstyled, 0, 0
	} else {
		sb.blockType, sb.line, sb.col = block.Type(), idx, sel.FocusOffset
	}
	sb.styles = sb.styles[:0]
	for _, st := range s.CurrentInlineStyle().Styles() {
		sb.styles = append(sb.styles, string(st))
	}
}

// SetNotification shows or hides the notification banner. Its signature
// matches notify.ChangeFunc.
func (sb *StatusBar) SetNotification(visible bool, message string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.visible = visible
	sb.message = message
}

// NotificationVisible reports whether the banner is showing.
func (sb *StatusBar) NotificationVisible() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.visible
}

// Text returns the status line as it would be drawn.
func (sb *StatusBar) Text() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.visible {
		return sb.bannerText()
	}
	left, right := sb.documentText()
	if right == "" {
		return left
	}
	return left + " " + right
}

func (sb *StatusBar) bannerText() string {
	return " " + sb.message + "  " + DismissHint
}

func (sb *StatusBar) documentText() (string, string) {
	left := fmt.Sprintf(" %s -- Line: %d, Col: %d", BlockLabel(sb.blockType), sb.line+1, sb.col+1)
	return left, strings.Join(sb.styles, " ")
}

// Draw renders the status bar onto the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.RLock()
	cfg := sb.config
	visible := sb.visible
	var left, right string
	if visible {
		left = sb.bannerText()
	} else {
		left, right = sb.documentText()
	}
	sb.mu.RUnlock()

	style := cfg.StyleDefault
	if visible {
		style = cfg.StyleNotification
	}
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	x := drawString(screen, 0, y, width, left, style)
	if right != "" {
		drawString(screen, x+1, y, width, right, cfg.StyleActive)
	}
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
