// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/scribe/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names looked up by the renderer.
const (
	StyleDefault            = "Default"
	StyleHeading            = "Heading"
	StyleBold               = "Bold"
	StyleItalic             = "Italic"
	StyleUnderline          = "Underline"
	StyleRedLine            = "RedLine"
	StyleCode               = "Code"
	StyleSelection          = "Selection"
	StylePlaceholder        = "Placeholder"
	StyleTitleBar           = "TitleBar"
	StyleSaveButton         = "SaveButton"
	StyleSaveButtonDisabled = "SaveButtonDisabled"
	StyleStatusBar          = "StatusBar"
	StyleStatusBarActive    = "StatusBarActive"
	StyleNotification       = "Notification"
)

// overlayStyles are layered over a block's base style rather than replacing
// it, so they only carry the attributes and colours they change.
var overlayStyles = map[string]bool{
	StyleBold:      true,
	StyleItalic:    true,
	StyleUnderline: true,
	StyleRedLine:   true,
	StyleCode:      true,
	StyleSelection: true,
}

// IsOverlay reports whether name is layered over the text's base style.
func IsOverlay(name string) bool {
	return overlayStyles[name]
}

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style called name, falling back to its base name
// (the part before the first dot) and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.Debugf("Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// Overlays fall back to "no change" rather than to Default.
	if IsOverlay(name) {
		return tcell.StyleDefault
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Overlay applies the overlay style called name on top of base: colours the
// overlay sets replace the base's, attributes are added.
func (t *Theme) Overlay(base tcell.Style, name string) tcell.Style {
	fg, bg, attrs := t.GetStyle(name).Decompose()
	_, _, baseAttrs := base.Decompose()
	if fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	base = base.Attributes(baseAttrs | attrs)
	if attrs&tcell.AttrUnderline != 0 {
		base = base.Underline(true)
	}
	return base
}

var (
	ScribeDark  Theme
	ScribeLight Theme
)

func init() {
	// --- Palette for Scribe Dark ---
	dkBar := tcell.NewHexColor(0x2a2f38)
	dkForeground := tcell.NewHexColor(0xc5cdd9)
	dkMuted := tcell.NewHexColor(0x5c6370)
	dkYellow := tcell.NewHexColor(0xe5c07b)
	dkGreen := tcell.NewHexColor(0x98c379)
	dkBlue := tcell.NewHexColor(0x61afef)
	dkCodeBg := tcell.NewHexColor(0x353b45)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dkForeground)
	barStyle := tcell.StyleDefault.Background(dkBar).Foreground(dkForeground)

	ScribeDark = Theme{
		Name:   "Scribe Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:     baseStyle,
			StyleHeading:     baseStyle.Foreground(dkBlue).Bold(true),
			StylePlaceholder: baseStyle.Foreground(dkMuted).Italic(true),

			// Inline overlays
			StyleBold:      tcell.StyleDefault.Bold(true),
			StyleItalic:    tcell.StyleDefault.Italic(true),
			StyleUnderline: tcell.StyleDefault.Underline(true),
			StyleRedLine:   tcell.StyleDefault.Foreground(tcell.ColorRed),
			StyleCode:      tcell.StyleDefault.Background(dkCodeBg),
			StyleSelection: tcell.StyleDefault.Reverse(true),

			// Chrome
			StyleTitleBar:           barStyle.Bold(true),
			StyleSaveButton:         barStyle.Foreground(dkGreen).Bold(true),
			StyleSaveButtonDisabled: barStyle.Foreground(dkMuted),
			StyleStatusBar:          barStyle,
			StyleStatusBarActive:    barStyle.Foreground(dkYellow),
			StyleNotification:       tcell.StyleDefault.Background(dkGreen).Foreground(tcell.ColorBlack).Bold(true),
		},
	}

	// --- Palette for Scribe Light ---
	ltBar := tcell.NewHexColor(0xe5e7eb)
	ltForeground := tcell.NewHexColor(0x1f2933)
	ltMuted := tcell.NewHexColor(0x9aa5b1)
	ltBlue := tcell.NewHexColor(0x1d4ed8)
	ltGreen := tcell.NewHexColor(0x15803d)
	ltCodeBg := tcell.NewHexColor(0xf3f4f6)

	lightBase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(ltForeground)
	lightBar := tcell.StyleDefault.Background(ltBar).Foreground(ltForeground)

	ScribeLight = Theme{
		Name: "Scribe Light",
		Styles: map[string]tcell.Style{
			StyleDefault:     lightBase,
			StyleHeading:     lightBase.Foreground(ltBlue).Bold(true),
			StylePlaceholder: lightBase.Foreground(ltMuted).Italic(true),

			StyleBold:      tcell.StyleDefault.Bold(true),
			StyleItalic:    tcell.StyleDefault.Italic(true),
			StyleUnderline: tcell.StyleDefault.Underline(true),
			StyleRedLine:   tcell.StyleDefault.Foreground(tcell.ColorRed),
			StyleCode:      tcell.StyleDefault.Background(ltCodeBg),
			StyleSelection: tcell.StyleDefault.Reverse(true),

			StyleTitleBar:           lightBar.Bold(true),
			StyleSaveButton:         lightBar.Foreground(ltGreen).Bold(true),
			StyleSaveButtonDisabled: lightBar.Foreground(ltMuted),
			StyleStatusBar:          lightBar,
			StyleStatusBarActive:    lightBar.Foreground(ltBlue),
			StyleNotification:       tcell.StyleDefault.Background(ltGreen).Foreground(tcell.ColorWhite).Bold(true),
		},
	}
}
