package theme

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Select activates the theme named by nameOrPath. A value ending in .toml is read
// as a theme file and registered first; anything else is a theme name.
func Select(m *Manager, nameOrPath string) error {
	if nameOrPath == "" {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(nameOrPath), ".toml") {
		return m.SetTheme(nameOrPath)
	}
	t, err := LoadThemeFromFile(nameOrPath)
	if err != nil {
		return fmt.Errorf("select theme: %w", err)
	}
	m.Add(t)
	return m.SetTheme(t.Name)
}
