// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/scribe/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config `toml:"logger" yaml:"logger"`
	Editor    EditorConfig  `toml:"editor" yaml:"editor"`
	Storage   StorageConfig `toml:"storage" yaml:"storage"`
	ThemeFile string        `toml:"theme_file" yaml:"theme_file"`

	// warnings collects problems found while loading, before the logger is
	// available to report them.
	warnings []string
}

// Warnings returns non-fatal problems found while loading.
func (c *Config) Warnings() []string {
	return c.warnings
}

// EditorConfig holds editor-specific settings. Durations are written as
// strings such as "1s" or "750ms".
type EditorConfig struct {
	AutosaveDelay        time.Duration `toml:"autosave_delay" yaml:"autosave_delay"`
	NotificationDuration time.Duration `toml:"notification_duration" yaml:"notification_duration"`
	SystemClipboard      bool          `toml:"system_clipboard" yaml:"system_clipboard"`
	UndoLimit            int           `toml:"undo_limit" yaml:"undo_limit"`
}

// StorageConfig selects where documents are kept.
type StorageConfig struct {
	Backend string `toml:"backend" yaml:"backend"` // "sqlite" or "memory"
	Path    string `toml:"path" yaml:"path"`       // database file, sqlite only
	Key     string `toml:"key" yaml:"key"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel: "info",
		},
		Editor: EditorConfig{
			AutosaveDelay:        DefaultAutosaveDelay,
			NotificationDuration: DefaultNotificationDuration,
			SystemClipboard:      SystemClipboard,
			UndoLimit:            DefaultUndoLimit,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Key:     DefaultStorageKey,
		},
	}
}

// DataDir returns the directory scribe keeps its database and log in.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultConfigPath returns ~/.config/scribe/config.toml or its platform
// equivalent.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName), nil
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an
// error. Files ending in .yaml or .yml are YAML, everything else TOML.
func loadFromFile(cfg *Config, filePath string) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		metadata, err := toml.DecodeFile(filePath, cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			cfg.warnings = append(cfg.warnings, fmt.Sprintf("config file '%s': unrecognized keys: %v", filePath, undecoded))
		}
	}
	return nil
}

// validate resets out-of-range values to defaults, fills in derived paths
// and rejects settings that cannot be repaired.
func (c *Config) validate() error {
	defaults := NewDefaultConfig()

	if c.Editor.AutosaveDelay <= 0 {
		c.Editor.AutosaveDelay = defaults.Editor.AutosaveDelay
	}
	if c.Editor.NotificationDuration <= 0 {
		c.Editor.NotificationDuration = defaults.Editor.NotificationDuration
	}
	if c.Editor.UndoLimit < 0 {
		c.Editor.UndoLimit = 0
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if _, err := logger.ParseLevel(c.Logger.LogLevel); err != nil {
		return err
	}

	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = defaults.Storage.Backend
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, BackendSQLite, BackendMemory)
	}

	if c.Logger.LogFilePath == "" || (c.Storage.Backend == BackendSQLite && c.Storage.Path == "") {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		if c.Logger.LogFilePath == "" {
			c.Logger.LogFilePath = filepath.Join(dir, DefaultLogFileName)
		}
		if c.Storage.Backend == BackendSQLite && c.Storage.Path == "" {
			c.Storage.Path = filepath.Join(dir, DefaultDatabaseFileName)
		}
	}
	return nil
}

// Load builds a configuration from defaults, the config file and flags, in
// that order. An empty configFilePath means the default location.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if p, err := DefaultConfigPath(); err == nil {
			effectivePath = p
		}
	}
	if effectivePath != "" {
		if err := loadFromFile(cfg, effectivePath); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		if err := flags.ApplyOverrides(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the configuration once and keeps it for Get. It should be
// called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
