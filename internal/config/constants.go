package config

import "time"

// Base application details
const AppName = "scribe"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "scribe.log"
const DefaultDatabaseFileName = "scribe.db"

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Editor behaviour
const DefaultAutosaveDelay = 1000 * time.Millisecond
const DefaultNotificationDuration = 3000 * time.Millisecond
const DefaultUndoLimit = 100
const DefaultStorageKey = "editorContent"
const SystemClipboard = true
