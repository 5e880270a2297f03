// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// Flags holds values parsed from command-line flags. Overrides are applied
// only for flags that were actually set.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	DebugLog        *bool
	SystemClipboard *bool
	Store           *string
	DatabasePath    *string
	StorageKey      *string
	AutosaveDelay   *time.Duration
	NotifyDuration  *time.Duration
	UndoLimit       *int
	ThemeFile       *string
}

// NewFlags defines scribe's flags on a new flag set named name.
func NewFlags(name string, output io.Writer) *Flags {
	f := &Flags{set: flag.NewFlagSet(name, flag.ContinueOnError)}
	if output != nil {
		f.set.SetOutput(output)
	}
	f.DefineFlags()
	return f
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	s := f.set
	f.ConfigFilePath = s.String("config", "", fmt.Sprintf("Path to TOML or YAML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = s.Bool("version", false, "Show version information and exit")
	f.LogLevel = s.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = s.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = s.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = s.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = s.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = s.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = s.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = s.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = s.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = s.Bool("system-clipboard", SystemClipboard, "Paste from the system clipboard with Ctrl+V")
	f.Store = s.String("store", "", "Storage backend (sqlite, memory) - Overrides config file")
	f.DatabasePath = s.String("db", "", "Path to the SQLite database - Overrides config file")
	f.StorageKey = s.String("key", "", "Storage key the document is kept under - Overrides config file")
	f.AutosaveDelay = s.Duration("autosave-delay", 0, "Idle time before an autosave, e.g. 1s - Overrides config file")
	f.NotifyDuration = s.Duration("notify-duration", 0, "How long notifications stay visible - Overrides config file")
	f.UndoLimit = s.Int("undo-limit", -1, "Number of undo steps kept, 0 disables undo - Overrides config file") // -1 means unset
	f.ThemeFile = s.String("theme", "", "Path to a TOML theme file - Overrides config file")
}

// Parse parses args (without the program name). Positional arguments are
// rejected.
func (f *Flags) Parse(args []string) error {
	if err := f.set.Parse(args); err != nil {
		return err
	}
	if f.set.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(f.set.Args(), " "))
	}
	return nil
}

// ApplyOverrides updates cfg with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) error {
	var err error
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			cfg.Logger.LogLevel = *f.LogLevel
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "store":
			cfg.Storage.Backend = *f.Store
		case "db":
			cfg.Storage.Path = *f.DatabasePath
		case "key":
			cfg.Storage.Key = *f.StorageKey
		case "autosave-delay":
			if *f.AutosaveDelay <= 0 {
				err = fmt.Errorf("-autosave-delay must be positive, got %s", *f.AutosaveDelay)
				return
			}
			cfg.Editor.AutosaveDelay = *f.AutosaveDelay
		case "notify-duration":
			if *f.NotifyDuration <= 0 {
				err = fmt.Errorf("-notify-duration must be positive, got %s", *f.NotifyDuration)
				return
			}
			cfg.Editor.NotificationDuration = *f.NotifyDuration
		case "undo-limit":
			if *f.UndoLimit >= 0 {
				cfg.Editor.UndoLimit = *f.UndoLimit
			}
		case "theme":
			cfg.ThemeFile = *f.ThemeFile
		}
	})
	return err
}

// ConfigPath returns the -config value.
func (f *Flags) ConfigPath() string {
	return *f.ConfigFilePath
}

// Helper function to split comma-separated list
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
