// Package logger provides configurable logging capabilities
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"level" yaml:"level"`

	// LogFilePath is the path to the output log file. "-" means stderr.
	LogFilePath string `toml:"file" yaml:"file"`

	// EnabledTags only logs messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags" yaml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags" yaml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// Package name is the immediate directory name (e.g., "editor", "persist").
	EnabledPackages []string `toml:"enabled_packages" yaml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages" yaml:"disabled_packages"`

	// EnabledFiles only logs messages from these file base names (if non-empty).
	EnabledFiles []string `toml:"enabled_files" yaml:"enabled_files"`
	// DisabledFiles drops messages from these file base names.
	DisabledFiles []string `toml:"disabled_files" yaml:"disabled_files"`

	level               slog.Leveler
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// ParseLevel maps a level name to a slog level. Unknown names are an error.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// process parses string levels/lists into efficient internal formats.
func (c *Config) process() {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v, using info\n", err)
	}
	c.level = level

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)

	if debugFilter {
		fmt.Fprintf(os.Stderr, "[CONFIG PROCESS] packages enabled=%v disabled=%v\n", c.enabledPackagesSet, c.disabledPackagesSet)
	}
}

// sliceToSet lowercases items into a set; nil when there is nothing to match.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
