package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/selnav/internal/history"
	"github.com/dshills/selnav/internal/keymap"
)

// AppName names the per-user config and data directories.
const AppName = "selnav"

// Config holds every selnav setting.
type Config struct {
	History HistoryConfig `toml:"history"`
	Keys    KeysConfig    `toml:"keys"`
	Log     LogConfig     `toml:"log"`
	Plugin  PluginConfig  `toml:"plugin"`

	// path is the file the config was read from, if any.
	path string
}

// HistoryConfig configures the selection history.
type HistoryConfig struct {
	// MaxSelections is the number of selections remembered.
	MaxSelections int `toml:"max_selections"`
	// Store is the history file; ".toml" or ".yaml".
	Store string `toml:"store"`
}

// KeysConfig configures command bindings.
type KeysConfig struct {
	Previous string `toml:"previous"`
	Next     string `toml:"next"`
	// Bindings maps further command names to key specifications.
	Bindings map[string]string `toml:"bindings"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// PluginConfig configures Lua scripting.
type PluginConfig struct {
	// Script is run once at startup when set.
	Script string `toml:"script"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxSelections: history.DefaultCapacity,
			Store:         filepath.Join(DataDir(), "history.toml"),
		},
		Keys: KeysConfig{
			Previous: "Ctrl+G",
			Next:     "Alt+G",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Path returns the file the config was loaded from, or "".
func (c Config) Path() string {
	return c.path
}

// ConfigDir returns the per-user selnav config directory.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, AppName)
}

// DataDir returns the directory for the persisted history. It is the
// config directory; selnav keeps both together.
func DataDir() string {
	return ConfigDir()
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.History.MaxSelections < 1 {
		add("history.max_selections", "must be at least 1, got %d", c.History.MaxSelections)
	}
	if strings.TrimSpace(c.History.Store) == "" {
		add("history.store", "must not be empty")
	} else {
		switch strings.ToLower(filepath.Ext(c.History.Store)) {
		case ".toml", ".yaml", ".yml":
		default:
			add("history.store", "unsupported extension %q (want .toml, .yaml or .yml)", filepath.Ext(c.History.Store))
		}
	}

	if _, err := keymap.Parse(c.Keys.Previous); err != nil {
		add("keys.previous", "%v", err)
	}
	if _, err := keymap.Parse(c.Keys.Next); err != nil {
		add("keys.next", "%v", err)
	}
	for cmd, spec := range c.Keys.Bindings {
		if !keymap.IsCommand(cmd) {
			add("keys.bindings."+cmd, "unknown command")
		} else if _, err := keymap.Parse(spec); err != nil {
			add("keys.bindings."+cmd, "%v", err)
		}
	}

	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		add("log.level", "must be one of %s, got %q", strings.Join(validLevels, ", "), c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 {
		add("log.max_size_mb", "must not be negative")
	}
	if c.Log.MaxBackups < 0 {
		add("log.max_backups", "must not be negative")
	}

	return errors.Join(errs...)
}

// Keymap builds the keymap: defaults, then the configured bindings.
func (c Config) Keymap() (*keymap.Keymap, error) {
	km := keymap.Default()
	if err := km.Rebind(keymap.CmdPrevious, c.Keys.Previous); err != nil {
		return nil, err
	}
	if err := km.Rebind(keymap.CmdNext, c.Keys.Next); err != nil {
		return nil, err
	}
	for cmd, spec := range c.Keys.Bindings {
		if err := km.Bind(spec, cmd); err != nil {
			return nil, err
		}
	}
	return km, nil
}
