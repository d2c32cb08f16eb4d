package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SELNAV_"

// Environment overrides.
const (
	EnvMaxSelections = EnvPrefix + "MAX_SELECTIONS"
	EnvStore         = EnvPrefix + "STORE"
	EnvLogLevel      = EnvPrefix + "LOG_LEVEL"
	EnvLogFile       = EnvPrefix + "LOG_FILE"
	EnvPluginScript  = EnvPrefix + "PLUGIN_SCRIPT"
)

// Load reads the config file at path over the defaults, applies
// environment overrides and validates the result. An empty path selects
// DefaultPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := decode(data, &cfg); err != nil {
			return Config{}, &ParseError{Path: path, Err: err}
		}
	}
	cfg.path = path

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// decode overlays TOML data onto cfg. Keys absent from data keep their
// current values; unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return nil
}

// applyEnv overlays environment variables read through lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMaxSelections); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return &ValidationError{Field: EnvMaxSelections, Message: fmt.Sprintf("not an integer: %q", v)}
		}
		c.History.MaxSelections = n
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.History.Store = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvPluginScript); ok {
		c.Plugin.Script = v
	}
	return nil
}

// Marshal renders cfg as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
