// Package config loads selnav settings.
//
// Settings come from three layers, later ones winning:
//
//	built-in defaults
//	config file (TOML, default <user config dir>/selnav/config.toml)
//	environment (SELNAV_MAX_SELECTIONS, SELNAV_STORE, SELNAV_LOG_LEVEL, SELNAV_LOG_FILE)
//
// A missing config file is not an error. Unknown keys and invalid values
// are.
//
// A Watcher reports edits to the config file so a running session can pick
// them up:
//
//	w, err := config.NewWatcher(path)
//	...
//	go w.Run(ctx, func() { reload() })
package config
