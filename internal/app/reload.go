package app

import (
	"github.com/dshills/selnav/internal/config"
	"github.com/dshills/selnav/internal/event"
	"github.com/dshills/selnav/internal/logging"
)

// reload re-reads the config file and applies what can change at runtime:
// history capacity, key bindings and log level. A bad file keeps the
// current settings. Options.Overrides is applied on top of the file.
func (app *Application) reload() {
	path := app.cfg.Path()
	if path == "" {
		return
	}
	cfg, err := config.Load(path)
	if err == nil && app.opts.Overrides != nil {
		app.opts.Overrides(&cfg)
		err = cfg.Validate()
	}
	if err != nil {
		app.log.Warn("reloading config: %v", err)
		app.status = "config error; keeping previous settings"
		return
	}
	keys, err := cfg.Keymap()
	if err != nil {
		app.log.Warn("reloading key bindings: %v", err)
		app.status = "config error; keeping previous settings"
		return
	}

	if cfg.History.Store != app.cfg.History.Store {
		app.log.Info("history.store changed to %s; restart to use it", cfg.History.Store)
	}
	app.tracker.SetCapacity(cfg.History.MaxSelections)
	app.keys = keys
	app.log.SetLevel(logging.ParseLevel(cfg.Log.Level))
	app.cfg = cfg

	app.status = "config reloaded"
	_, _ = app.bus.Publish(event.TopicConfigReloaded, path)
}
