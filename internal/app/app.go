// Package app is the selnav terminal host: a scene browser whose selection
// is recorded by the history tracker and navigated with back/forward keys.
//
// All state is owned by the event loop. The config watcher runs on its own
// goroutine and only posts interrupts to the screen.
package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/selnav/internal/config"
	"github.com/dshills/selnav/internal/event"
	"github.com/dshills/selnav/internal/history"
	"github.com/dshills/selnav/internal/keymap"
	"github.com/dshills/selnav/internal/logging"
	"github.com/dshills/selnav/internal/plugin"
	"github.com/dshills/selnav/internal/scene"
	"github.com/dshills/selnav/internal/selection"
	"github.com/dshills/selnav/internal/store"
)

// Options configures the application.
type Options struct {
	// Config is the loaded configuration.
	Config config.Config

	// ScenePath is the scene file to open. Empty opens the sample scene.
	ScenePath string

	// NoPersist keeps the history in memory only.
	NoPersist bool

	// Store overrides the history store chosen from Config.
	Store history.Store

	// Screen overrides the terminal screen. Tests pass a simulation screen.
	Screen tcell.Screen

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger

	// Overrides is applied to every config read from disk, including live
	// reloads, so command line settings survive edits to the file.
	Overrides func(*config.Config)
}

// Application is the running host.
type Application struct {
	cfg  config.Config
	opts Options
	log  *logging.Logger

	bus     *event.Bus
	space   *scene.Space
	sel     *selection.Selection
	tracker *history.Tracker
	keys    *keymap.Keymap
	scripts *plugin.Engine
	screen  tcell.Screen

	// cursor is the highlighted row of the object list.
	cursor  int
	status  string
	created int
}

// reloadConfig and stopLoop are interrupt payloads for the event loop.
type (
	reloadConfig struct{}
	stopLoop     struct{}
)

// New builds the application. The screen is not touched until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		cfg:    opts.Config,
		opts:   opts,
		log:    opts.Logger,
		screen: opts.Screen,
	}
	if app.log == nil {
		app.log = logging.Discard()
	}

	app.bus = event.NewBus(event.WithPanicHandler(func(ev event.Event, recovered any, _ []byte) {
		app.log.Error("handler for %s panicked: %v", ev.Topic, recovered)
	}))

	sc := scene.Sample()
	if opts.ScenePath != "" {
		var err error
		if sc, err = scene.Load(opts.ScenePath); err != nil {
			return nil, &InitError{Component: "scene", Err: err}
		}
	}
	app.space = scene.NewSpace(sc)
	app.sel = selection.New(app.bus)

	st, err := app.openStore()
	if err != nil {
		return nil, &InitError{Component: "history store", Err: err}
	}
	app.tracker = history.New(st, app.space, app.sel,
		history.WithCapacity(app.cfg.History.MaxSelections),
		history.WithLogger(app.log.WithComponent("history")),
		history.WithRecordHook(app.recorded),
	)

	if app.keys, err = app.cfg.Keymap(); err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}

	if err := app.subscribe(); err != nil {
		return nil, &InitError{Component: "event bus", Err: err}
	}

	if script := app.cfg.Plugin.Script; script != "" {
		app.scripts = plugin.New(scriptHost{app}, app.log.WithComponent("plugin"))
		if err := app.scripts.DoFile(script); err != nil {
			app.log.Warn("plugin script %s: %v", script, err)
			app.status = "plugin script failed; see log"
		}
	}

	return app, nil
}

func (app *Application) openStore() (history.Store, error) {
	switch {
	case app.opts.Store != nil:
		return app.opts.Store, nil
	case app.opts.NoPersist:
		return store.NewMemoryStore(), nil
	default:
		return store.NewFileStore(app.cfg.History.Store)
	}
}

// Run initializes the screen and runs the event loop until the user quits or
// ctx is done. A normal exit returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if app.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.screen = s
	}
	if err := app.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.screen.Fini()

	g, ctx := errgroup.WithContext(ctx)

	if path := app.cfg.Path(); path != "" {
		w, err := config.NewWatcher(path, config.WithErrorHandler(func(err error) {
			app.log.Warn("config watcher: %v", err)
		}))
		if err != nil {
			app.log.Warn("not watching %s: %v", path, err)
		} else {
			defer w.Close()
			g.Go(func() error {
				err := w.Run(ctx, func() {
					_ = app.screen.PostEvent(tcell.NewEventInterrupt(reloadConfig{}))
				})
				if errors.Is(err, config.ErrWatcherClosed) {
					return nil
				}
				return err
			})
		}
	}

	g.Go(func() error {
		<-ctx.Done()
		_ = app.screen.PostEvent(tcell.NewEventInterrupt(stopLoop{}))
		return nil
	})

	g.Go(app.loop)

	return g.Wait()
}

func (app *Application) loop() error {
	app.draw()
	for {
		ev := app.screen.PollEvent()
		if ev == nil {
			return ErrQuit
		}
		if err := app.handleEvent(ev); err != nil {
			return err
		}
		app.draw()
	}
}

// handleEvent processes one screen event. It returns ErrQuit when the loop
// should end.
func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok := app.keys.LookupEvent(ev)
		if !ok {
			return nil
		}
		return app.execute(cmd)
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventInterrupt:
		switch ev.Data().(type) {
		case reloadConfig:
			app.reload()
		case stopLoop:
			return ErrQuit
		}
	}
	return nil
}

// Tracker exposes the selection history.
func (app *Application) Tracker() *history.Tracker {
	return app.tracker
}

// Scene returns the open scene.
func (app *Application) Scene() *scene.Scene {
	return app.space.Current()
}

// Selection returns the active selection.
func (app *Application) Selection() *selection.Selection {
	return app.sel
}

// Bus returns the application event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Status returns the status line message.
func (app *Application) Status() string {
	return app.status
}

// Close releases the scripting engine.
func (app *Application) Close() {
	if app.scripts != nil {
		app.scripts.Close()
	}
}
