package app

import (
	"fmt"

	"github.com/dshills/selnav/internal/event"
	"github.com/dshills/selnav/internal/keymap"
	"github.com/dshills/selnav/internal/scene"
)

// execute runs a bound command. Only app.quit returns an error; failures of
// other commands are reported on the status line.
func (app *Application) execute(cmd string) error {
	var err error
	switch cmd {
	case keymap.CmdPrevious:
		if !app.tracker.GoToPrevious() {
			app.status = "at oldest selection"
		}
	case keymap.CmdNext:
		if !app.tracker.GoToNext() {
			app.status = "at newest selection"
		}
	case keymap.CmdUp:
		app.moveCursor(-1)
	case keymap.CmdDown:
		app.moveCursor(1)
	case keymap.CmdSelect:
		err = app.selectAtCursor()
	case keymap.CmdDelete:
		err = app.deleteAtCursor()
	case keymap.CmdCreate:
		err = app.createObject()
	case keymap.CmdClear:
		app.sel.Clear()
	case keymap.CmdReload:
		err = app.reopenScene()
	case keymap.CmdCleanup:
		app.tracker.Cleanup()
		app.status = fmt.Sprintf("history holds %d selections", app.tracker.Len())
	case keymap.CmdResetHist:
		app.tracker.Reset()
		app.status = "history cleared"
	case keymap.CmdQuit:
		return ErrQuit
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	if err != nil {
		app.log.Debug("command %s: %v", cmd, err)
		app.status = err.Error()
	}
	return nil
}

func (app *Application) moveCursor(delta int) {
	app.cursor += delta
	app.clampCursor()
}

func (app *Application) clampCursor() {
	n := app.space.Current().Len()
	switch {
	case n == 0:
		app.cursor = 0
	case app.cursor >= n:
		app.cursor = n - 1
	case app.cursor < 0:
		app.cursor = 0
	}
}

func (app *Application) objectAtCursor() (*scene.Object, error) {
	obj := app.space.Current().At(app.cursor)
	if obj == nil {
		return nil, ErrNoObject
	}
	return obj, nil
}

func (app *Application) selectAtCursor() error {
	obj, err := app.objectAtCursor()
	if err != nil {
		return err
	}
	app.sel.SetActive(obj.Ref)
	return nil
}

func (app *Application) deleteAtCursor() error {
	obj, err := app.objectAtCursor()
	if err != nil {
		return err
	}
	if err := app.space.Current().Delete(obj.Ref); err != nil {
		return err
	}
	_, _ = app.bus.Publish(event.TopicObjectDeleted, obj.Ref)
	app.status = "deleted " + obj.Name
	return nil
}

// createObject adds an object and selects it.
func (app *Application) createObject() error {
	app.created++
	obj, err := app.space.Current().Create(fmt.Sprintf("GameObject %d", app.created), "Empty")
	if err != nil {
		return err
	}
	_, _ = app.bus.Publish(event.TopicObjectCreated, obj.Ref)
	app.sel.SetActive(obj.Ref)
	return nil
}

// reopenScene reloads the scene from disk, or a fresh sample scene, and
// announces the new object space.
func (app *Application) reopenScene() error {
	if path := app.opts.ScenePath; path != "" {
		if err := app.space.Open(path); err != nil {
			return err
		}
	} else {
		app.space.Replace(scene.Sample())
	}
	_, _ = app.bus.Publish(event.TopicSceneOpened, app.space.Current().Name())
	app.status = "opened " + app.space.Current().Name()
	return nil
}
