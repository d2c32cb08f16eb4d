package app

import (
	"github.com/dshills/selnav/internal/event"
	"github.com/dshills/selnav/internal/history"
)

// subscribe wires the bus to the tracker and the scripting engine. Delivery
// is synchronous, so the tracker sees its own SetActive before returning.
func (app *Application) subscribe() error {
	subs := []struct {
		topic   event.Topic
		handler event.Handler
	}{
		{event.TopicSelectionChanged, app.onSelectionChanged},
		{event.TopicSceneOpened, app.onSceneOpened},
		{event.TopicObjectDeleted, app.onObjectDeleted},
		{event.TopicHistoryChanged, app.onHistoryChanged},
	}
	for _, s := range subs {
		if _, err := app.bus.Subscribe(s.topic, s.handler); err != nil {
			return err
		}
	}
	return nil
}

func refPayload(ev event.Event) history.Ref {
	ref, _ := ev.Payload.(history.Ref)
	return ref
}

func (app *Application) onSelectionChanged(ev event.Event) {
	ref := refPayload(ev)
	app.tracker.OnSelectionChanged(ref)
	if i := app.space.Current().IndexOf(ref); i >= 0 {
		app.cursor = i
	}
}

func (app *Application) onSceneOpened(event.Event) {
	app.tracker.Cleanup()
	app.clampCursor()
}

// onObjectDeleted drops the selection if it pointed at the deleted object.
// The cleared selection in turn purges the history.
func (app *Application) onObjectDeleted(ev event.Event) {
	if app.sel.Active() == refPayload(ev) {
		app.sel.Clear()
	}
	app.clampCursor()
}

func (app *Application) onHistoryChanged(ev event.Event) {
	if app.scripts == nil {
		return
	}
	ref := refPayload(ev)
	name := ""
	if obj, ok := app.space.Lookup(ref); ok {
		name = obj.Name
	}
	app.scripts.NotifySelect(ref, name)
}

// recorded is the tracker's record hook.
func (app *Application) recorded(ref history.Ref) {
	_, _ = app.bus.Publish(event.TopicHistoryChanged, ref)
}
