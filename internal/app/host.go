package app

import (
	"github.com/dshills/selnav/internal/plugin"
)

// scriptHost exposes the application to Lua scripts.
type scriptHost struct {
	app *Application
}

var _ plugin.Host = scriptHost{}

func (h scriptHost) Previous() bool { return h.app.tracker.GoToPrevious() }
func (h scriptHost) Next() bool     { return h.app.tracker.GoToNext() }
func (h scriptHost) Offset() int    { return h.app.tracker.Offset() }
func (h scriptHost) Cleanup()       { h.app.tracker.Cleanup() }

func (h scriptHost) History() []plugin.Entry {
	refs := h.app.tracker.Entries()
	out := make([]plugin.Entry, len(refs))
	for i, ref := range refs {
		out[i] = plugin.Entry{Ref: ref}
		if obj, ok := h.app.space.Lookup(ref); ok {
			out[i].Name = obj.Name
			out[i].Valid = true
		}
	}
	return out
}

func (h scriptHost) Bind(spec, command string) error {
	return h.app.keys.Bind(spec, command)
}
