// Package event provides a synchronous publish/subscribe bus keyed by
// hierarchical topics.
//
// Topics use dot notation ("selection.changed", "scene.object.deleted").
// Subscription patterns may use wildcards:
//
//	"scene.*"      matches "scene.opened" but not "scene.object.deleted"
//	"scene.**"     matches "scene", "scene.opened" and "scene.object.deleted"
//
// Publish delivers to every matching handler in the caller's goroutine, in
// subscription order, before returning. Handlers may publish again; those
// nested events are delivered before the outer Publish continues. This is
// what lets a selection change made by a handler reach the history tracker
// within the same call.
package event
