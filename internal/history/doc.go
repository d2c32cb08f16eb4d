// Package history records the objects a user selects and lets them step
// backward and forward through that record, the way a browser's back and
// forward buttons walk visited pages.
//
// # Model
//
// A Tracker owns three pieces of state:
//   - the history list, oldest entry first, bounded by a capacity
//     (DefaultCapacity unless configured);
//   - an offset counting how many steps back from the newest entry the
//     user is viewing (0 means the newest entry);
//   - a navigating flag set while the tracker's own selection change is
//     in flight, so that change is not recorded.
//
// # Collaborators
//
// The tracker does not know where objects live or how the list is stored.
// The host injects them:
//
//	tr := history.New(store, scene, sel,
//		history.WithCapacity(50),
//		history.WithLogger(log),
//	)
//
//	// Host forwards every selection change, including its own.
//	bus.Subscribe("selection.changed", func(ev event.Event) {
//		tr.OnSelectionChanged(ev.Payload.(history.Ref))
//	})
//
//	// Bound to commands.
//	tr.GoToPrevious()
//	tr.GoToNext()
//
// The Selector's SetActive must synchronously produce exactly one
// OnSelectionChanged call; that call is swallowed by the navigating flag.
//
// # Errors
//
// Nothing escapes the tracker. Out-of-range navigation is a no-op, dangling
// references are purged by Cleanup and store failures are logged.
//
// # Thread Safety
//
// A Tracker is not safe for concurrent use. SetActive re-enters the tracker
// from inside GoToPrevious and GoToNext, so a mutex would deadlock; hosts
// call it from a single event loop.
package history
