package history

// DefaultCapacity is the number of selections remembered when no capacity
// is configured.
const DefaultCapacity = 50

// Tracker records genuine selections and navigates through them.
type Tracker struct {
	store    Store
	resolver Resolver
	selector Selector
	log      Logger
	onRecord func(ref Ref)

	entries    []Ref
	loaded     bool
	loadFailed bool
	capacity   int

	// offset counts steps back from the newest entry.
	offset int

	// navigating is set while our own SetActive is in flight.
	navigating bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCapacity sets the maximum number of entries. Values <= 0 select
// DefaultCapacity.
func WithCapacity(n int) Option {
	return func(t *Tracker) {
		t.capacity = normalizeCapacity(n)
	}
}

// WithLogger sets the logger for store failures and cleanup reports.
func WithLogger(l Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithRecordHook registers fn to run after every recorded selection.
func WithRecordHook(fn func(ref Ref)) Option {
	return func(t *Tracker) {
		t.onRecord = fn
	}
}

// New creates a tracker. The store is read lazily on first use.
func New(store Store, resolver Resolver, selector Selector, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		resolver: resolver,
		selector: selector,
		log:      nopLogger{},
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func normalizeCapacity(n int) int {
	if n <= 0 {
		return DefaultCapacity
	}
	return n
}

// OnSelectionChanged must be called by the host for every change of the
// active selection, including the ones the tracker causes. A zero ref means
// the selection was cleared.
func (t *Tracker) OnSelectionChanged(active Ref) {
	if t.navigating {
		t.navigating = false
		return
	}
	t.ensureLoaded()

	if active.IsZero() {
		// Cleared selections usually mean their object was deleted.
		t.Cleanup()
		return
	}

	if t.offset != 0 {
		// A fresh choice abandons the forward branch.
		t.entries = t.entries[:len(t.entries)-t.offset]
		t.offset = 0
	}
	t.entries = append(t.entries, active)
	t.evict()
	t.save()

	if t.onRecord != nil {
		t.onRecord(active)
	}
}

// Cleanup resets the cursor and drops every entry whose object is gone.
// Hosts call it whenever the addressable object space is swapped.
func (t *Tracker) Cleanup() {
	t.ensureLoaded()
	t.cleanup()
}

func (t *Tracker) cleanup() {
	t.offset = 0
	t.navigating = false

	kept := t.entries[:0]
	for _, ref := range t.entries {
		if !ref.IsZero() && t.resolver.Valid(ref) {
			kept = append(kept, ref)
		}
	}
	removed := len(t.entries) - len(kept)
	clear(t.entries[len(kept):])
	t.entries = kept

	if removed > 0 {
		t.log.Debug("removed %d dangling selections", removed)
		t.save()
	}
}

// GoToPrevious moves one step back in history and selects that entry.
// It reports whether the cursor moved.
func (t *Tracker) GoToPrevious() bool {
	t.ensureLoaded()
	if t.offset >= len(t.entries)-1 {
		return false
	}
	t.offset++
	t.applyCursor()
	return true
}

// GoToNext moves one step forward in history and selects that entry.
// It reports whether the cursor moved.
func (t *Tracker) GoToNext() bool {
	t.ensureLoaded()
	if t.offset <= 0 {
		return false
	}
	t.offset--
	t.applyCursor()
	return true
}

func (t *Tracker) applyCursor() {
	t.navigating = true
	t.selector.SetActive(t.entries[len(t.entries)-1-t.offset])
}

// Reset removes every entry.
func (t *Tracker) Reset() {
	t.ensureLoaded()
	t.entries = nil
	t.offset = 0
	t.navigating = false
	t.save()
}

// SetCapacity changes the maximum number of entries, evicting the oldest
// ones if the list is now too long. Values <= 0 select DefaultCapacity.
func (t *Tracker) SetCapacity(n int) {
	t.ensureLoaded()
	t.capacity = normalizeCapacity(n)
	if t.evict() {
		t.save()
	}
	if t.offset > 0 && t.offset >= len(t.entries) {
		t.offset = len(t.entries) - 1
	}
}

// evict drops head entries until the list fits. It reports whether any
// entry was dropped.
func (t *Tracker) evict() bool {
	excess := len(t.entries) - t.capacity
	if excess <= 0 {
		return false
	}
	n := copy(t.entries, t.entries[excess:])
	clear(t.entries[n:])
	t.entries = t.entries[:n]
	return true
}

// Entries returns a copy of the history, oldest first.
func (t *Tracker) Entries() []Ref {
	t.view()
	out := make([]Ref, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Tracker) Len() int {
	t.view()
	return len(t.entries)
}

// Offset returns how many steps back from the newest entry the cursor is.
func (t *Tracker) Offset() int {
	return t.offset
}

// Capacity returns the maximum number of entries.
func (t *Tracker) Capacity() int {
	return t.capacity
}

// Navigating reports whether a self-caused selection change is pending.
func (t *Tracker) Navigating() bool {
	return t.navigating
}

// Current returns the entry under the cursor.
func (t *Tracker) Current() (Ref, bool) {
	t.view()
	if len(t.entries) == 0 {
		return "", false
	}
	return t.entries[len(t.entries)-1-t.offset], true
}

// CanGoBack reports whether GoToPrevious would move.
func (t *Tracker) CanGoBack() bool {
	t.view()
	return t.offset < len(t.entries)-1
}

// CanGoForward reports whether GoToNext would move.
func (t *Tracker) CanGoForward() bool {
	return t.offset > 0
}
