package history

// ensureLoaded acquires the persisted list on first use. A failed load
// leaves the tracker working in memory and is retried on the next call;
// entries recorded in the meantime are kept after the loaded ones.
func (t *Tracker) ensureLoaded() {
	if t.loaded || t.store == nil {
		return
	}
	stored, err := t.store.Load()
	if err != nil {
		t.loadFailed = true
		t.log.Warn("loading selection history: %v", err)
		return
	}
	t.loaded = true
	t.loadFailed = false

	pending := t.entries
	t.entries = make([]Ref, 0, len(stored)+len(pending))
	t.entries = append(t.entries, stored...)
	t.entries = append(t.entries, pending...)
	t.evict()
	t.cleanup()
	if len(pending) > 0 {
		t.save()
	}
}

// view loads the store for a read-only accessor. After a failed load only
// state-changing operations retry, so rendering does not hit the disk.
func (t *Tracker) view() {
	if !t.loadFailed {
		t.ensureLoaded()
	}
}

// Reload drops the cached list and reads the store again on next use.
func (t *Tracker) Reload() {
	t.entries = nil
	t.loaded = false
	t.loadFailed = false
	t.offset = 0
	t.navigating = false
	t.ensureLoaded()
}

// save writes the list through to the store. Nothing is written until the
// store has been read successfully, so an unreadable file is not clobbered.
func (t *Tracker) save() {
	if !t.loaded || t.store == nil {
		return
	}
	if err := t.store.Save(t.Entries()); err != nil {
		t.log.Warn("saving selection history: %v", err)
	}
}
