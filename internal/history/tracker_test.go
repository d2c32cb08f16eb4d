package history

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

// memStore is an in-memory Store that can be told to fail.
type memStore struct {
	entries []Ref
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func (s *memStore) Load() ([]Ref, error) {
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return slices.Clone(s.entries), nil
}

func (s *memStore) Save(entries []Ref) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.entries = slices.Clone(entries)
	return nil
}

// host mimics an editor: a set of live objects and an active selection that
// reports every assignment back to the tracker.
type host struct {
	live    map[Ref]bool
	active  Ref
	tracker *Tracker
	sets    int
}

func newHost(t *testing.T, store Store, opts ...Option) *host {
	t.Helper()
	h := &host{live: make(map[Ref]bool)}
	h.tracker = New(store, ResolverFunc(func(r Ref) bool { return h.live[r] }), h, opts...)
	return h
}

func (h *host) SetActive(ref Ref) {
	h.sets++
	h.active = ref
	h.tracker.OnSelectionChanged(ref)
}

// user selects objects by name, creating them as live objects.
func (h *host) user(names ...string) {
	for _, n := range names {
		ref := Ref(n)
		h.live[ref] = true
		h.SetActive(ref)
	}
}

func refs(names ...string) []Ref {
	out := make([]Ref, len(names))
	for i, n := range names {
		out[i] = Ref(n)
	}
	return out
}

func assertEntries(t *testing.T, tr *Tracker, want ...string) {
	t.Helper()
	got := tr.Entries()
	if !slices.Equal(got, refs(want...)) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestNewTrackerDefaults(t *testing.T) {
	tr := New(nil, ResolverFunc(func(Ref) bool { return true }), SelectorFunc(func(Ref) {}))
	if tr.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", tr.Capacity(), DefaultCapacity)
	}
	if tr.Len() != 0 || tr.Offset() != 0 || tr.Navigating() {
		t.Errorf("new tracker not empty: len=%d offset=%d navigating=%v", tr.Len(), tr.Offset(), tr.Navigating())
	}
	if _, ok := tr.Current(); ok {
		t.Error("Current() on empty tracker should report false")
	}
}

func TestRecordAppends(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C")

	assertEntries(t, h.tracker, "A", "B", "C")
	if cur, _ := h.tracker.Current(); cur != "C" {
		t.Errorf("Current() = %q, want C", cur)
	}
}

func TestNavigateScenario(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C")
	tr := h.tracker

	steps := []struct {
		move       func() bool
		wantOffset int
		wantActive Ref
	}{
		{tr.GoToPrevious, 1, "B"},
		{tr.GoToPrevious, 2, "A"},
		{tr.GoToNext, 1, "B"},
	}
	for i, step := range steps {
		if !step.move() {
			t.Fatalf("step %d: did not move", i)
		}
		if tr.Offset() != step.wantOffset {
			t.Errorf("step %d: offset = %d, want %d", i, tr.Offset(), step.wantOffset)
		}
		if h.active != step.wantActive {
			t.Errorf("step %d: active = %q, want %q", i, h.active, step.wantActive)
		}
		if tr.Navigating() {
			t.Errorf("step %d: navigating flag not consumed", i)
		}
	}
	// Navigation never records.
	assertEntries(t, tr, "A", "B", "C")
}

func TestBranchDiscardsForward(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C")
	h.tracker.GoToPrevious()
	h.tracker.GoToPrevious()

	h.user("D")

	assertEntries(t, h.tracker, "A", "D")
	if h.tracker.Offset() != 0 {
		t.Errorf("offset = %d, want 0", h.tracker.Offset())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := newHost(t, &memStore{}, WithCapacity(2))
	h.user("A", "B")
	h.user("C")
	assertEntries(t, h.tracker, "B", "C")
}

func TestLengthNeverExceedsCapacity(t *testing.T) {
	const capacity = 5
	h := newHost(t, &memStore{}, WithCapacity(capacity))
	for i := 0; i < 3*capacity; i++ {
		h.user(fmt.Sprintf("obj-%02d", i))
		if h.tracker.Len() > capacity {
			t.Fatalf("after %d selections len = %d > %d", i+1, h.tracker.Len(), capacity)
		}
	}
	assertEntries(t, h.tracker, "obj-10", "obj-11", "obj-12", "obj-13", "obj-14")
}

func TestPreviousThenNextRestores(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C", "D")
	h.tracker.GoToPrevious()

	before, offset := h.active, h.tracker.Offset()
	h.tracker.GoToPrevious()
	h.tracker.GoToNext()

	if h.active != before || h.tracker.Offset() != offset {
		t.Errorf("got active=%q offset=%d, want %q %d", h.active, h.tracker.Offset(), before, offset)
	}
}

func TestNavigationBounds(t *testing.T) {
	h := newHost(t, &memStore{})

	if h.tracker.GoToPrevious() || h.tracker.GoToNext() {
		t.Fatal("navigation on empty history should be a no-op")
	}

	h.user("A", "B")
	if h.tracker.GoToNext() {
		t.Error("GoToNext at head should be a no-op")
	}
	h.tracker.GoToPrevious()
	sets := h.sets
	if h.tracker.GoToPrevious() {
		t.Error("GoToPrevious at oldest entry should be a no-op")
	}
	if h.sets != sets {
		t.Error("no-op navigation must not set the selection")
	}
	if h.tracker.Offset() != 1 {
		t.Errorf("offset = %d, want 1", h.tracker.Offset())
	}
	if h.tracker.CanGoBack() || !h.tracker.CanGoForward() {
		t.Error("CanGoBack/CanGoForward disagree with offset")
	}
}

func TestSingleEntryCannotNavigate(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A")
	if h.tracker.GoToPrevious() {
		t.Error("GoToPrevious with one entry should be a no-op")
	}
}

func TestClearedSelectionRunsCleanup(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C")
	h.tracker.GoToPrevious()

	delete(h.live, "B")
	h.SetActive("")

	assertEntries(t, h.tracker, "A", "C")
	if h.tracker.Offset() != 0 {
		t.Errorf("offset = %d, want 0", h.tracker.Offset())
	}
}

func TestCleanupPreservesOrder(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C", "D", "E")
	delete(h.live, "B")
	delete(h.live, "D")
	h.tracker.GoToPrevious()

	h.tracker.Cleanup()

	assertEntries(t, h.tracker, "A", "C", "E")
	if h.tracker.Offset() != 0 || h.tracker.Navigating() {
		t.Errorf("cleanup did not reset cursor: offset=%d navigating=%v", h.tracker.Offset(), h.tracker.Navigating())
	}
}

func TestCleanupOnLoad(t *testing.T) {
	store := &memStore{entries: refs("A", "gone", "B")}
	h := newHost(t, store)
	h.live["A"], h.live["B"] = true, true

	assertEntries(t, h.tracker, "A", "B")
	if !slices.Equal(store.entries, refs("A", "B")) {
		t.Errorf("store = %v, want cleaned list saved", store.entries)
	}
}

func TestLoadTruncatesToCapacity(t *testing.T) {
	store := &memStore{entries: refs("A", "B", "C", "D")}
	h := newHost(t, store, WithCapacity(2))
	for _, r := range store.entries {
		h.live[r] = true
	}
	assertEntries(t, h.tracker, "C", "D")
}

func TestSavesAfterEveryRecord(t *testing.T) {
	store := &memStore{}
	h := newHost(t, store)
	h.user("A", "B")
	if !slices.Equal(store.entries, refs("A", "B")) {
		t.Errorf("store = %v, want [A B]", store.entries)
	}
	saves := store.saves
	h.tracker.GoToPrevious()
	if store.saves != saves {
		t.Error("navigation should not write the store")
	}
}

func TestLoadFailureRetries(t *testing.T) {
	store := &memStore{entries: refs("A"), loadErr: errors.New("disk on fire")}
	h := newHost(t, store)
	h.live["A"] = true

	h.user("B")
	assertEntries(t, h.tracker, "B")
	if store.saves != 0 {
		t.Fatal("tracker wrote to a store it could not read")
	}

	// Read-only access does not retry a failed load.
	loads := store.loads
	h.tracker.Entries()
	h.tracker.Len()
	h.tracker.Current()
	h.tracker.CanGoBack()
	if store.loads != loads {
		t.Errorf("accessors retried the load %d times", store.loads-loads)
	}

	store.loadErr = nil
	h.tracker.Cleanup()
	assertEntries(t, h.tracker, "A", "B")
	if !slices.Equal(store.entries, refs("A", "B")) {
		t.Errorf("store = %v, want [A B]", store.entries)
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	store := &memStore{saveErr: errors.New("read-only")}
	h := newHost(t, store)
	h.user("A", "B")
	assertEntries(t, h.tracker, "A", "B")
}

func TestReset(t *testing.T) {
	store := &memStore{}
	h := newHost(t, store)
	h.user("A", "B")
	h.tracker.GoToPrevious()

	h.tracker.Reset()

	if h.tracker.Len() != 0 || h.tracker.Offset() != 0 {
		t.Errorf("Reset left len=%d offset=%d", h.tracker.Len(), h.tracker.Offset())
	}
	if len(store.entries) != 0 {
		t.Errorf("store = %v, want empty", store.entries)
	}
}

func TestSetCapacityShrinks(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C", "D")
	h.tracker.GoToPrevious()
	h.tracker.GoToPrevious()
	h.tracker.GoToPrevious()

	h.tracker.SetCapacity(2)

	assertEntries(t, h.tracker, "C", "D")
	if h.tracker.Offset() != 1 {
		t.Errorf("offset = %d, want clamped to 1", h.tracker.Offset())
	}

	h.tracker.SetCapacity(0)
	if h.tracker.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want default", h.tracker.Capacity())
	}
}

func TestReselectUnderCursorAppends(t *testing.T) {
	h := newHost(t, &memStore{})
	h.user("A", "B", "C")
	h.tracker.GoToPrevious()

	// The user explicitly picks B again while viewing it.
	h.user("B")

	assertEntries(t, h.tracker, "A", "B", "B")
}

func TestRecordHook(t *testing.T) {
	var recorded []Ref
	h := newHost(t, &memStore{}, WithRecordHook(func(r Ref) { recorded = append(recorded, r) }))
	h.user("A", "B")
	h.tracker.GoToPrevious()
	h.SetActive("")

	if !slices.Equal(recorded, refs("A", "B")) {
		t.Errorf("recorded = %v, want [A B]", recorded)
	}
}

func TestReload(t *testing.T) {
	store := &memStore{}
	h := newHost(t, store)
	h.user("A")
	store.entries = refs("A", "B")
	h.live["B"] = true

	h.tracker.Reload()

	assertEntries(t, h.tracker, "A", "B")
}
