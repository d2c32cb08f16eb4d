package store

import (
	"slices"

	"github.com/dshills/selnav/internal/history"
)

// MemoryStore is a history.Store that lives only as long as the process.
type MemoryStore struct {
	entries []history.Ref
}

var _ history.Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store preloaded with entries.
func NewMemoryStore(entries ...history.Ref) *MemoryStore {
	return &MemoryStore{entries: slices.Clone(entries)}
}

// Load returns a copy of the stored entries.
func (m *MemoryStore) Load() ([]history.Ref, error) {
	return slices.Clone(m.entries), nil
}

// Save replaces the stored entries.
func (m *MemoryStore) Save(entries []history.Ref) error {
	m.entries = slices.Clone(entries)
	return nil
}
