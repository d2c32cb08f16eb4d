// Package store persists the selection history between sessions.
//
// FileStore keeps the list in a single TOML or YAML document chosen by file
// extension. A missing file is created on first load so later saves have
// somewhere to go. Writes replace the file atomically.
//
// MemoryStore keeps the list in memory for tests and throwaway sessions.
package store
