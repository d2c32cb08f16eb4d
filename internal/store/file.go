package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/selnav/internal/history"
)

// FileStore is a history.Store backed by one file.
type FileStore struct {
	path  string
	codec codec
	perm  os.FileMode
}

var _ history.Store = (*FileStore)(nil)

// Option configures a FileStore.
type Option func(*FileStore)

// WithPerm sets the permissions of files the store creates.
func WithPerm(perm os.FileMode) Option {
	return func(s *FileStore) {
		if perm != 0 {
			s.perm = perm
		}
	}
}

// NewFileStore returns a store for path. The format follows the extension:
// ".toml" (or none) for TOML, ".yaml" or ".yml" for YAML.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: path is required")
	}
	c, err := codecFor(path)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	s := &FileStore{
		path:  path,
		codec: c,
		perm:  0o600,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the history. A missing file is created empty.
func (s *FileStore) Load() ([]history.Ref, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.Save(nil); err != nil {
			return nil, &Error{Op: "create", Path: s.path, Err: errors.Unwrap(err)}
		}
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Op: "load", Path: s.path, Err: err}
	}

	var doc document
	if err := s.codec.unmarshal(data, &doc); err != nil {
		return nil, &Error{Op: "load", Path: s.path, Err: err}
	}
	if doc.Version > FormatVersion {
		return nil, &Error{Op: "load", Path: s.path, Err: fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)}
	}

	refs := make([]history.Ref, 0, len(doc.Selections))
	for _, sel := range doc.Selections {
		if sel = strings.TrimSpace(sel); sel != "" {
			refs = append(refs, history.Ref(sel))
		}
	}
	return refs, nil
}

// Save replaces the file with entries.
func (s *FileStore) Save(entries []history.Ref) error {
	doc := document{
		Version:    FormatVersion,
		Selections: make([]string, len(entries)),
	}
	for i, ref := range entries {
		doc.Selections[i] = ref.String()
	}
	data, err := s.codec.marshal(doc)
	if err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	if err := writeAtomic(s.path, data, s.perm); err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// writeAtomic writes data to a temp file beside path and renames it over
// path, so readers never see a partial document.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = os.Remove(name)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	ok = true
	return nil
}
