package history

// Store loads and saves the history list across sessions.
type Store interface {
	Load() ([]Ref, error)
	Save(entries []Ref) error
}

// Resolver reports whether a reference still points at a live object.
type Resolver interface {
	Valid(ref Ref) bool
}

// Selector sets the host's active selection. Implementations must
// synchronously deliver the matching selection change back to the tracker.
type Selector interface {
	SetActive(ref Ref)
}

// Logger receives diagnostics the tracker would otherwise drop.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ref Ref) bool

// Valid calls f(ref).
func (f ResolverFunc) Valid(ref Ref) bool { return f(ref) }

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(ref Ref)

// SetActive calls f(ref).
func (f SelectorFunc) SetActive(ref Ref) { f(ref) }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
