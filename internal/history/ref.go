package history

import "github.com/google/uuid"

// Ref is an opaque reference to a host object. Two refs are the same object
// when they are equal. The zero Ref is the null reference.
type Ref string

// NewRef returns a fresh random reference.
func NewRef() Ref {
	return Ref(uuid.NewString())
}

// NameRef returns a reference derived from a namespace and a name. The same
// inputs always produce the same Ref, which lets hosts keep references
// stable across sessions for objects that carry no identifier of their own.
func NameRef(namespace, name string) Ref {
	ns := uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace))
	return Ref(uuid.NewSHA1(ns, []byte(name)).String())
}

// IsZero reports whether r is the null reference.
func (r Ref) IsZero() bool {
	return r == ""
}

// String returns the reference text.
func (r Ref) String() string {
	return string(r)
}

// Short returns the first eight characters of r, for display.
func (r Ref) Short() string {
	if len(r) <= 8 {
		return string(r)
	}
	return string(r[:8])
}
