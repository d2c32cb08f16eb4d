package scene

import "github.com/dshills/selnav/internal/history"

// Space is the addressable object space: whichever scene is open.
type Space struct {
	current *Scene
}

var _ history.Resolver = (*Space)(nil)

// NewSpace returns a space with s open. A nil scene opens an empty one.
func NewSpace(s *Scene) *Space {
	if s == nil {
		s = New("untitled")
	}
	return &Space{current: s}
}

// Current returns the open scene.
func (sp *Space) Current() *Scene {
	return sp.current
}

// Replace opens s in place of the current scene and returns the old one.
func (sp *Space) Replace(s *Scene) *Scene {
	if s == nil {
		s = New("untitled")
	}
	old := sp.current
	sp.current = s
	return old
}

// Open loads the scene file at path and makes it current.
func (sp *Space) Open(path string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	sp.Replace(s)
	return nil
}

// Valid reports whether ref points at a live object in the open scene.
func (sp *Space) Valid(ref history.Ref) bool {
	return sp.current.Has(ref)
}

// Lookup finds ref in the open scene.
func (sp *Space) Lookup(ref history.Ref) (*Object, bool) {
	return sp.current.Lookup(ref)
}
