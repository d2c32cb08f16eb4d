// Package scene holds the live objects a user can select.
//
// A Scene is one document's worth of objects. A Space holds the scene that
// is currently open and answers whether a history reference still points at
// a live object; swapping scenes invalidates every reference into the old
// one.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/selnav/internal/history"
)

// Scene errors.
var (
	ErrDuplicateObject = errors.New("duplicate object")
	ErrObjectNotFound  = errors.New("object not found")
	ErrEmptyName       = errors.New("object name is required")
)

// Object is a selectable thing in a scene.
type Object struct {
	Ref  history.Ref
	Name string
	Kind string
}

// Label returns the display text for the object.
func (o *Object) Label() string {
	if o.Kind == "" {
		return o.Name
	}
	return o.Name + " (" + o.Kind + ")"
}

// Scene is an ordered set of live objects.
type Scene struct {
	name    string
	path    string
	objects []*Object
	index   map[history.Ref]*Object
}

// fileObject is the on-disk form of an object.
type fileObject struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
}

// fileScene is the on-disk form of a scene.
type fileScene struct {
	Name    string       `yaml:"name"`
	Objects []fileObject `yaml:"objects"`
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{
		name:  name,
		index: make(map[history.Ref]*Object),
	}
}

// Load reads a scene from a YAML file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Decode reads a scene document. Objects without an id get one derived from
// the scene and object names, so the same file yields the same references
// every time it is loaded.
func Decode(r io.Reader) (*Scene, error) {
	var doc fileScene
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := New(strings.TrimSpace(doc.Name))
	for i, fo := range doc.Objects {
		name := strings.TrimSpace(fo.Name)
		if name == "" {
			return nil, fmt.Errorf("object %d: %w", i, ErrEmptyName)
		}
		ref := history.Ref(strings.TrimSpace(fo.ID))
		if ref.IsZero() {
			ref = history.NameRef(s.name, name)
		}
		if err := s.add(&Object{Ref: ref, Name: name, Kind: strings.TrimSpace(fo.Kind)}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Encode writes the scene as a YAML document with explicit ids.
func (s *Scene) Encode(w io.Writer) error {
	doc := fileScene{Name: s.name, Objects: make([]fileObject, len(s.objects))}
	for i, o := range s.objects {
		doc.Objects[i] = fileObject{ID: o.Ref.String(), Name: o.Name, Kind: o.Kind}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Scene) add(o *Object) error {
	if _, ok := s.index[o.Ref]; ok {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicateObject, o.Name, o.Ref)
	}
	s.objects = append(s.objects, o)
	s.index[o.Ref] = o
	return nil
}

// Name returns the scene name.
func (s *Scene) Name() string {
	return s.name
}

// Path returns the file the scene was loaded from, if any.
func (s *Scene) Path() string {
	return s.path
}

// Len returns the number of live objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns the live objects in scene order.
func (s *Scene) Objects() []*Object {
	return slices.Clone(s.objects)
}

// At returns the i-th object, or nil when i is out of range.
func (s *Scene) At(i int) *Object {
	if i < 0 || i >= len(s.objects) {
		return nil
	}
	return s.objects[i]
}

// IndexOf returns the position of ref, or -1.
func (s *Scene) IndexOf(ref history.Ref) int {
	return slices.IndexFunc(s.objects, func(o *Object) bool { return o.Ref == ref })
}

// Lookup returns the object for ref.
func (s *Scene) Lookup(ref history.Ref) (*Object, bool) {
	o, ok := s.index[ref]
	return o, ok
}

// Has reports whether ref names a live object.
func (s *Scene) Has(ref history.Ref) bool {
	_, ok := s.index[ref]
	return ok
}

// Create adds a new object with a random reference.
func (s *Scene) Create(name, kind string) (*Object, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	o := &Object{Ref: history.NewRef(), Name: name, Kind: kind}
	if err := s.add(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete destroys the object. References to it dangle from now on.
func (s *Scene) Delete(ref history.Ref) error {
	if _, ok := s.index[ref]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, ref)
	}
	delete(s.index, ref)
	i := s.IndexOf(ref)
	s.objects = slices.Delete(s.objects, i, i+1)
	return nil
}
