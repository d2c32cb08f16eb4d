package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/selnav/internal/history"
)

const sceneDoc = `
name: Level1
objects:
  - name: Player
    kind: Prefab
  - id: 3f1c2b9e-0000-4000-8000-000000000001
    name: Camera
  - name: Light
`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(sceneDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.Name() != "Level1" || s.Len() != 3 {
		t.Fatalf("got name=%q len=%d", s.Name(), s.Len())
	}
	if got := s.At(1).Ref; got != "3f1c2b9e-0000-4000-8000-000000000001" {
		t.Errorf("explicit id = %q", got)
	}
	if s.At(0).Label() != "Player (Prefab)" || s.At(2).Label() != "Light" {
		t.Errorf("labels = %q, %q", s.At(0).Label(), s.At(2).Label())
	}
}

func TestDecodeStableRefs(t *testing.T) {
	a, _ := Decode(strings.NewReader(sceneDoc))
	b, _ := Decode(strings.NewReader(sceneDoc))
	if a.At(0).Ref != b.At(0).Ref {
		t.Error("derived refs differ between loads")
	}
	if a.At(0).Ref == a.At(2).Ref {
		t.Error("different objects share a derived ref")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"duplicate", "name: x\nobjects:\n  - name: a\n  - name: a\n", ErrDuplicateObject},
		{"empty name", "name: x\nobjects:\n  - kind: Light\n", ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	s, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s, _ := Decode(strings.NewReader(sceneDoc))
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	for i := 0; i < s.Len(); i++ {
		if s.At(i).Ref != again.At(i).Ref || s.At(i).Name != again.At(i).Name {
			t.Errorf("object %d: %+v != %+v", i, s.At(i), again.At(i))
		}
	}
}

func TestCreateDelete(t *testing.T) {
	s := New("test")
	o, err := s.Create("Cube", "Mesh")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !s.Has(o.Ref) {
		t.Fatal("created object is not live")
	}
	if _, err := s.Create("  ", ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Create(blank) error = %v", err)
	}

	if err := s.Delete(o.Ref); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s.Has(o.Ref) || s.Len() != 0 || s.IndexOf(o.Ref) != -1 {
		t.Error("deleted object still present")
	}
	if err := s.Delete(o.Ref); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestSpaceReplaceInvalidates(t *testing.T) {
	first := Sample()
	sp := NewSpace(first)
	ref := first.At(0).Ref
	if !sp.Valid(ref) {
		t.Fatal("ref not valid in its own scene")
	}

	old := sp.Replace(New("other"))
	if old != first {
		t.Error("Replace() did not return the previous scene")
	}
	if sp.Valid(ref) {
		t.Error("ref into the old scene still valid")
	}
}

func TestSpaceOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(sceneDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	sp := NewSpace(nil)
	if err := sp.Open(path); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if sp.Current().Path() != path || sp.Current().Name() != "Level1" {
		t.Errorf("current = %q at %q", sp.Current().Name(), sp.Current().Path())
	}
	if !sp.Valid(history.Ref("3f1c2b9e-0000-4000-8000-000000000001")) {
		t.Error("explicit id not valid after Open")
	}
	if err := sp.Open(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Open(missing) should fail")
	}
	if sp.Current().Name() != "Level1" {
		t.Error("failed Open replaced the current scene")
	}
}
