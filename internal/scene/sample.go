package scene

import "github.com/dshills/selnav/internal/history"

// Sample returns a small scene to browse when no scene file is given.
func Sample() *Scene {
	s := New("SampleScene")
	for _, o := range []struct{ name, kind string }{
		{"Main Camera", "Camera"},
		{"Directional Light", "Light"},
		{"Player", "Prefab"},
		{"Enemy Spawner", "GameObject"},
		{"Terrain", "Terrain"},
		{"UI Canvas", "Canvas"},
		{"EventSystem", "GameObject"},
		{"PlayerController.cs", "Script"},
		{"Grass.mat", "Material"},
	} {
		ref := history.NameRef(s.name, o.name)
		_ = s.add(&Object{Ref: ref, Name: o.name, Kind: o.kind})
	}
	return s
}
