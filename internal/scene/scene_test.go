package scene

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/level"
)

func TestRegistryFindWithTag(t *testing.T) {
	r := NewRegistry()
	cam := &geom.Transform{}
	r.Add(TagMainCamera, cam)

	got, ok := r.FindWithTag(TagMainCamera)
	if !ok || got != cam {
		t.Fatalf("FindWithTag = %v, %v; want registered camera", got, ok)
	}
	if _, ok := r.FindWithTag("Player"); ok {
		t.Fatal("FindWithTag(Player) found a transform")
	}

	other := &geom.Transform{}
	r.Add(TagMainCamera, other)
	if got, _ := r.FindWithTag(TagMainCamera); got != other {
		t.Fatal("Add should replace the transform under an existing tag")
	}
}

func TestRegistryNilTransformIsMissing(t *testing.T) {
	r := NewRegistry()
	r.Add(TagMainCamera, nil)
	if _, ok := r.FindWithTag(TagMainCamera); ok {
		t.Fatal("nil transform reported as found")
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if _, ok := r.FindWithTag(TagMainCamera); ok {
		t.Fatal("nil registry reported a transform")
	}
}

func TestAddLevel(t *testing.T) {
	player := &geom.Transform{Position: mgl64.Vec3{2, 0, 0}}
	r := NewRegistry()
	r.Add(TagPlayer, player)

	lvl := &level.Level{Tags: map[string]level.Anchor{
		TagMainCamera: {Position: mgl64.Vec3{0, 1.6, 0}, Rotation: geom.Euler{X: 10}, Parent: TagPlayer},
		"Spawn":       {},
	}}
	if err := r.AddLevel(lvl); err != nil {
		t.Fatalf("AddLevel: %v", err)
	}

	if got := r.Tags(); !reflect.DeepEqual(got, []string{"MainCamera", "Player", "Spawn"}) {
		t.Fatalf("Tags() = %v", got)
	}
	cam, ok := r.FindWithTag(TagMainCamera)
	if !ok {
		t.Fatal("camera anchor not registered")
	}
	if cam.Parent != player || cam.Rotation.X != 10 {
		t.Fatalf("camera = %+v", cam)
	}
	if wp := cam.WorldPosition(); wp != (mgl64.Vec3{2, 1.6, 0}) {
		t.Fatalf("camera world position = %v", wp)
	}
}

func TestAddLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]level.Anchor
	}{
		{"unknown parent", map[string]level.Anchor{"A": {Parent: "Nobody"}}},
		{"self parent", map[string]level.Anchor{"A": {Parent: "A"}}},
		{"cycle", map[string]level.Anchor{"A": {Parent: "B"}, "B": {Parent: "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.AddLevel(&level.Level{Tags: tt.tags}); err == nil {
				t.Fatal("AddLevel error = nil, want error")
			}
			if len(r.Tags()) != 0 {
				t.Fatalf("registry changed on error: %v", r.Tags())
			}
		})
	}
	if err := NewRegistry().AddLevel(nil); err != nil {
		t.Fatalf("AddLevel(nil) = %v", err)
	}
}
