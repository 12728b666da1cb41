// Package scene keeps the tagged transforms a host exposes for lookup.
package scene

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Versifine/fpsctl/internal/geom"
	"github.com/Versifine/fpsctl/internal/level"
)

const (
	TagMainCamera = "MainCamera"
	TagPlayer     = "Player"
)

type Registry struct {
	mu   sync.RWMutex
	tags map[string]*geom.Transform
}

func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]*geom.Transform)}
}

// Add replaces any transform already registered under tag.
func (r *Registry) Add(tag string, t *geom.Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[tag] = t
}

func (r *Registry) FindWithTag(tag string) (*geom.Transform, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tags[tag]
	return t, ok && t != nil
}

// AddLevel registers a transform for every anchor in lvl. Parents are
// resolved against transforms already registered or anchors of the same
// level.
func (r *Registry) AddLevel(lvl *level.Level) error {
	if lvl == nil {
		return nil
	}
	created := make(map[string]*geom.Transform, len(lvl.Tags))
	for tag, anchor := range lvl.Tags {
		created[tag] = &geom.Transform{Position: anchor.Position, Rotation: anchor.Rotation}
	}
	for tag, anchor := range lvl.Tags {
		if anchor.Parent == "" {
			continue
		}
		parent, ok := created[anchor.Parent]
		if !ok {
			parent, ok = r.FindWithTag(anchor.Parent)
		}
		if !ok {
			return fmt.Errorf("anchor %q: parent %q not found", tag, anchor.Parent)
		}
		if parent == created[tag] || parent.IsChildOf(created[tag]) {
			return fmt.Errorf("anchor %q: parent %q forms a cycle", tag, anchor.Parent)
		}
		created[tag].Parent = parent
	}
	for tag, t := range created {
		r.Add(tag, t)
	}
	return nil
}

func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
