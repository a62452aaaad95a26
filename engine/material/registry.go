package material

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

// Registry holds the authored materials of a scene by name. Scene objects
// never receive these directly, only instances of them.
type Registry struct {
	lookup    map[string]int
	materials []*Material
}

func NewRegistry() *Registry {
	return &Registry{
		lookup: make(map[string]int),
	}
}

// Register adds m under its name. A later material with the same name
// replaces the earlier one.
func (r *Registry) Register(m *Material) error {
	if m == nil {
		return fmt.Errorf("cannot register nil material: %w", core.ErrInvalidAttribute)
	}
	if i, ok := r.lookup[m.Name]; ok {
		core.LogWarn("material '%s' redeclared, replacing previous definition", m.Name)
		r.materials[i] = m
		return nil
	}
	r.lookup[m.Name] = len(r.materials)
	r.materials = append(r.materials, m)
	return nil
}

func (r *Registry) Get(name string) (*Material, bool) {
	i, ok := r.lookup[name]
	if !ok {
		return nil, false
	}
	return r.materials[i], true
}

// Instance returns a fresh copy of the material registered under name.
func (r *Registry) Instance(name string) (*Material, error) {
	m, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("material '%s': %w", name, core.ErrNotFound)
	}
	return m.Instance(), nil
}

// Names returns material names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.materials))
	for i, m := range r.materials {
		names[i] = m.Name
	}
	return names
}

func (r *Registry) Len() int {
	return len(r.materials)
}
