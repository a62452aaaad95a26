package scene

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

/**
 * @brief The object collection produced by the loader, in registration
 * order, with a name index. If several objects share a name the first
 * one registered is the one found by name.
 */
type Scene struct {
	objects []*SceneObject
	lookup  map[string]*SceneObject
	ids     map[core.ObjectID]*SceneObject
}

func NewScene() *Scene {
	return &Scene{
		lookup: make(map[string]*SceneObject),
		ids:    make(map[core.ObjectID]*SceneObject),
	}
}

// AddSceneObject registers obj. Every object is registered exactly once.
func (s *Scene) AddSceneObject(obj *SceneObject) error {
	if obj == nil {
		return fmt.Errorf("cannot add nil scene object: %w", core.ErrInvalidAttribute)
	}
	if _, ok := s.ids[obj.ID]; ok {
		return fmt.Errorf("scene object '%s' already registered: %w", obj.Name, core.ErrDuplicate)
	}
	s.ids[obj.ID] = obj
	s.objects = append(s.objects, obj)
	if obj.Name == "" {
		return nil
	}
	if _, ok := s.lookup[obj.Name]; !ok {
		s.lookup[obj.Name] = obj
	}
	return nil
}

// Find returns the object registered under name, or nil.
func (s *Scene) Find(name string) *SceneObject {
	return s.lookup[name]
}

func (s *Scene) FindByID(id core.ObjectID) *SceneObject {
	return s.ids[id]
}

func (s *Scene) Objects() []*SceneObject {
	return s.objects
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Roots returns the objects without a parent, in registration order.
func (s *Scene) Roots() []*SceneObject {
	var roots []*SceneObject
	for _, o := range s.objects {
		if o.parent == nil {
			roots = append(roots, o)
		}
	}
	return roots
}

// Walk visits every object depth first, starting at the roots. Returning
// false from fn skips the children of that object.
func (s *Scene) Walk(fn func(obj *SceneObject, depth int) bool) {
	var visit func(o *SceneObject, depth int)
	visit = func(o *SceneObject, depth int) {
		if !fn(o, depth) {
			return
		}
		for _, c := range o.children {
			visit(c, depth+1)
		}
	}
	for _, r := range s.Roots() {
		visit(r, 0)
	}
}

// FindCamera returns the id of the named object if it carries a camera.
func (s *Scene) FindCamera(name string) (core.ObjectID, bool) {
	o := s.Find(name)
	if o == nil || o.Camera() == nil {
		return core.NilObjectID, false
	}
	return o.ID, true
}

func (s *Scene) Cameras() []*SceneObject {
	var cameras []*SceneObject
	for _, o := range s.objects {
		if o.Camera() != nil {
			cameras = append(cameras, o)
		}
	}
	return cameras
}

/**
 * @brief Resolves every by-name camera reference held by the material
 * instances of the scene. Unresolved references stay in place and are
 * reported, one error per material.
 */
func (s *Scene) BindMaterials() error {
	var errs []error
	for _, o := range s.objects {
		for _, c := range o.components {
			mc, ok := c.(*MaterialComponent)
			if !ok || mc.Material == nil {
				continue
			}
			if err := mc.Material.ResolveCameraRefs(s); err != nil {
				errs = append(errs, fmt.Errorf("object '%s': %w", o.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}
