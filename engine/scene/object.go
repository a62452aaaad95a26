package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
)

/**
 * @brief A node of the scene graph: a local transform, an ordered list of
 * components and parent/child links. The transform is always relative
 * to the parent.
 */
type SceneObject struct {
	ID        core.ObjectID
	Name      string
	Transform *math.Transform

	components []Component
	parent     *SceneObject
	children   []*SceneObject
}

func NewSceneObject(name string) *SceneObject {
	return &SceneObject{
		ID:        core.NewObjectID(),
		Name:      name,
		Transform: math.TransformCreate(),
	}
}

// AddComponent attaches c. A component already attached elsewhere is rejected.
func (o *SceneObject) AddComponent(c Component) error {
	if c == nil {
		return fmt.Errorf("object '%s': nil component: %w", o.Name, core.ErrInvalidAttribute)
	}
	if owner := c.Owner(); owner != nil {
		return fmt.Errorf("object '%s': %s component already attached to '%s': %w", o.Name, c.Type(), owner.Name, core.ErrDuplicate)
	}
	c.setOwner(o)
	o.components = append(o.components, c)
	return nil
}

func (o *SceneObject) Components() []Component {
	return o.components
}

// ComponentOf returns the first component of type T attached to o.
func ComponentOf[T Component](o *SceneObject) (T, bool) {
	for _, c := range o.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func (o *SceneObject) Camera() *Camera {
	c, _ := ComponentOf[*Camera](o)
	return c
}

func (o *SceneObject) Light() *Light {
	l, _ := ComponentOf[*Light](o)
	return l
}

func (o *SceneObject) Mesh() *MeshComponent {
	m, _ := ComponentOf[*MeshComponent](o)
	return m
}

func (o *SceneObject) Material() *MaterialComponent {
	m, _ := ComponentOf[*MaterialComponent](o)
	return m
}

func (o *SceneObject) Parent() *SceneObject {
	return o.parent
}

func (o *SceneObject) Children() []*SceneObject {
	return o.children
}

// IsAncestorOf reports whether o is above other in the hierarchy.
func (o *SceneObject) IsAncestorOf(other *SceneObject) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == o {
			return true
		}
	}
	return false
}

/**
 * @brief Attaches child under o, detaching it from any previous parent.
 * The child's transform stays local, now relative to o.
 *
 * @return ErrCycle if child is o or one of o's ancestors.
 */
func (o *SceneObject) AddChild(child *SceneObject) error {
	if child == nil {
		return fmt.Errorf("object '%s': nil child: %w", o.Name, core.ErrInvalidAttribute)
	}
	if child == o || child.IsAncestorOf(o) {
		return fmt.Errorf("cannot parent '%s' to '%s': %w", child.Name, o.Name, core.ErrCycle)
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = o
	child.Transform.Parent = o.Transform
	o.children = append(o.children, child)
	return nil
}

// RemoveChild detaches child; it becomes a root again.
func (o *SceneObject) RemoveChild(child *SceneObject) bool {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			child.Transform.Parent = nil
			return true
		}
	}
	return false
}

// WorldPosition is the origin of o in world space.
func (o *SceneObject) WorldPosition() math.Vec3 {
	return o.Transform.GetWorld().TransformPoint(math.NewVec3Zero())
}
