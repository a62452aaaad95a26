package scene

import (
	"github.com/spaghettifunk/anima-scene/engine/geometry"
	"github.com/spaghettifunk/anima-scene/engine/material"
)

type ComponentType int

const (
	ComponentTypeCamera ComponentType = iota
	ComponentTypeLight
	ComponentTypeMesh
	ComponentTypeMaterial
)

func (c ComponentType) String() string {
	switch c {
	case ComponentTypeCamera:
		return "camera"
	case ComponentTypeLight:
		return "light"
	case ComponentTypeMesh:
		return "mesh"
	case ComponentTypeMaterial:
		return "material"
	}
	return "unknown"
}

/**
 * @brief Something that can be attached to a scene object. A component
 * belongs to at most one object.
 */
type Component interface {
	Type() ComponentType
	Owner() *SceneObject
	setOwner(owner *SceneObject)
}

type componentBase struct {
	owner *SceneObject
}

func (c *componentBase) Owner() *SceneObject { return c.owner }

func (c *componentBase) setOwner(owner *SceneObject) { c.owner = owner }

// MeshComponent attaches geometry to an object. The mesh is owned by the component.
type MeshComponent struct {
	componentBase
	Mesh *geometry.Mesh
}

func NewMeshComponent(mesh *geometry.Mesh) *MeshComponent {
	return &MeshComponent{Mesh: mesh}
}

func (m *MeshComponent) Type() ComponentType { return ComponentTypeMesh }

// MaterialComponent attaches a material instance to an object.
type MaterialComponent struct {
	componentBase
	Material *material.Material
}

func NewMaterialComponent(m *material.Material) *MaterialComponent {
	return &MaterialComponent{Material: m}
}

func (m *MaterialComponent) Type() ComponentType { return ComponentTypeMaterial }
