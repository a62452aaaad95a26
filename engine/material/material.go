package material

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

/**
 * @brief A shader plus the parameters bound to it. The shader is shared
 * with the renderer's shader table and never owned by the material.
 */
type Material struct {
	Name string
	/** @brief Parameters in declaration order. */
	Parameters []ShaderParameter
	/** @brief Textures referenced by texture parameters. */
	Textures []resources.TextureID

	shader *resources.Shader
}

func NewMaterial(shader *resources.Shader, name string) *Material {
	return &Material{
		Name:   name,
		shader: shader,
	}
}

func (m *Material) Shader() *resources.Shader {
	return m.shader
}

// Parameter returns the parameter bound under name.
func (m *Material) Parameter(name string) (ShaderParameter, bool) {
	if i := m.indexOf(name); i >= 0 {
		return m.Parameters[i], true
	}
	return ShaderParameter{}, false
}

func (m *Material) indexOf(name string) int {
	for i := range m.Parameters {
		if m.Parameters[i].Name == name {
			return i
		}
	}
	return -1
}

// set binds value under name if the shader declares a uniform with that
// name. An existing entry is overwritten in place.
func (m *Material) set(name string, kind ParameterKind, value ParameterValue) bool {
	uniform, ok := m.shader.GetUniform(name)
	if !ok {
		core.LogDebug("material '%s': shader has no uniform '%s'", m.Name, name)
		return false
	}
	param := ShaderParameter{
		Name:  name,
		ID:    uniform.Location,
		Kind:  kind,
		Value: value,
	}
	if i := m.indexOf(name); i >= 0 {
		m.Parameters[i] = param
		return true
	}
	m.Parameters = append(m.Parameters, param)
	return true
}

func (m *Material) SetVector2(name string, v math.Vec2) bool {
	return m.set(name, ParameterKindVector2, ParameterValue{Floats: v.Elements()})
}

func (m *Material) SetVector3(name string, v math.Vec3) bool {
	return m.set(name, ParameterKindVector3, ParameterValue{Floats: v.Elements()})
}

func (m *Material) SetVector4(name string, v math.Vec4) bool {
	return m.set(name, ParameterKindVector4, ParameterValue{Floats: v.Elements()})
}

func (m *Material) SetFloat(name string, f float32) bool {
	return m.set(name, ParameterKindFloat, ParameterValue{Floats: [4]float32{f}})
}

func (m *Material) SetInt(name string, i int32) bool {
	return m.set(name, ParameterKindInt, ParameterValue{Ints: [2]int32{i, 0}})
}

// SetTexture binds a texture handle and records it for lifetime bookkeeping.
func (m *Material) SetTexture(name string, texture resources.TextureID) bool {
	if !m.set(name, ParameterKindTexture, ParameterValue{Texture: texture}) {
		return false
	}
	for _, t := range m.Textures {
		if t == texture {
			return true
		}
	}
	m.Textures = append(m.Textures, texture)
	return true
}

/**
 * @brief Binds a shadow casting camera by name. The camera may not exist yet,
 * so the reference stays unresolved until ResolveCameraRefs runs.
 */
func (m *Material) SetShadowSetup(name, cameraName string) bool {
	return m.set(name, ParameterKindShadowCameraRefByName, ParameterValue{CameraName: cameraName})
}

/**
 * @brief Creates an independent copy of the material. The shader reference
 * is shared; parameters and textures are deep copied.
 */
func (m *Material) Instance() *Material {
	clone := &Material{}
	if err := copier.CopyWithOption(clone, m, copier.Option{DeepCopy: true}); err != nil {
		core.LogError("failed to instance material '%s': %s", m.Name, err.Error())
		return nil
	}
	clone.shader = m.shader
	return clone
}

// CameraResolver finds live camera objects by name.
type CameraResolver interface {
	FindCamera(name string) (core.ObjectID, bool)
}

/**
 * @brief Converts every by-name camera reference into a resolved one.
 * References that cannot be resolved are left untouched and reported.
 */
func (m *Material) ResolveCameraRefs(resolver CameraResolver) error {
	var missing []string
	for i := range m.Parameters {
		p := &m.Parameters[i]
		if p.Kind != ParameterKindShadowCameraRefByName {
			continue
		}
		id, ok := resolver.FindCamera(p.Value.CameraName)
		if !ok {
			missing = append(missing, p.Value.CameraName)
			continue
		}
		p.Kind = ParameterKindShadowCameraRef
		p.Value.Camera = id
	}
	if len(missing) > 0 {
		return fmt.Errorf("material '%s': camera %v: %w", m.Name, missing, core.ErrUnresolved)
	}
	return nil
}

// Unresolved reports whether a camera reference still waits for binding.
func (m *Material) Unresolved() bool {
	for _, p := range m.Parameters {
		if p.Kind == ParameterKindShadowCameraRefByName {
			return true
		}
	}
	return false
}
