package material

import (
	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

/**
 * @brief Determines which member of a ShaderParameter value is valid.
 */
type ParameterKind int

const (
	ParameterKindFloat ParameterKind = iota
	ParameterKindVector2
	ParameterKindVector3
	ParameterKindVector4
	ParameterKindInt
	ParameterKindTexture
	/** @brief A camera reference resolved to a live scene object. */
	ParameterKindShadowCameraRef
	/** @brief A camera reference waiting for the binding pass. */
	ParameterKindShadowCameraRefByName
)

func (k ParameterKind) String() string {
	switch k {
	case ParameterKindFloat:
		return "float"
	case ParameterKindVector2:
		return "vector2"
	case ParameterKindVector3:
		return "vector3"
	case ParameterKindVector4:
		return "vector4"
	case ParameterKindInt:
		return "int"
	case ParameterKindTexture:
		return "texture"
	case ParameterKindShadowCameraRef:
		return "cameraRef"
	case ParameterKindShadowCameraRefByName:
		return "cameraRef(unresolved)"
	}
	return "unknown"
}

/**
 * @brief The value of a shader parameter. Only the member selected by the
 * owning parameter's Kind is meaningful.
 */
type ParameterValue struct {
	/** @brief Float and vector components. Unused components are zero. */
	Floats [4]float32
	/** @brief Integer value plus an auxiliary integer. */
	Ints [2]int32
	/** @brief Handle into the renderer's texture table. */
	Texture resources.TextureID
	/** @brief The resolved camera object. */
	Camera core.ObjectID
	/** @brief The camera object name, kept until the binding pass runs. */
	CameraName string
}

/**
 * @brief A typed name to value binding, bound to a shader uniform slot.
 */
type ShaderParameter struct {
	Name string
	/** @brief The shader uniform slot the parameter is bound to. */
	ID    uint16
	Kind  ParameterKind
	Value ParameterValue
}

// Vector returns the first n float components.
func (p ShaderParameter) Vector(n int) []float32 {
	if n > len(p.Value.Floats) {
		n = len(p.Value.Floats)
	}
	out := make([]float32, n)
	copy(out, p.Value.Floats[:n])
	return out
}
