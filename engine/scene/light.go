package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
)

type LightType int

const (
	LightTypePoint LightType = iota
	LightTypeSpot
	LightTypeDirectional
)

func LightTypeFromString(s string) (LightType, error) {
	switch s {
	case "point":
		return LightTypePoint, nil
	case "spot":
		return LightTypeSpot, nil
	case "directional":
		return LightTypeDirectional, nil
	}
	return LightTypePoint, fmt.Errorf("unknown light type '%s': %w", s, core.ErrInvalidAttribute)
}

func (l LightType) String() string {
	switch l {
	case LightTypeSpot:
		return "spot"
	case LightTypeDirectional:
		return "directional"
	}
	return "point"
}

/**
 * @brief A light source. Position and direction of point and directional
 * lights come from the owning object's transform.
 */
type Light struct {
	componentBase

	Name      string
	LightType LightType

	Ambient  math.Vec4
	Diffuse  math.Vec4
	Specular math.Vec4

	ConstantAttenuation  float32
	LinearAttenuation    float32
	QuadraticAttenuation float32

	/** @brief Spot lights only. */
	SpotDirection math.Vec3
	/** @brief Spot cutoff angle in degrees. */
	SpotCutoff int32
}

func NewLight() *Light {
	return &Light{
		LightType:           LightTypePoint,
		Ambient:             math.NewVec4(0, 0, 0, 1),
		Diffuse:             math.NewVec4(1, 1, 1, 1),
		Specular:            math.NewVec4(1, 1, 1, 1),
		ConstantAttenuation: 1,
		SpotDirection:       math.NewVec3(0, 0, -1),
		SpotCutoff:          180,
	}
}

func (l *Light) Type() ComponentType { return ComponentTypeLight }
