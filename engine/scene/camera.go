package scene

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

type ProjectionType int

const (
	ProjectionPerspective ProjectionType = iota
	ProjectionOrthographic
)

/**
 * @brief The buffer a render-to-texture camera writes into its target.
 */
type RenderBuffer int

const (
	RenderBufferColor RenderBuffer = iota
	RenderBufferDepth
	RenderBufferStencil
)

// RenderBufferFromString maps COLOR_BUFFER, DEPTH_BUFFER and STENCIL_BUFFER.
func RenderBufferFromString(s string) (RenderBuffer, error) {
	switch s {
	case "COLOR_BUFFER":
		return RenderBufferColor, nil
	case "DEPTH_BUFFER":
		return RenderBufferDepth, nil
	case "STENCIL_BUFFER":
		return RenderBufferStencil, nil
	}
	return RenderBufferColor, fmt.Errorf("unknown renderBuffer '%s', supported types are COLOR_BUFFER, DEPTH_BUFFER, STENCIL_BUFFER: %w", s, core.ErrInvalidAttribute)
}

func (b RenderBuffer) String() string {
	switch b {
	case RenderBufferDepth:
		return "DEPTH_BUFFER"
	case RenderBufferStencil:
		return "STENCIL_BUFFER"
	}
	return "COLOR_BUFFER"
}

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. The view is taken from the
 * world transform of the owning scene object.
 */
type Camera struct {
	componentBase

	Projection ProjectionType
	/** @brief Vertical field of view in degrees. Perspective only. */
	FieldOfView float32
	Aspect      float32
	NearPlane   float32
	FarPlane    float32
	/** @brief Orthographic bounds. */
	Left, Right, Bottom, Top float32

	/** @brief Set when the camera writes into Target instead of the framebuffer. */
	RenderToTexture bool
	Target          resources.TextureID
	RenderBuffer    RenderBuffer

	ClearColor math.Vec4

	/** @brief Internal flag used to determine when the projection matrix needs to be rebuilt. */
	isDirty    bool
	projection math.Mat4
}

// NewCamera creates a perspective camera from the configured defaults.
func NewCamera(defaults core.CameraConfig) *Camera {
	c := &Camera{
		ClearColor: math.NewVec4(0, 0, 0, 1),
	}
	c.Left, c.Right, c.Bottom, c.Top = defaults.Left, defaults.Right, defaults.Bottom, defaults.Top
	c.SetPerspective(defaults.FieldOfView, defaults.Aspect, defaults.NearPlane, defaults.FarPlane)
	return c
}

func (c *Camera) Type() ComponentType { return ComponentTypeCamera }

// SetPerspective configures a perspective projection; fieldOfView is in degrees.
func (c *Camera) SetPerspective(fieldOfView, aspect, nearPlane, farPlane float32) {
	c.Projection = ProjectionPerspective
	c.FieldOfView = fieldOfView
	c.Aspect = aspect
	c.NearPlane = nearPlane
	c.FarPlane = farPlane
	c.isDirty = true
}

func (c *Camera) SetOrthographic(left, right, bottom, top, nearPlane, farPlane float32) {
	c.Projection = ProjectionOrthographic
	c.Left, c.Right, c.Bottom, c.Top = left, right, bottom, top
	c.NearPlane = nearPlane
	c.FarPlane = farPlane
	c.isDirty = true
}

func (c *Camera) SetRenderToTexture(buffer RenderBuffer, target resources.TextureID) {
	c.RenderToTexture = true
	c.RenderBuffer = buffer
	c.Target = target
}

func (c *Camera) GetProjection() math.Mat4 {
	if c.isDirty {
		if c.Projection == ProjectionOrthographic {
			c.projection = math.NewMat4Orthographic(c.Left, c.Right, c.Bottom, c.Top, c.NearPlane, c.FarPlane)
		} else {
			c.projection = math.NewMat4Perspective(math.DegToRad(c.FieldOfView), c.Aspect, c.NearPlane, c.FarPlane)
		}
		c.isDirty = false
	}
	return c.projection
}

// GetView is the inverse of the owner's world transform. A detached
// camera looks down the default axis from the origin.
func (c *Camera) GetView() math.Mat4 {
	if c.owner == nil {
		return math.NewMat4Identity()
	}
	view, ok := c.owner.Transform.GetWorld().Inverse()
	if !ok {
		core.LogWarn("camera on '%s' has a singular transform", c.owner.Name)
	}
	return view
}
