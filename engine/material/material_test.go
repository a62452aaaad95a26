package material

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

func newShader() *resources.Shader {
	s := resources.NewShader("phong", "phong.glsl")
	s.AddUniform("tint", resources.ShaderUniformTypeFloat32_4)
	s.AddUniform("x", resources.ShaderUniformTypeFloat32)
	s.AddUniform("offset", resources.ShaderUniformTypeFloat32_2)
	s.AddUniform("lightDir", resources.ShaderUniformTypeFloat32_3)
	s.AddUniform("mode", resources.ShaderUniformTypeInt32)
	s.AddUniform("albedo", resources.ShaderUniformTypeSampler)
	s.AddUniform("shadow", resources.ShaderUniformTypeCustom)
	return s
}

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	m.Run()
}

func TestSetUnknownNameFails(t *testing.T) {
	m := NewMaterial(newShader(), "mat")
	require.True(t, m.SetFloat("x", 1))

	before := append([]ShaderParameter(nil), m.Parameters...)
	assert.False(t, m.SetFloat("nope", 2))
	assert.False(t, m.SetVector2("nope", math.NewVec2(1, 2)))
	assert.False(t, m.SetVector3("nope", math.NewVec3(1, 2, 3)))
	assert.False(t, m.SetVector4("nope", math.NewVec4(1, 2, 3, 4)))
	assert.False(t, m.SetInt("nope", 1))
	assert.False(t, m.SetTexture("nope", 3))
	assert.False(t, m.SetShadowSetup("nope", "cam"))
	assert.Equal(t, before, m.Parameters)
	assert.Empty(t, m.Textures)
}

func TestSetWithoutShaderFails(t *testing.T) {
	m := NewMaterial(nil, "bare")
	assert.False(t, m.SetFloat("x", 1))
	assert.Empty(t, m.Parameters)
}

func TestSetSameNameOverwritesInPlace(t *testing.T) {
	m := NewMaterial(newShader(), "mat")
	require.True(t, m.SetFloat("x", 1))
	require.True(t, m.SetVector4("tint", math.NewVec4(1, 0, 0, 1)))
	require.True(t, m.SetInt("mode", 2))

	require.True(t, m.SetVector4("x", math.NewVec4(0.5, 0.5, 0.5, 1)))
	require.Len(t, m.Parameters, 3)
	assert.Equal(t, "x", m.Parameters[0].Name)
	assert.Equal(t, ParameterKindVector4, m.Parameters[0].Kind)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, m.Parameters[0].Value.Floats)
	assert.Equal(t, "tint", m.Parameters[1].Name)
	assert.Equal(t, "mode", m.Parameters[2].Name)
}

func TestSetterKinds(t *testing.T) {
	shader := newShader()
	m := NewMaterial(shader, "mat")
	m.SetVector2("offset", math.NewVec2(1, 2))
	m.SetVector3("lightDir", math.NewVec3(0, -1, 0))
	m.SetInt("mode", 7)
	m.SetTexture("albedo", 4)
	m.SetTexture("albedo", 4)
	m.SetShadowSetup("shadow", "sun")

	tests := []struct {
		name string
		kind ParameterKind
	}{
		{"offset", ParameterKindVector2},
		{"lightDir", ParameterKindVector3},
		{"mode", ParameterKindInt},
		{"albedo", ParameterKindTexture},
		{"shadow", ParameterKindShadowCameraRefByName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := m.Parameter(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.kind, p.Kind)
			u, _ := shader.GetUniform(tt.name)
			assert.Equal(t, u.Location, p.ID)
		})
	}

	p, _ := m.Parameter("offset")
	assert.Equal(t, []float32{1, 2}, p.Vector(2))
	p, _ = m.Parameter("mode")
	assert.Equal(t, int32(7), p.Value.Ints[0])
	p, _ = m.Parameter("shadow")
	assert.Equal(t, "sun", p.Value.CameraName)
	assert.Equal(t, []resources.TextureID{4}, m.Textures)
	assert.True(t, m.Unresolved())
}

func TestInstanceIsIndependent(t *testing.T) {
	shader := newShader()
	m := NewMaterial(shader, "mat")
	require.True(t, m.SetFloat("x", 1))
	require.True(t, m.SetTexture("albedo", 2))

	clone := m.Instance()
	require.NotNil(t, clone)
	assert.Same(t, shader, clone.Shader())
	assert.Equal(t, m.Parameters, clone.Parameters)

	require.True(t, clone.SetFloat("x", 42))
	clone.Textures[0] = 9
	require.True(t, clone.SetVector4("tint", math.NewVec4(1, 1, 1, 1)))

	p, _ := m.Parameter("x")
	assert.Equal(t, float32(1), p.Value.Floats[0])
	assert.Equal(t, []resources.TextureID{2}, m.Textures)
	assert.Len(t, m.Parameters, 2)
	assert.Len(t, clone.Parameters, 3)
}

type cameras map[string]core.ObjectID

func (c cameras) FindCamera(name string) (core.ObjectID, bool) {
	id, ok := c[name]
	return id, ok
}

func TestResolveCameraRefs(t *testing.T) {
	m := NewMaterial(newShader(), "shadowed")
	require.True(t, m.SetShadowSetup("shadow", "sun"))

	err := m.ResolveCameraRefs(cameras{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnresolved))
	assert.True(t, m.Unresolved())

	sun := core.NewObjectID()
	require.NoError(t, m.ResolveCameraRefs(cameras{"sun": sun}))
	p, _ := m.Parameter("shadow")
	assert.Equal(t, ParameterKindShadowCameraRef, p.Kind)
	assert.Equal(t, sun, p.Value.Camera)
	assert.False(t, m.Unresolved())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	shader := newShader()
	a := NewMaterial(shader, "a")
	require.True(t, a.SetFloat("x", 3))
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(NewMaterial(shader, "b")))
	assert.Error(t, r.Register(nil))

	assert.Equal(t, []string{"a", "b"}, r.Names())
	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	inst, err := r.Instance("a")
	require.NoError(t, err)
	assert.NotSame(t, a, inst)
	inst.SetFloat("x", 0)
	p, _ := a.Parameter("x")
	assert.Equal(t, float32(3), p.Value.Floats[0])

	_, err = r.Instance("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	replacement := NewMaterial(shader, "a")
	require.NoError(t, r.Register(replacement))
	assert.Equal(t, 2, r.Len())
	got, _ = r.Get("a")
	assert.Same(t, replacement, got)
}
