package scene

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/geometry"
	"github.com/spaghettifunk/anima-scene/engine/material"
	"github.com/spaghettifunk/anima-scene/engine/math"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	m.Run()
}

func buildScene(t *testing.T, names ...string) *Scene {
	t.Helper()
	s := NewScene()
	for _, n := range names {
		require.NoError(t, s.AddSceneObject(NewSceneObject(n)))
	}
	return s
}

func TestParentDeclaredAfterChild(t *testing.T) {
	// B is declared before its parent A.
	s := buildScene(t, "B", "A")
	links := NewParentLinks()
	links.Record("B", "A")

	errs := links.Resolve(s)
	require.Empty(t, errs)
	a, b := s.Find("A"), s.Find("B")
	assert.Same(t, a, b.Parent())
	assert.Equal(t, []*SceneObject{b}, a.Children())
	assert.Same(t, a.Transform, b.Transform.Parent)
	assert.Equal(t, []*SceneObject{a}, s.Roots())
	assert.Zero(t, links.Len())
}

func TestMissingParentLeavesOrphan(t *testing.T) {
	s := buildScene(t, "child")
	links := NewParentLinks()
	links.Record("child", "ghost")

	require.Empty(t, links.Resolve(s))
	assert.Equal(t, 1, links.Len())

	errs := links.Drain()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], core.ErrUnresolved)
	assert.Contains(t, errs[0].Error(), "ghost")
	assert.Nil(t, s.Find("child").Parent())
	assert.Zero(t, links.Len())
	assert.Empty(t, links.Drain())
}

func TestPendingLinkResolvesOnLaterPass(t *testing.T) {
	s := buildScene(t, "child", "sibling")
	links := NewParentLinks()
	links.Record("child", "late")
	links.Record("sibling", "child")

	require.Empty(t, links.Resolve(s))
	assert.Same(t, s.Find("child"), s.Find("sibling").Parent())
	assert.Equal(t, []ParentLink{{Child: "child", Parent: "late"}}, links.Links())

	require.NoError(t, s.AddSceneObject(NewSceneObject("late")))
	links.Record("other", "late")
	require.Len(t, links.Resolve(s), 1) // "other" was never declared
	assert.Same(t, s.Find("late"), s.Find("child").Parent())
	assert.Zero(t, links.Len())
	assert.Empty(t, links.Drain())
}

func TestMultiLevelChainOutOfOrder(t *testing.T) {
	s := buildScene(t, "grandchild", "child", "root")
	links := NewParentLinks()
	links.Record("grandchild", "child")
	links.Record("child", "root")

	require.Empty(t, links.Resolve(s))
	root, child, grandchild := s.Find("root"), s.Find("child"), s.Find("grandchild")
	assert.True(t, root.IsAncestorOf(grandchild))
	assert.Same(t, child, grandchild.Parent())

	root.Transform.SetPosition(math.NewVec3(0, 10, 0))
	child.Transform.SetPosition(math.NewVec3(1, 0, 0))
	grandchild.Transform.SetPosition(math.NewVec3(0, 0, 2))
	assert.True(t, grandchild.WorldPosition().Compare(math.NewVec3(1, 10, 2), 1e-5))

	var order []string
	s.Walk(func(o *SceneObject, depth int) bool {
		order = append(order, o.Name)
		return true
	})
	assert.Equal(t, []string{"root", "child", "grandchild"}, order)
}

func TestCyclesAreRejected(t *testing.T) {
	s := buildScene(t, "a", "b", "self")
	links := NewParentLinks()
	links.Record("a", "b")
	links.Record("b", "a")
	links.Record("self", "self")

	errs := links.Resolve(s)
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.ErrorIs(t, err, core.ErrCycle)
	}
	assert.Same(t, s.Find("b"), s.Find("a").Parent())
	assert.Nil(t, s.Find("b").Parent())
	assert.Nil(t, s.Find("self").Parent())
}

func TestRecordReplacesParent(t *testing.T) {
	s := buildScene(t, "x", "p1", "p2")
	links := NewParentLinks()
	links.Record("x", "p1")
	links.Record("x", "p2")
	assert.Equal(t, []ParentLink{{Child: "x", Parent: "p2"}}, links.Links())

	require.Empty(t, links.Resolve(s))
	assert.Same(t, s.Find("p2"), s.Find("x").Parent())
}

func TestReparentingMovesChild(t *testing.T) {
	p1, p2, c := NewSceneObject("p1"), NewSceneObject("p2"), NewSceneObject("c")
	require.NoError(t, p1.AddChild(c))
	require.NoError(t, p2.AddChild(c))
	assert.Empty(t, p1.Children())
	assert.Same(t, p2, c.Parent())
	assert.Error(t, p1.AddChild(nil))
}

func TestAddSceneObject(t *testing.T) {
	s := NewScene()
	first := NewSceneObject("dup")
	require.NoError(t, s.AddSceneObject(first))
	assert.ErrorIs(t, s.AddSceneObject(first), core.ErrDuplicate)
	require.NoError(t, s.AddSceneObject(NewSceneObject("dup")))
	assert.Error(t, s.AddSceneObject(nil))

	assert.Equal(t, 2, s.Len())
	assert.Same(t, first, s.Find("dup"))
	assert.Same(t, first, s.FindByID(first.ID))
	assert.Nil(t, s.Find("nothing"))
}

func TestComponents(t *testing.T) {
	o := NewSceneObject("thing")
	cam := NewCamera(core.DefaultCameraConfig())
	mesh := NewMeshComponent(geometry.GenerateCube(1, 1, 1, 1, 1, "cube"))
	require.NoError(t, o.AddComponent(cam))
	require.NoError(t, o.AddComponent(mesh))
	require.NoError(t, o.AddComponent(NewLight()))

	assert.Same(t, cam, o.Camera())
	assert.Same(t, mesh, o.Mesh())
	assert.NotNil(t, o.Light())
	assert.Nil(t, o.Material())
	assert.Same(t, o, cam.Owner())
	assert.Len(t, o.Components(), 3)

	other := NewSceneObject("other")
	assert.ErrorIs(t, other.AddComponent(cam), core.ErrDuplicate)
	assert.Error(t, other.AddComponent(nil))
}

func TestCameraProjection(t *testing.T) {
	cam := NewCamera(core.DefaultCameraConfig())
	assert.Equal(t, ProjectionPerspective, cam.Projection)
	assert.Equal(t, math.NewMat4Perspective(math.DegToRad(40), 1, 0.1, 1000), cam.GetProjection())
	assert.Equal(t, math.NewVec4(0, 0, 0, 1), cam.ClearColor)

	cam.SetOrthographic(-2, 2, -1, 1, 0.1, 10)
	assert.Equal(t, math.NewMat4Orthographic(-2, 2, -1, 1, 0.1, 10), cam.GetProjection())

	o := NewSceneObject("cam")
	o.Transform.SetPosition(math.NewVec3(0, 0, 5))
	require.NoError(t, o.AddComponent(cam))
	p := cam.GetView().TransformPoint(math.NewVec3(0, 0, 5))
	assert.True(t, p.Compare(math.NewVec3Zero(), 1e-5))

	b, err := RenderBufferFromString("DEPTH_BUFFER")
	require.NoError(t, err)
	cam.SetRenderToTexture(b, 3)
	assert.True(t, cam.RenderToTexture)
	assert.Equal(t, resources.TextureID(3), cam.Target)
	_, err = RenderBufferFromString("ACCUM_BUFFER")
	assert.ErrorIs(t, err, core.ErrInvalidAttribute)
}

func TestLightTypeFromString(t *testing.T) {
	for _, name := range []string{"point", "spot", "directional"} {
		lt, err := LightTypeFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, lt.String())
	}
	_, err := LightTypeFromString("area")
	assert.ErrorIs(t, err, core.ErrInvalidAttribute)
}

func TestBindMaterials(t *testing.T) {
	shader := resources.NewShader("shadow", "shadow.glsl")
	shader.AddUniform("shadowCam", resources.ShaderUniformTypeCustom)

	s := NewScene()
	lit := NewSceneObject("lit")
	m := material.NewMaterial(shader, "shadowed")
	require.True(t, m.SetShadowSetup("shadowCam", "sun"))
	require.NoError(t, lit.AddComponent(NewMaterialComponent(m.Instance())))
	require.NoError(t, s.AddSceneObject(lit))

	err := s.BindMaterials()
	assert.ErrorIs(t, err, core.ErrUnresolved)

	sun := NewSceneObject("sun")
	require.NoError(t, sun.AddComponent(NewCamera(core.DefaultCameraConfig())))
	require.NoError(t, s.AddSceneObject(sun))
	require.NoError(t, s.BindMaterials())

	p, ok := lit.Material().Material.Parameter("shadowCam")
	require.True(t, ok)
	assert.Equal(t, material.ParameterKindShadowCameraRef, p.Kind)
	assert.Equal(t, sun.ID, p.Value.Camera)
	assert.Equal(t, []*SceneObject{sun}, s.Cameras())
}
