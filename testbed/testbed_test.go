package testbed

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/geometry"
	"github.com/spaghettifunk/anima-scene/engine/loader"
	"github.com/spaghettifunk/anima-scene/engine/material"
	"github.com/spaghettifunk/anima-scene/engine/renderer"
	"github.com/spaghettifunk/anima-scene/engine/renderer/headless"
	"github.com/spaghettifunk/anima-scene/engine/resources"
	"github.com/spaghettifunk/anima-scene/engine/scene"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	m.Run()
}

func TestDemoSceneLoadsCleanly(t *testing.T) {
	fsys := Assets()
	r := renderer.New(headless.New(), fsys)
	l := loader.New(r, geometry.NewOBJImporter(fsys))

	res, err := l.LoadFS(fsys, DemoScene)
	require.NoError(t, err)
	for _, d := range res.Diagnostics {
		t.Errorf("unexpected diagnostic: %s", d)
	}

	assert.NotNil(t, r.GetShader("phong"))
	assert.NotNil(t, r.GetShader("skybox"))
	assert.Equal(t, resources.TextureTypeCube, r.GetTexture("sky").TextureType)
	assert.Equal(t, resources.TextureTypeRenderTarget, r.GetTexture("shadowMap").TextureType)
	assert.Equal(t, 3, res.Materials.Len())

	assert.Equal(t, 9, res.Scene.Len())
	roots := res.Scene.Roots()
	names := make([]string, 0, len(roots))
	for _, o := range roots {
		names = append(names, o.Name)
	}
	assert.ElementsMatch(t, []string{"pivot", "floor", "pyramid", "skybox", "camera", "sun"}, names)

	moon := res.Scene.Find("moon")
	require.NotNil(t, moon)
	assert.Equal(t, "planet", moon.Parent().Name)
	assert.Equal(t, "pivot", moon.Parent().Parent().Name)

	pyramid := res.Scene.Find("pyramid").Mesh()
	require.NotNil(t, pyramid)
	assert.Equal(t, 6, pyramid.Mesh.TriangleCount())

	sun := res.Scene.Find("sun")
	require.NotNil(t, sun.Camera())
	assert.Equal(t, scene.ProjectionOrthographic, sun.Camera().Projection)
	assert.Equal(t, scene.RenderBufferDepth, sun.Camera().RenderBuffer)
	assert.Equal(t, scene.LightTypeDirectional, sun.Light().LightType)

	floor := res.Scene.Find("floor").Material()
	require.NotNil(t, floor)
	p, ok := floor.Material.Parameter("shadowCam")
	require.True(t, ok)
	assert.Equal(t, material.ParameterKindShadowCameraRef, p.Kind)
	assert.Equal(t, sun.ID, p.Value.Camera)
}
