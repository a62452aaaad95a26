package headless

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

const phongSource = `#version 330
uniform mat4 projection;
uniform highp vec4 tint;
uniform sampler2D albedo;
layout(location = 3) uniform float shininess;
void main() {}
`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newRenderer(t *testing.T, files fstest.MapFS) (*renderer.Renderer, *Backend) {
	t.Helper()
	core.SetLogOutput(io.Discard)
	b := New()
	return renderer.New(b, files), b
}

func TestCreateShaderExtractsUniforms(t *testing.T) {
	r, _ := newRenderer(t, fstest.MapFS{"shaders/phong.glsl": {Data: []byte(phongSource)}})

	shader, status := r.CreateShader("shaders/phong.glsl", "phong", r.ShaderDataSource())
	require.Equal(t, resources.ShaderOK, status)

	for _, name := range []string{"projection", "tint", "albedo", "shininess"} {
		_, ok := shader.GetUniform(name)
		assert.True(t, ok, "uniform %s", name)
	}
	u, _ := shader.GetUniform("albedo")
	assert.Equal(t, resources.ShaderUniformTypeSampler, u.Type)
	assert.Same(t, shader, r.GetShader("phong"))
}

func TestCreateShaderFromStageFiles(t *testing.T) {
	r, _ := newRenderer(t, fstest.MapFS{
		"unlit.vert": {Data: []byte("uniform mat4 mvp;\nvoid main() {}\n")},
		"unlit.frag": {Data: []byte("uniform vec4 colour;\nvoid main() {}\n")},
	})

	shader, status := r.CreateShader("unlit", "unlit", r.ShaderDataSource())
	require.Equal(t, resources.ShaderOK, status)
	_, ok := shader.GetUniform("mvp")
	assert.True(t, ok)
	_, ok = shader.GetUniform("colour")
	assert.True(t, ok)
}

func TestCreateShaderFailures(t *testing.T) {
	r, _ := newRenderer(t, fstest.MapFS{
		"broken.glsl": {Data: []byte("uniform vec4 tint;\n")},
		"ok.glsl":     {Data: []byte("void main() {}\n")},
	})

	_, status := r.CreateShader("missing.glsl", "missing", r.ShaderDataSource())
	assert.Equal(t, resources.ShaderErrorReadingFile, status)

	_, status = r.CreateShader("broken.glsl", "broken", r.ShaderDataSource())
	assert.Equal(t, resources.ShaderErrorCompile, status)
	assert.Nil(t, r.GetShader("broken"))

	_, status = r.CreateShader("ok.glsl", "ok", r.ShaderDataSource())
	require.Equal(t, resources.ShaderOK, status)
	_, status = r.CreateShader("ok.glsl", "ok", r.ShaderDataSource())
	assert.Equal(t, resources.ShaderErrorDuplicate, status)
}

func TestTextureLoading(t *testing.T) {
	files := fstest.MapFS{
		"tex/brick.png": {Data: pngBytes(t, 8, 4)},
		"tex/bad.png":   {Data: []byte("not an image")},
	}
	r, b := newRenderer(t, files)

	tex, status := r.LoadTexture2D("brick", "tex/brick.png", false)
	require.Equal(t, resources.TextureOK, status)
	assert.Equal(t, uint32(8), tex.Width)
	assert.Equal(t, uint32(4), tex.Height)
	assert.False(t, tex.Clamp)

	_, status = r.LoadTexture2D("missing", "tex/none.png", true)
	assert.Equal(t, resources.TextureErrorReadingFile, status)
	_, status = r.LoadTexture2D("bad", "tex/bad.png", true)
	assert.Equal(t, resources.TextureInvalidFormat, status)
	assert.Nil(t, r.GetTexture("bad"))

	_, textures := b.LiveResources()
	assert.Equal(t, 1, textures)
}

func TestRenderTargetCreation(t *testing.T) {
	r, _ := newRenderer(t, fstest.MapFS{})

	tex, status := r.CreateTexture2D("shadowmap", 64, 64, resources.TextureFormatDepth, true)
	require.Equal(t, resources.TextureOK, status)
	assert.Equal(t, resources.TextureTypeRenderTarget, tex.TextureType)
	require.Len(t, tex.Images, 1)
	assert.IsType(t, &image.Gray16{}, tex.Images[0])

	_, status = r.CreateTexture2D("empty", 0, 64, resources.TextureFormatRGB, true)
	assert.Equal(t, resources.TextureError, status)
	assert.Same(t, tex, r.TextureByID(tex.Handle()))
}

func TestCubeTextureLoading(t *testing.T) {
	files := fstest.MapFS{}
	var faces [6]string
	for i, name := range resources.CubeFaceNames {
		faces[i] = "sky/" + name + ".png"
		files[faces[i]] = &fstest.MapFile{Data: pngBytes(t, 16, 16)}
	}
	r, _ := newRenderer(t, files)

	tex, status := r.LoadCubeTexture("sky", faces)
	require.Equal(t, resources.TextureOK, status)
	assert.Len(t, tex.Images, 6)
	assert.Equal(t, uint32(16), tex.Width)

	files["sky/front.png"] = &fstest.MapFile{Data: pngBytes(t, 8, 8)}
	_, status = r.LoadCubeTexture("sky2", faces)
	assert.Equal(t, resources.TextureInvalidFormat, status)
}

func TestShutdownReleasesEverything(t *testing.T) {
	r, b := newRenderer(t, fstest.MapFS{
		"a.glsl": {Data: []byte("void main() {}")},
	})
	_, status := r.CreateShader("a.glsl", "a", r.ShaderDataSource())
	require.Equal(t, resources.ShaderOK, status)
	_, texStatus := r.CreateTexture2D("rt", 4, 4, resources.TextureFormatRGBA, true)
	require.Equal(t, resources.TextureOK, texStatus)

	require.NoError(t, r.Shutdown())
	shaders, textures := b.LiveResources()
	assert.Zero(t, shaders)
	assert.Zero(t, textures)
	assert.Nil(t, r.GetShader("a"))
}
