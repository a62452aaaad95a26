package renderer

import (
	"io/fs"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

// Renderer is the frontend the scene loader talks to. It owns the shader
// and texture tables; everything else holds handles into them.
type Renderer struct {
	backend    RendererBackend
	dataSource fs.FS
	shaders    *resources.Table[*resources.Shader]
	textures   *resources.Table[*resources.Texture]
}

// New creates a renderer frontend. dataSource is where shader sources and
// texture files are read from.
func New(backend RendererBackend, dataSource fs.FS) *Renderer {
	return &Renderer{
		backend:    backend,
		dataSource: dataSource,
		shaders:    resources.NewTable[*resources.Shader]("shader"),
		textures:   resources.NewTable[*resources.Texture]("texture"),
	}
}

func (r *Renderer) ShaderDataSource() fs.FS {
	return r.dataSource
}

/**
 * @brief Creates a shader from file and registers it under name.
 *
 * @return The shader and ShaderOK on success; otherwise nil and the failure status.
 */
func (r *Renderer) CreateShader(file, name string, dataSource fs.FS) (*resources.Shader, resources.ShaderLoadStatus) {
	if _, exists := r.shaders.Get(name); exists {
		return nil, resources.ShaderErrorDuplicate
	}
	shader := resources.NewShader(name, file)
	if status := r.backend.ShaderCreate(shader, dataSource); status != resources.ShaderOK {
		return nil, status
	}
	if _, err := r.shaders.Add(name, shader); err != nil {
		core.LogError(err.Error())
		r.backend.ShaderDestroy(shader)
		return nil, resources.ShaderErrorDuplicate
	}
	return shader, resources.ShaderOK
}

// GetShader returns the shader registered under name, or nil.
func (r *Renderer) GetShader(name string) *resources.Shader {
	s, ok := r.shaders.Get(name)
	if !ok {
		return nil
	}
	return s
}

func (r *Renderer) Shaders() *resources.Table[*resources.Shader] {
	return r.shaders
}

// LoadTexture2D decodes a file-backed texture. Nothing is registered on failure.
func (r *Renderer) LoadTexture2D(name, file string, clamp bool) (*resources.Texture, resources.TextureLoadStatus) {
	texture := &resources.Texture{
		Name:        name,
		TextureType: resources.TextureType2d,
		Format:      resources.TextureFormatRGBA,
		Clamp:       clamp,
		Files:       []string{file},
	}
	if status := r.backend.TextureLoad(texture, r.dataSource); status != resources.TextureOK {
		return nil, status
	}
	return r.register(texture)
}

// CreateTexture2D allocates a render target texture without backing file.
func (r *Renderer) CreateTexture2D(name string, width, height uint32, format resources.TextureFormat, clamp bool) (*resources.Texture, resources.TextureLoadStatus) {
	texture := &resources.Texture{
		Name:        name,
		TextureType: resources.TextureTypeRenderTarget,
		Format:      format,
		Width:       width,
		Height:      height,
		Clamp:       clamp,
	}
	if status := r.backend.TextureCreate(texture); status != resources.TextureOK {
		return nil, status
	}
	return r.register(texture)
}

// LoadCubeTexture decodes six faces given in CubeFace order.
func (r *Renderer) LoadCubeTexture(name string, faces [6]string) (*resources.Texture, resources.TextureLoadStatus) {
	texture := &resources.Texture{
		Name:        name,
		TextureType: resources.TextureTypeCube,
		Format:      resources.TextureFormatRGBA,
		Clamp:       true,
		Files:       faces[:],
	}
	if status := r.backend.CubeTextureLoad(texture, r.dataSource); status != resources.TextureOK {
		return nil, status
	}
	return r.register(texture)
}

func (r *Renderer) register(texture *resources.Texture) (*resources.Texture, resources.TextureLoadStatus) {
	if _, err := r.textures.Add(texture.Name, texture); err != nil {
		core.LogError(err.Error())
		r.backend.TextureDestroy(texture)
		return nil, resources.TextureError
	}
	return texture, resources.TextureOK
}

// GetTexture returns the texture registered under name, or nil.
func (r *Renderer) GetTexture(name string) *resources.Texture {
	t, ok := r.textures.Get(name)
	if !ok {
		return nil
	}
	return t
}

// TextureByID resolves a handle held by a material or camera.
func (r *Renderer) TextureByID(id resources.TextureID) *resources.Texture {
	t, ok := r.textures.ByID(uint32(id))
	if !ok {
		return nil
	}
	return t
}

func (r *Renderer) Textures() *resources.Table[*resources.Texture] {
	return r.textures
}

// Shutdown releases every resource owned by the tables.
func (r *Renderer) Shutdown() error {
	for _, name := range r.textures.Names() {
		if t, ok := r.textures.Get(name); ok {
			r.backend.TextureDestroy(t)
		}
	}
	for _, name := range r.shaders.Names() {
		if s, ok := r.shaders.Get(name); ok {
			r.backend.ShaderDestroy(s)
		}
	}
	r.textures.Clear()
	r.shaders.Clear()
	return nil
}
