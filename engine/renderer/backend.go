package renderer

import (
	"io/fs"

	"github.com/spaghettifunk/anima-scene/engine/resources"
)

// RendererBackend is the GPU binding layer. It compiles shaders and uploads
// textures; the frontend decides what gets registered.
type RendererBackend interface {
	// ShaderCreate reads the shader's File from dataSource and fills in its uniform slots.
	ShaderCreate(shader *resources.Shader, dataSource fs.FS) resources.ShaderLoadStatus
	ShaderDestroy(shader *resources.Shader)
	// TextureLoad decodes the texture's single file.
	TextureLoad(texture *resources.Texture, dataSource fs.FS) resources.TextureLoadStatus
	// TextureCreate allocates storage for a texture without backing file.
	TextureCreate(texture *resources.Texture) resources.TextureLoadStatus
	// CubeTextureLoad decodes the six face files of a cube texture.
	CubeTextureLoad(texture *resources.Texture, dataSource fs.FS) resources.TextureLoadStatus
	TextureDestroy(texture *resources.Texture)
}
