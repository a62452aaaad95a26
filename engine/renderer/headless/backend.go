// Package headless implements the renderer backend without a GPU. Shader
// sources are scanned for their uniform declarations and textures are decoded
// into memory, which is enough to build and inspect a scene graph.
package headless

import (
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"regexp"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer"
	"github.com/spaghettifunk/anima-scene/engine/resources"
)

// Stage suffixes tried when the shader file itself does not exist.
var stageExtensions = []string{".vert", ".frag", ".geom"}

var (
	uniformPattern = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
	mainPattern    = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

type Backend struct {
	// number of live resources, for leak checks
	liveShaders  int
	liveTextures int
}

var _ renderer.RendererBackend = &Backend{}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) ShaderCreate(shader *resources.Shader, dataSource fs.FS) resources.ShaderLoadStatus {
	sources, err := readShaderSources(dataSource, shader.File)
	if err != nil {
		core.LogDebug("shader '%s': %s", shader.Name, err.Error())
		return resources.ShaderErrorReadingFile
	}
	for _, src := range sources {
		if !mainPattern.Match(src) {
			core.LogDebug("shader '%s': stage without entry point", shader.Name)
			return resources.ShaderErrorCompile
		}
		for _, m := range uniformPattern.FindAllSubmatch(src, -1) {
			shader.AddUniform(string(m[2]), uniformTypeFromGLSL(string(m[1])))
		}
	}
	shader.InternalData = sources
	b.liveShaders++
	return resources.ShaderOK
}

func (b *Backend) ShaderDestroy(shader *resources.Shader) {
	if shader.InternalData != nil {
		shader.InternalData = nil
		b.liveShaders--
	}
}

func (b *Backend) TextureLoad(texture *resources.Texture, dataSource fs.FS) resources.TextureLoadStatus {
	if len(texture.Files) != 1 {
		return resources.TextureError
	}
	img, status := decodeImage(dataSource, texture.Files[0])
	if status != resources.TextureOK {
		return status
	}
	bounds := img.Bounds()
	texture.Width = uint32(bounds.Dx())
	texture.Height = uint32(bounds.Dy())
	texture.Images = []image.Image{img}
	texture.Generation++
	b.liveTextures++
	return resources.TextureOK
}

func (b *Backend) TextureCreate(texture *resources.Texture) resources.TextureLoadStatus {
	if texture.Width == 0 || texture.Height == 0 {
		return resources.TextureError
	}
	rect := image.Rect(0, 0, int(texture.Width), int(texture.Height))
	var img image.Image
	switch texture.Format {
	case resources.TextureFormatDepth:
		depth := image.NewGray16(rect)
		// cleared to the far plane
		for y := 0; y < rect.Dy(); y++ {
			for x := 0; x < rect.Dx(); x++ {
				depth.SetGray16(x, y, color.Gray16{Y: 0xffff})
			}
		}
		img = depth
	default:
		img = image.NewRGBA(rect)
	}
	texture.Images = []image.Image{img}
	texture.Generation++
	b.liveTextures++
	return resources.TextureOK
}

func (b *Backend) CubeTextureLoad(texture *resources.Texture, dataSource fs.FS) resources.TextureLoadStatus {
	if len(texture.Files) != 6 {
		return resources.TextureError
	}
	faces := make([]image.Image, 0, 6)
	var size image.Point
	for i, file := range texture.Files {
		img, status := decodeImage(dataSource, file)
		if status != resources.TextureOK {
			return status
		}
		if i == 0 {
			size = img.Bounds().Size()
		} else if img.Bounds().Size() != size {
			core.LogDebug("cube texture '%s': face %s is %v, expected %v", texture.Name, resources.CubeFaceNames[i], img.Bounds().Size(), size)
			return resources.TextureInvalidFormat
		}
		faces = append(faces, img)
	}
	texture.Width = uint32(size.X)
	texture.Height = uint32(size.Y)
	texture.Images = faces
	texture.Generation++
	b.liveTextures++
	return resources.TextureOK
}

func (b *Backend) TextureDestroy(texture *resources.Texture) {
	if texture.Images != nil {
		texture.Images = nil
		b.liveTextures--
	}
}

// LiveResources reports how many shaders and textures have not been destroyed.
func (b *Backend) LiveResources() (shaders, textures int) {
	return b.liveShaders, b.liveTextures
}

func readShaderSources(dataSource fs.FS, file string) ([][]byte, error) {
	if file == "" {
		return nil, errors.New("no shader file given")
	}
	file = path.Clean(file)
	if src, err := fs.ReadFile(dataSource, file); err == nil {
		return [][]byte{src}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var sources [][]byte
	for _, ext := range stageExtensions {
		src, err := fs.ReadFile(dataSource, file+ext)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fs.ErrNotExist
	}
	return sources, nil
}

func decodeImage(dataSource fs.FS, file string) (image.Image, resources.TextureLoadStatus) {
	if file == "" {
		return nil, resources.TextureErrorReadingFile
	}
	f, err := dataSource.Open(path.Clean(file))
	if err != nil {
		return nil, resources.TextureErrorReadingFile
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, resources.TextureInvalidFormat
	}
	return img, resources.TextureOK
}

func uniformTypeFromGLSL(t string) resources.ShaderUniformType {
	switch t {
	case "float":
		return resources.ShaderUniformTypeFloat32
	case "vec2":
		return resources.ShaderUniformTypeFloat32_2
	case "vec3":
		return resources.ShaderUniformTypeFloat32_3
	case "vec4":
		return resources.ShaderUniformTypeFloat32_4
	case "int", "bool":
		return resources.ShaderUniformTypeInt32
	case "mat4":
		return resources.ShaderUniformTypeMatrix4
	case "sampler2D", "samplerCube", "sampler2DShadow":
		return resources.ShaderUniformTypeSampler
	default:
		return resources.ShaderUniformTypeCustom
	}
}
