package resources

import "image"

/**
 * @brief Represents various types of textures.
 */
type TextureType int

const (
	/** @brief A two-dimensional texture loaded from a file. */
	TextureType2d TextureType = iota
	/** @brief A cube texture, used for cubemaps. */
	TextureTypeCube
	/** @brief A two-dimensional texture without backing file, used as render target. */
	TextureTypeRenderTarget
)

type TextureFormat int

const (
	TextureFormatRGBA TextureFormat = iota
	TextureFormatRGB
	TextureFormatDepth
)

// TextureFormatFromString maps the scene vocabulary to a format; anything
// unrecognised is RGBA.
func TextureFormatFromString(s string) TextureFormat {
	switch s {
	case "DEPTH":
		return TextureFormatDepth
	case "RGB":
		return TextureFormatRGB
	default:
		return TextureFormatRGBA
	}
}

func (f TextureFormat) ChannelCount() uint8 {
	switch f {
	case TextureFormatRGB:
		return 3
	case TextureFormatDepth:
		return 1
	default:
		return 4
	}
}

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGB:
		return "RGB"
	case TextureFormatDepth:
		return "DEPTH"
	default:
		return "RGBA"
	}
}

type TextureLoadStatus int

const (
	TextureOK TextureLoadStatus = iota
	TextureError
	TextureErrorReadingFile
	TextureInvalidFormat
)

func (s TextureLoadStatus) String() string {
	switch s {
	case TextureOK:
		return "ok"
	case TextureErrorReadingFile:
		return "error reading file"
	case TextureInvalidFormat:
		return "invalid format"
	}
	return "error"
}

// CubeFace orders the six faces of a cube texture.
type CubeFace int

const (
	CubeFaceLeft CubeFace = iota
	CubeFaceRight
	CubeFaceTop
	CubeFaceBottom
	CubeFaceBack
	CubeFaceFront
)

var CubeFaceNames = [6]string{"left", "right", "top", "bottom", "back", "front"}

// TextureID is the non-owning handle other holders keep for a texture.
type TextureID uint32

/**
 * @brief Represents a texture. Textures are owned by the renderer's
 * texture table.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID          uint32
	Name        string
	TextureType TextureType
	Format      TextureFormat
	Width       uint32
	Height      uint32
	Clamp       bool
	/** @brief Source files: one for 2D textures, six (CubeFace order) for cube textures. */
	Files []string
	/** @brief Decoded pixels, one image per face for cube textures. */
	Images []image.Image
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
}

func (t *Texture) Handle() TextureID { return TextureID(t.ID) }

func (t *Texture) GetTableID() uint32 { return t.ID }

func (t *Texture) SetTableID(id uint32) { t.ID = id }
