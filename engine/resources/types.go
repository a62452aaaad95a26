package resources

type ResourceType int

/** @brief Resource types known to the scene loader. */
const (
	/** @brief Unknown or unsupported file. */
	ResourceTypeNone ResourceType = iota
	/** @brief Scene description document. */
	ResourceTypeScene
	/** @brief Shader source. */
	ResourceTypeShader
	/** @brief Image used as texture data. */
	ResourceTypeImage
	/** @brief Mesh imported from an external model format. */
	ResourceTypeModel
	/** @brief Loader configuration. */
	ResourceTypeConfig
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeScene:
		return "scene"
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeModel:
		return "model"
	case ResourceTypeConfig:
		return "config"
	default:
		return "none"
	}
}
