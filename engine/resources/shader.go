package resources

/**
 * @brief Represents the current state of a given shader.
 */
type ShaderLoadStatus int

const (
	ShaderOK ShaderLoadStatus = iota
	/** @brief The source file could not be read from the data source. */
	ShaderErrorReadingFile
	/** @brief The source was read but declared no usable program. */
	ShaderErrorCompile
	/** @brief A shader with the same name is already registered. */
	ShaderErrorDuplicate
)

func (s ShaderLoadStatus) String() string {
	switch s {
	case ShaderOK:
		return "ok"
	case ShaderErrorReadingFile:
		return "error reading file"
	case ShaderErrorCompile:
		return "compile error"
	case ShaderErrorDuplicate:
		return "duplicate shader"
	}
	return "unknown"
}

// ShaderUniformType is the declared GLSL type of a uniform slot.
type ShaderUniformType int

const (
	ShaderUniformTypeFloat32 ShaderUniformType = iota
	ShaderUniformTypeFloat32_2
	ShaderUniformTypeFloat32_3
	ShaderUniformTypeFloat32_4
	ShaderUniformTypeInt32
	ShaderUniformTypeMatrix4
	ShaderUniformTypeSampler
	ShaderUniformTypeCustom
)

/**
 * @brief Represents a single entry in the uniform table of a shader.
 */
type ShaderUniform struct {
	Name string
	/** @brief Location used as the lookup id of the slot. */
	Location uint16
	Type     ShaderUniformType
}

/**
 * @brief Represents a shader on the frontend. Shaders are owned by the
 * renderer's shader table; materials only hold a reference.
 */
type Shader struct {
	/** @brief The shader identifier in the table. */
	ID   uint32
	Name string
	/** @brief The file the source was read from, relative to the data source. */
	File string
	/** @brief An array of Uniforms in this shader, in declaration order. */
	Uniforms []ShaderUniform
	/** @brief A hashtable to store uniform index by name. */
	UniformLookup map[string]uint16
	/** @brief An opaque pointer to hold renderer API specific data. */
	InternalData interface{}
}

func NewShader(name, file string) *Shader {
	return &Shader{
		ID:            0,
		Name:          name,
		File:          file,
		UniformLookup: make(map[string]uint16),
	}
}

// AddUniform registers a uniform slot. Re-declaring a name keeps the first slot.
func (s *Shader) AddUniform(name string, t ShaderUniformType) uint16 {
	if idx, ok := s.UniformLookup[name]; ok {
		return s.Uniforms[idx].Location
	}
	loc := uint16(len(s.Uniforms))
	s.Uniforms = append(s.Uniforms, ShaderUniform{Name: name, Location: loc, Type: t})
	s.UniformLookup[name] = loc
	return loc
}

// GetUniform returns the slot for name, if the shader declares it.
func (s *Shader) GetUniform(name string) (ShaderUniform, bool) {
	if s == nil {
		return ShaderUniform{}, false
	}
	idx, ok := s.UniformLookup[name]
	if !ok {
		return ShaderUniform{}, false
	}
	return s.Uniforms[idx], true
}

func (s *Shader) GetTableID() uint32 { return s.ID }

func (s *Shader) SetTableID(id uint32) { s.ID = id }
