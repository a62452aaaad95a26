package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

func TestTableAddAndLookup(t *testing.T) {
	tbl := NewTable[*Texture]("texture")

	id, err := tbl.Add("albedo", &Texture{Name: "albedo"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), id)

	id, err = tbl.Add("shadow", &Texture{Name: "shadow"})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)

	tex, ok := tbl.Get("shadow")
	require.True(t, ok)
	assert.Equal(t, TextureID(1), tex.Handle())

	byID, ok := tbl.ByID(0)
	require.True(t, ok)
	assert.Equal(t, "albedo", byID.Name)

	assert.Equal(t, []string{"albedo", "shadow"}, tbl.Names())
	assert.Equal(t, 2, tbl.Len())
}

func TestTableRejectsDuplicateNames(t *testing.T) {
	tbl := NewTable[*Shader]("shader")
	_, err := tbl.Add("phong", NewShader("phong", "phong.glsl"))
	require.NoError(t, err)

	_, err = tbl.Add("phong", NewShader("phong", "other.glsl"))
	assert.ErrorIs(t, err, core.ErrDuplicate)
	assert.Equal(t, 1, tbl.Len())
}

func TestTableMissingEntries(t *testing.T) {
	tbl := NewTable[*Shader]("shader")
	_, ok := tbl.Get("nope")
	assert.False(t, ok)
	_, ok = tbl.ByID(core.InvalidID)
	assert.False(t, ok)
	_, ok = tbl.ByID(3)
	assert.False(t, ok)

	_, _ = tbl.Add("a", NewShader("a", "a.glsl"))
	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	_, ok = tbl.Get("a")
	assert.False(t, ok)
}

func TestShaderUniforms(t *testing.T) {
	s := NewShader("phong", "phong.glsl")
	assert.Equal(t, uint16(0), s.AddUniform("tint", ShaderUniformTypeFloat32_4))
	assert.Equal(t, uint16(1), s.AddUniform("albedo", ShaderUniformTypeSampler))
	assert.Equal(t, uint16(0), s.AddUniform("tint", ShaderUniformTypeFloat32_4))

	u, ok := s.GetUniform("albedo")
	require.True(t, ok)
	assert.Equal(t, ShaderUniformTypeSampler, u.Type)

	_, ok = s.GetUniform("missing")
	assert.False(t, ok)

	var nilShader *Shader
	_, ok = nilShader.GetUniform("tint")
	assert.False(t, ok)
}

func TestTextureFormatFromString(t *testing.T) {
	assert.Equal(t, TextureFormatDepth, TextureFormatFromString("DEPTH"))
	assert.Equal(t, TextureFormatRGB, TextureFormatFromString("RGB"))
	assert.Equal(t, TextureFormatRGBA, TextureFormatFromString("rgba"))
	assert.Equal(t, TextureFormatRGBA, TextureFormatFromString(""))
	assert.Equal(t, uint8(3), TextureFormatRGB.ChannelCount())
}
