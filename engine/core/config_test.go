package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[log]
level = "warn"

[assets]
base_path = "testbed"

[camera]
field_of_view = 60.0

[watch]
enabled = true
debounce_ms = 50
`))
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, cfg.Log.Level)
	assert.Equal(t, "testbed", cfg.Assets.BasePath)
	assert.Equal(t, float32(60), cfg.Camera.FieldOfView)
	// untouched keys keep their defaults
	assert.Equal(t, float32(1000), cfg.Camera.FarPlane)
	assert.True(t, cfg.Loader.MaterialBindings)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce())
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("[log]\nverbosity = 3\n"))
	assert.Error(t, err)
}

func TestParseConfigRejectsLargeSubdivision(t *testing.T) {
	_, err := ParseConfig([]byte("[loader]\nsphere_subdivisions = 9\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[loader]\nmaterial_bindings = false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Loader.MaterialBindings)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
