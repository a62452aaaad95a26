package core

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk configuration of the scene loader, decoded from TOML.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Assets AssetsConfig `toml:"assets"`
	Loader LoaderConfig `toml:"loader"`
	Camera CameraConfig `toml:"camera"`
	Watch  WatchConfig  `toml:"watch"`
}

type LogConfig struct {
	Level LogLevel `toml:"level"`
}

type AssetsConfig struct {
	// Root directory shaders, textures and meshes are resolved against.
	BasePath string `toml:"base_path"`
}

type LoaderConfig struct {
	// Run the shadow-camera binding pass once the document has been read.
	MaterialBindings bool `toml:"material_bindings"`
	// Number of subdivisions used for the "sphere" primitive.
	SphereSubdivisions uint32 `toml:"sphere_subdivisions"`
}

// CameraConfig holds the projection values used when a camera tag omits them.
type CameraConfig struct {
	FieldOfView float32 `toml:"field_of_view"`
	Aspect      float32 `toml:"aspect"`
	NearPlane   float32 `toml:"near_plane"`
	FarPlane    float32 `toml:"far_plane"`
	Left        float32 `toml:"left"`
	Right       float32 `toml:"right"`
	Bottom      float32 `toml:"bottom"`
	Top         float32 `toml:"top"`
}

type WatchConfig struct {
	Enabled    bool  `toml:"enabled"`
	DebounceMS int64 `toml:"debounce_ms"`
}

func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

func DefaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: LogLevelInfo},
		Assets: AssetsConfig{BasePath: "."},
		Loader: LoaderConfig{
			MaterialBindings:   true,
			SphereSubdivisions: 2,
		},
		Camera: DefaultCameraConfig(),
		Watch: WatchConfig{
			Enabled:    false,
			DebounceMS: 200,
		},
	}
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		FieldOfView: 40.0,
		Aspect:      1.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Left:        -1,
		Right:       1,
		Bottom:      -1,
		Top:         1,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys that are not
// part of Config are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Loader.SphereSubdivisions > 6 {
		return nil, fmt.Errorf("invalid configuration: loader.sphere_subdivisions must be <= 6, got %d", cfg.Loader.SphereSubdivisions)
	}
	return cfg, nil
}
