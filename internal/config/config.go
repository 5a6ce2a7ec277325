// Package config handles illustrator configuration loading and management.
package config

import "time"

// Config holds all illustrator settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`

	// Import is a mesh file loaded at startup. Set from the -obj flag only.
	Import string `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds shading and timing settings.
type RenderConfig struct {
	NormalMode           string        `yaml:"normal_mode"`   // "smooth" or "split"
	FeatureAngle         float32       `yaml:"feature_angle"` // degrees, split mode only
	Shading              string        `yaml:"shading"`       // "phong", "toon", "gooch" or "normals"
	RedrawInterval       time.Duration `yaml:"redraw_interval"`
	ShaderReloadInterval time.Duration `yaml:"shader_reload_interval"`
	LightAzimuth         float32       `yaml:"light_azimuth"`
	LightElevation       float32       `yaml:"light_elevation"`
	Background           [3]float32    `yaml:"background"`
}

// ShaderConfig holds the shader source paths. An empty path means no stage.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Watch    bool   `yaml:"watch"`
}

// MeshConfig holds defaults applied to imported meshes.
type MeshConfig struct {
	Color   [3]float32 `yaml:"color"`
	Opacity float32    `yaml:"opacity"` // perceived, 0-100
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			NormalMode:           "smooth",
			FeatureAngle:         60,
			Shading:              "phong",
			RedrawInterval:       16 * time.Millisecond,
			ShaderReloadInterval: 500 * time.Millisecond,
			LightAzimuth:         45,
			LightElevation:       60,
			Background:           [3]float32{0.08, 0.08, 0.1},
		},
		Shaders: ShaderConfig{
			Vertex:   "shaders/mesh.vert",
			Fragment: "shaders/mesh.frag",
			Watch:    true,
		},
		Mesh: MeshConfig{
			Color:   [3]float32{0.9, 0.86, 0.8},
			Opacity: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
