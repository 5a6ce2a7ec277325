package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MeshIllustrator")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MeshIllustrator")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mesh-illustrator")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "mesh-illustrator")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks enumerated and ranged settings.
func (c *Config) Validate() error {
	switch c.Render.NormalMode {
	case "smooth", "split":
	default:
		return fmt.Errorf("render.normal_mode: unknown mode %q", c.Render.NormalMode)
	}
	switch c.Render.Shading {
	case "phong", "toon", "gooch", "normals":
	default:
		return fmt.Errorf("render.shading: unknown shading %q", c.Render.Shading)
	}
	if c.Render.FeatureAngle < 0 || c.Render.FeatureAngle > 180 {
		return fmt.Errorf("render.feature_angle: %v out of range [0,180]", c.Render.FeatureAngle)
	}
	if c.Mesh.Opacity < 0 || c.Mesh.Opacity > 100 {
		return fmt.Errorf("mesh.opacity: %v out of range [0,100]", c.Mesh.Opacity)
	}
	if c.Render.RedrawInterval <= 0 || c.Render.ShaderReloadInterval <= 0 {
		return fmt.Errorf("render: tick intervals must be positive")
	}
	return nil
}
