package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Render.NormalMode != "smooth" {
		t.Errorf("expected normal mode 'smooth', got %s", cfg.Render.NormalMode)
	}
	if cfg.Render.FeatureAngle != 60 {
		t.Errorf("expected feature angle 60, got %v", cfg.Render.FeatureAngle)
	}
	if cfg.Render.ShaderReloadInterval != 500*time.Millisecond {
		t.Errorf("expected reload interval 500ms, got %v", cfg.Render.ShaderReloadInterval)
	}
	if cfg.Render.RedrawInterval >= cfg.Render.ShaderReloadInterval {
		t.Error("redraw tick should be faster than the shader reload tick")
	}

	if cfg.Shaders.Vertex == "" || cfg.Shaders.Fragment == "" {
		t.Error("expected default shader paths")
	}
	if cfg.Mesh.Opacity != 100 {
		t.Errorf("expected default opacity 100, got %v", cfg.Mesh.Opacity)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

render:
  normal_mode: split
  feature_angle: 45
  shading: toon
  shader_reload_interval: 2s
  background: [0.2, 0.3, 0.4]

shaders:
  vertex: "custom.vert"
  fragment: ""
  watch: false

mesh:
  color: [1, 0, 0]
  opacity: 50

logging:
  level: "debug"
  log_file: "illustrator.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Render.NormalMode != "split" {
		t.Errorf("expected normal mode split, got %s", cfg.Render.NormalMode)
	}
	if cfg.Render.FeatureAngle != 45 {
		t.Errorf("expected feature angle 45, got %v", cfg.Render.FeatureAngle)
	}
	if cfg.Render.Shading != "toon" {
		t.Errorf("expected toon shading, got %s", cfg.Render.Shading)
	}
	if cfg.Render.ShaderReloadInterval != 2*time.Second {
		t.Errorf("expected reload interval 2s, got %v", cfg.Render.ShaderReloadInterval)
	}
	// Not present in the file, keeps the default.
	if cfg.Render.RedrawInterval != 16*time.Millisecond {
		t.Errorf("expected default redraw interval, got %v", cfg.Render.RedrawInterval)
	}
	if cfg.Render.Background != [3]float32{0.2, 0.3, 0.4} {
		t.Errorf("unexpected background %v", cfg.Render.Background)
	}
	if cfg.Shaders.Vertex != "custom.vert" {
		t.Errorf("expected vertex custom.vert, got %s", cfg.Shaders.Vertex)
	}
	if cfg.Shaders.Fragment != "" {
		t.Errorf("expected empty fragment path, got %s", cfg.Shaders.Fragment)
	}
	if cfg.Mesh.Color != [3]float32{1, 0, 0} || cfg.Mesh.Opacity != 50 {
		t.Errorf("unexpected mesh defaults %+v", cfg.Mesh)
	}
	if cfg.Logging.LogFile != "illustrator.log" {
		t.Errorf("expected log file 'illustrator.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"split normals", func(c *Config) { c.Render.NormalMode = "split" }, false},
		{"unknown normals", func(c *Config) { c.Render.NormalMode = "flat-ish" }, true},
		{"unknown shading", func(c *Config) { c.Render.Shading = "cel" }, true},
		{"feature angle too large", func(c *Config) { c.Render.FeatureAngle = 200 }, true},
		{"opacity above slider", func(c *Config) { c.Mesh.Opacity = 150 }, true},
		{"zero reload tick", func(c *Config) { c.Render.ShaderReloadInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.NormalMode = "split"
	cfg.Import = "ignored.obj"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Render.NormalMode != "split" {
		t.Errorf("expected saved normal mode split, got %s", loaded.Render.NormalMode)
	}
	if loaded.Import != "" {
		t.Errorf("import path must not be persisted, got %q", loaded.Import)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "obj flag",
			setup: func() { *flagImport = "teapot.obj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Import != "teapot.obj" {
					t.Errorf("expected import teapot.obj, got %s", cfg.Import)
				}
			},
			teardown: func() { *flagImport = "" },
		},
		{
			name:  "normals flag",
			setup: func() { *flagNormals = "split" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.NormalMode != "split" {
					t.Errorf("expected split normals, got %s", cfg.Render.NormalMode)
				}
			},
			teardown: func() { *flagNormals = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  normal_mode: wobbly\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for unknown normal mode")
	}
}
