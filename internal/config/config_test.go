package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Render.Cluster {
		t.Error("expected LOD mode by default")
	}
	if cfg.Render.PointSize != 5 {
		t.Errorf("expected point size 5, got %v", cfg.Render.PointSize)
	}
	if cfg.Render.Color[3] != 0.75 {
		t.Errorf("expected alpha 0.75, got %v", cfg.Render.Color[3])
	}
	if cfg.Render.MaxGridSize != 256 {
		t.Errorf("expected max grid size 256, got %d", cfg.Render.MaxGridSize)
	}

	if cfg.LOD.Base != 16 || cfg.LOD.MaxLevels != 8 {
		t.Errorf("expected lod 16/8, got %d/%d", cfg.LOD.Base, cfg.LOD.MaxLevels)
	}

	if cfg.Data.Generator != "gaussian" || cfg.Data.Points != 10000 {
		t.Errorf("expected 10000 gaussian points, got %d %s", cfg.Data.Points, cfg.Data.Generator)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
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

render:
  cluster: true
  point_size: 3
  color: [1, 0, 0, 1]
  grid_size: 512
  max_grid_size: 1024

lod:
  base: 8
  max_levels: 4

data:
  input: "points.csv"

logging:
  level: "debug"
  log_file: "scatter.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if !cfg.Render.Cluster {
		t.Error("expected cluster to be true")
	}
	if cfg.Render.Color != [4]float32{1, 0, 0, 1} {
		t.Errorf("expected red, got %v", cfg.Render.Color)
	}
	if cfg.Render.GridSize != 512 {
		t.Errorf("expected grid size 512, got %d", cfg.Render.GridSize)
	}
	if cfg.LOD.Base != 8 || cfg.LOD.MaxLevels != 4 {
		t.Errorf("expected lod 8/4, got %d/%d", cfg.LOD.Base, cfg.LOD.MaxLevels)
	}
	if cfg.Data.Input != "points.csv" {
		t.Errorf("expected input points.csv, got %s", cfg.Data.Input)
	}
	// Untouched keys keep their defaults.
	if cfg.Data.Points != 10000 {
		t.Errorf("expected default points 10000, got %d", cfg.Data.Points)
	}
	if cfg.Logging.LogFile != "scatter.log" {
		t.Errorf("expected log file 'scatter.log', got %s", cfg.Logging.LogFile)
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
		{"grid not pow2", func(c *Config) { c.Render.GridSize = 300 }, true},
		{"grid pow2", func(c *Config) { c.Render.GridSize = 1024 }, false},
		{"max grid zero", func(c *Config) { c.Render.MaxGridSize = 0 }, true},
		{"color out of range", func(c *Config) { c.Render.Color[0] = 2 }, true},
		{"border color negative", func(c *Config) { c.Render.BorderColor[3] = -0.1 }, true},
		{"negative size", func(c *Config) { c.Render.PointSize = -1 }, true},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, true},
		{"lod base", func(c *Config) { c.LOD.Base = 0 }, true},
		{"unknown generator", func(c *Config) { c.Data.Generator = "spiral" }, true},
		{"generator ignored with input", func(c *Config) {
			c.Data.Generator = "spiral"
			c.Data.Input = "pts.csv"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
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
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
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
				if !cfg.Window.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "cluster and grid flags",
			setup: func() { *flagCluster = true; *flagGrid = 128 },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Render.Cluster {
					t.Error("expected cluster mode")
				}
				if cfg.Render.GridSize != 128 {
					t.Errorf("expected grid 128, got %d", cfg.Render.GridSize)
				}
			},
			teardown: func() { *flagCluster = false; *flagGrid = 0 },
		},
		{
			name:  "data flags",
			setup: func() { *flagPoints = 500000; *flagInput = "cities.csv" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.Points != 500000 {
					t.Errorf("expected 500000 points, got %d", cfg.Data.Points)
				}
				if cfg.Data.Input != "cities.csv" {
					t.Errorf("expected input cities.csv, got %s", cfg.Data.Input)
				}
			},
			teardown: func() { *flagPoints = 0; *flagInput = "" },
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
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
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

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  grid_size: 100\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for grid_size 100")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Cluster = true
	cfg.Data.Points = 42
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if !loaded.Render.Cluster || loaded.Data.Points != 42 {
		t.Errorf("expected saved values, got cluster=%v points=%d", loaded.Render.Cluster, loaded.Data.Points)
	}
}
