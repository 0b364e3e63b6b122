// Package config handles viewer and tool configuration loading.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	LOD     LODConfig     `yaml:"lod"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// RenderConfig holds point styling and packing settings.
type RenderConfig struct {
	// Cluster selects the packed-grid path instead of the LOD path.
	Cluster     bool       `yaml:"cluster"`
	PointSize   float32    `yaml:"point_size"`
	Color       [4]float32 `yaml:"color"`
	BorderSize  float32    `yaml:"border_size"`
	BorderColor [4]float32 `yaml:"border_color"`
	// GridSize forces the packed grid resolution; 0 derives it from the
	// viewport.
	GridSize int `yaml:"grid_size"`
	// MaxGridSize caps the derived grid resolution.
	MaxGridSize int `yaml:"max_grid_size"`
	// FloatTexture uploads the grid as RGBA32F instead of RGBA8.
	FloatTexture bool `yaml:"float_texture"`
}

// LODConfig holds level-of-detail settings.
type LODConfig struct {
	Base      int `yaml:"base"`
	MaxLevels int `yaml:"max_levels"`
}

// DataConfig selects the point source.
type DataConfig struct {
	// Input is a CSV or .bin file; empty generates points.
	Input string `yaml:"input"`
	// Generator is "gaussian" or "uniform" when Input is empty.
	Generator string `yaml:"generator"`
	Points    int    `yaml:"points"`
	Seed      int64  `yaml:"seed"`
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
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			PointSize:   5,
			Color:       [4]float32{0, 100.0 / 255, 200.0 / 255, 0.75},
			BorderColor: [4]float32{0, 0, 0, 1},
			MaxGridSize: 256,
		},
		LOD: LODConfig{
			Base:      16,
			MaxLevels: 8,
		},
		Data: DataConfig{
			Generator: "gaussian",
			Points:    10000,
			Seed:      1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Render.GridSize != 0 && !isPow2(c.Render.GridSize) {
		return fmt.Errorf("render.grid_size %d is not a power of two", c.Render.GridSize)
	}
	if !isPow2(c.Render.MaxGridSize) {
		return fmt.Errorf("render.max_grid_size %d is not a power of two", c.Render.MaxGridSize)
	}
	if c.Render.PointSize < 0 || c.Render.BorderSize < 0 {
		return errors.New("render sizes must not be negative")
	}
	if err := checkColor("render.color", c.Render.Color); err != nil {
		return err
	}
	if err := checkColor("render.border_color", c.Render.BorderColor); err != nil {
		return err
	}
	if c.LOD.Base < 1 || c.LOD.MaxLevels < 1 {
		return fmt.Errorf("lod base %d and max_levels %d must be at least 1", c.LOD.Base, c.LOD.MaxLevels)
	}
	if c.Data.Input == "" {
		switch c.Data.Generator {
		case "gaussian", "uniform":
		default:
			return fmt.Errorf("unknown data.generator %q", c.Data.Generator)
		}
		if c.Data.Points < 0 {
			return fmt.Errorf("data.points %d must not be negative", c.Data.Points)
		}
	}
	return nil
}

func checkColor(name string, c [4]float32) error {
	for _, v := range c {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %v: components must be in [0,1]", name, c)
		}
	}
	return nil
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
