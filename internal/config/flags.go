package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and FPS display")
	flagCluster    = flag.Bool("cluster", false, "Start in packed-grid (cluster) mode")
	flagGrid       = flag.Int("grid", 0, "Force packed grid size (power of two)")
	flagPoints     = flag.Int("points", 0, "Number of generated points")
	flagInput      = flag.String("input", "", "Load points from a CSV or .bin file")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Window.ShowFPS = true
	}
	if *flagCluster {
		cfg.Render.Cluster = true
	}
	if *flagGrid > 0 {
		cfg.Render.GridSize = *flagGrid
	}
	if *flagPoints > 0 {
		cfg.Data.Points = *flagPoints
	}
	if *flagInput != "" {
		cfg.Data.Input = *flagInput
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
