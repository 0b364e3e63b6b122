// Package viewer runs the interactive scatter window: input drives the
// view, the scatter target rebuilds on change, and the renderer draws the
// latest frame once per loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scatter-gl/internal/config"
	"github.com/Faultbox/scatter-gl/internal/dataset"
	"github.com/Faultbox/scatter-gl/internal/engine/capture"
	"github.com/Faultbox/scatter-gl/internal/engine/input"
	"github.com/Faultbox/scatter-gl/internal/engine/renderer"
	"github.com/Faultbox/scatter-gl/internal/engine/window"
	"github.com/Faultbox/scatter-gl/internal/logger"
	"github.com/Faultbox/scatter-gl/internal/scatter"
	"github.com/Faultbox/scatter-gl/pkg/bounds"
)

const title = "scatter-gl"

// Viewer is the interactive viewer instance.
type Viewer struct {
	cfg      *config.Config
	set      *dataset.Set
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	target   *scatter.Target
	shots    *capture.Capture
	log      *zap.Logger

	multicolor bool
	randomSize bool
}

// New opens the window and uploads the first frame.
func New(cfg *config.Config, set *dataset.Set) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		set:   set,
		input: input.New(),
		shots: capture.New("screenshots", "scatter"),
		log:   logger.Named("viewer"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:        dw,
		Height:       dh,
		FloatTexture: cfg.Render.FloatTexture,
		Background:   [4]float32{1, 1, 1, 1},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.target = scatter.New(styleFrom(cfg))
	w, h := v.window.GetSize()
	if _, err := v.target.Update(scatter.RenderRequest{
		Positions:  set.Positions,
		Viewport:   &scatter.Viewport{Width: w, Height: h},
		PixelRatio: scatter.Ptr(v.window.PixelRatio()),
	}); err != nil {
		v.Close()
		return nil, fmt.Errorf("initial update: %w", err)
	}

	v.log.Info("viewer ready",
		zap.String("data", set.Name),
		zap.Int("points", set.Len()),
		zap.Stringer("box", set.Box),
	)
	return v, nil
}

// styleFrom resolves the configured render options over the defaults.
func styleFrom(cfg *config.Config) scatter.Style {
	s := scatter.Defaults()
	s.Size = cfg.Render.PointSize
	s.Color = cfg.Render.Color
	s.BorderSize = cfg.Render.BorderSize
	s.BorderColor = cfg.Render.BorderColor
	s.Cluster = cfg.Render.Cluster
	s.GridSize = cfg.Render.GridSize
	s.MaxGridSize = cfg.Render.MaxGridSize
	s.LOD.Base = cfg.LOD.Base
	s.LOD.MaxLevels = cfg.LOD.MaxLevels
	return s
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		if err := v.handle(v.input.Events()); err != nil {
			return err
		}

		f := v.target.Current()
		v.renderer.Draw(f)

		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Window.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("%s  %d fps  %d/%d points",
					title, frameCount, v.renderer.Drawn, f.Count()))
			}
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Int("drawn", v.renderer.Drawn))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handle applies one frame's events. View changes are batched into a
// single Update.
func (v *Viewer) handle(events []input.Event) error {
	f := v.target.Current()
	view := f.View
	viewChanged := false
	changed := false
	var req scatter.RenderRequest
	w, h := v.window.GetSize()

	for _, e := range events {
		switch e.Type {
		case input.EventWindowResize:
			dw, dh := v.window.DrawableSize()
			v.renderer.Resize(dw, dh)
			w, h = e.Width, e.Height
			req.Viewport = &scatter.Viewport{Width: w, Height: h}
			req.PixelRatio = scatter.Ptr(v.window.PixelRatio())
			changed = true

		case input.EventPan:
			view = view.Pan(e.DX, e.DY, w, h)
			viewChanged = true

		case input.EventZoom:
			if w > 0 && h > 0 {
				view = view.Zoom(float64(e.MouseX)/float64(w), float64(e.MouseY)/float64(h), e.DZ)
				viewChanged = true
			}

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_C:
				req.Cluster = scatter.Ptr(!f.Style.Cluster)
				v.log.Info("cluster mode", zap.Bool("enabled", !f.Style.Cluster))
				changed = true
			case sdl.SCANCODE_R:
				view = bounds.ViewOf(f.Box)
				viewChanged = true
			case sdl.SCANCODE_M:
				v.multicolor = !v.multicolor
				req.Colors = []float32{}
				if v.multicolor {
					req.Colors = dataset.RandomColors(v.set.Len(), time.Now().UnixNano())
				}
				changed = true
			case sdl.SCANCODE_S:
				v.randomSize = !v.randomSize
				req.Sizes = []float32{}
				if v.randomSize {
					req.Sizes = dataset.RandomSizes(v.set.Len(), time.Now().UnixNano(), 1, 3*f.Style.Size)
				}
				changed = true
			}
		}
	}

	if viewChanged {
		req.View = &view
		changed = true
	}
	if !changed {
		return nil
	}
	if _, err := v.target.Update(req); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.FromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
