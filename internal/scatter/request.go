package scatter

import (
	"github.com/Faultbox/scatter-gl/pkg/bounds"
	"github.com/Faultbox/scatter-gl/pkg/lod"
)

// Style is the resolved set of options a frame is drawn with. Values are
// copied on every merge, so a Style handed to New is never mutated.
type Style struct {
	Size        float32
	Color       [4]float32
	BorderSize  float32
	BorderColor [4]float32
	// Cluster selects the packed-grid path instead of the LOD path.
	Cluster    bool
	PixelRatio float64
	// GridSize forces the packed grid side; 0 derives it from the viewport.
	GridSize    int
	MaxGridSize int
	LOD         lod.Options
}

// Defaults returns the built-in style: 5px points in translucent blue,
// no border, LOD mode.
func Defaults() Style {
	return Style{
		Size:        5,
		Color:       [4]float32{0, 100.0 / 255, 200.0 / 255, 0.75},
		BorderColor: [4]float32{0, 0, 0, 1},
		PixelRatio:  1,
		MaxGridSize: 256,
		LOD:         lod.DefaultOptions(),
	}
}

// Viewport is the canvas size in CSS-like pixels; device pixels are
// Width*PixelRatio.
type Viewport struct {
	Width, Height int
}

// RenderRequest is a partial update. Nil fields keep the current value.
// Per-point slices (Sizes, Colors) must match the point count; pass an
// empty non-nil slice to drop them in favour of Size or Color.
type RenderRequest struct {
	// Positions is an interleaved x,y buffer owned by the caller and read
	// without copying.
	Positions []float64
	// View sets the visible window. Until a view is set it follows the
	// data extent.
	View *bounds.View

	Size   *float32
	Sizes  []float32
	Color  *[4]float32
	Colors []float32

	BorderSize  *float32
	BorderColor *[4]float32

	Cluster    *bool
	PixelRatio *float64
	GridSize   *int
	Viewport   *Viewport
}

// Ptr returns a pointer to v, for filling RenderRequest fields inline.
func Ptr[T any](v T) *T {
	return &v
}

// merge returns s with the request's style fields applied.
func (s Style) merge(req RenderRequest) Style {
	if req.Size != nil {
		s.Size = *req.Size
	}
	if req.Color != nil {
		s.Color = *req.Color
	}
	if req.BorderSize != nil {
		s.BorderSize = *req.BorderSize
	}
	if req.BorderColor != nil {
		s.BorderColor = *req.BorderColor
	}
	if req.Cluster != nil {
		s.Cluster = *req.Cluster
	}
	if req.PixelRatio != nil && *req.PixelRatio > 0 {
		s.PixelRatio = *req.PixelRatio
	}
	if req.GridSize != nil {
		s.GridSize = *req.GridSize
	}
	return s
}
