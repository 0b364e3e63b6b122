// Package scatter is the render target that ties packing and level of
// detail to one canvas. Update resolves a request against the current
// state, rebuilds what changed off to the side, and publishes the result
// as a new Frame; the draw step reads the latest Frame without locking.
package scatter

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scatter-gl/internal/logger"
	"github.com/Faultbox/scatter-gl/pkg/bounds"
	"github.com/Faultbox/scatter-gl/pkg/gridpack"
	"github.com/Faultbox/scatter-gl/pkg/lod"
)

// Request validation errors.
var (
	ErrOddPositions = errors.New("scatter: positions length is odd")
	ErrSizeMismatch = errors.New("scatter: per-point buffer does not match point count")
)

// Target owns the frames for one canvas. Update may be called from any
// goroutine; calls are serialized. Current is safe to call concurrently
// with Update.
type Target struct {
	mu      sync.Mutex
	frame   atomic.Pointer[Frame]
	viewSet bool
	log     *zap.Logger
}

// New returns a target whose first frame is empty and styled with style.
func New(style Style) *Target {
	t := &Target{log: logger.Named("scatter")}
	t.frame.Store(&Frame{
		Style: style,
		Box:   bounds.Empty(),
		View:  bounds.ViewOf(bounds.Empty()),
	})
	return t
}

// Current returns the latest published frame.
func (t *Target) Current() *Frame {
	return t.frame.Load()
}

// Update applies req and publishes a new frame. On error the current
// frame is left untouched.
func (t *Target) Update(req RenderRequest) (*Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.frame.Load()
	next := *prev
	next.Version++
	next.Style = prev.Style.merge(req)

	positionsChanged := req.Positions != nil
	if positionsChanged {
		if len(req.Positions)%2 != 0 {
			return nil, ErrOddPositions
		}
		next.Positions = req.Positions
	}
	n := next.Count()

	if req.Sizes != nil {
		next.Sizes = req.Sizes
	}
	if req.Colors != nil {
		next.Colors = req.Colors
	}
	if len(next.Sizes) > 0 && len(next.Sizes) != n {
		return nil, fmt.Errorf("%w: %d sizes for %d points", ErrSizeMismatch, len(next.Sizes), n)
	}
	if len(next.Colors) > 0 && len(next.Colors) != n*4 {
		return nil, fmt.Errorf("%w: %d colour components for %d points", ErrSizeMismatch, len(next.Colors), n)
	}
	if req.Viewport != nil {
		next.Viewport = *req.Viewport
	}

	lodChanged := positionsChanged || next.Style.LOD != prev.Style.LOD
	if lodChanged {
		t.buildLOD(&next)
	}

	switch {
	case req.View != nil:
		next.View = *req.View
		t.viewSet = true
	case positionsChanged && !t.viewSet:
		next.View = bounds.ViewOf(next.Box)
	}

	if lodChanged || req.Sizes != nil || req.Colors != nil || req.Size != nil {
		reorderStyles(&next)
		next.StylesVersion = next.Version
	}

	switch {
	case !next.Style.Cluster:
		next.Grid = nil
	case prev.Grid == nil || positionsChanged || req.Sizes != nil || packChanged(prev, &next):
		if err := t.pack(&next); err != nil {
			return nil, err
		}
	}

	t.frame.Store(&next)
	return &next, nil
}

func (t *Target) buildLOD(f *Frame) {
	start := time.Now()
	f.LOD = lod.Build(f.Positions, f.Style.LOD)
	f.Box = f.LOD.Box
	if f.LOD.Skipped > 0 {
		t.log.Warn("skipped non-finite points",
			zap.Int("skipped", f.LOD.Skipped),
			zap.Int("points", f.Count()))
	}

	f.LODPositions = make([]float32, 0, len(f.LOD.Index)*2)
	for _, idx := range f.LOD.Index {
		nx, ny := f.Box.Normalize(f.Positions[idx*2], f.Positions[idx*2+1])
		f.LODPositions = append(f.LODPositions, unit32(nx), unit32(ny))
	}

	t.log.Debug("lod built",
		zap.Int("points", f.Count()),
		zap.Int("levels", f.LOD.Len()),
		zap.Stringer("box", f.Box),
		zap.Duration("took", time.Since(start)))
}

// unit32 narrows a normalized coordinate without rounding up to 1.
func unit32(v float64) float32 {
	f := float32(v)
	if f >= 1 {
		return math.Nextafter32(1, 0)
	}
	return f
}

// reorderStyles gathers per-point sizes and colours into LOD order.
func reorderStyles(f *Frame) {
	f.LODSizes, f.LODColors = nil, nil
	if f.LOD == nil {
		return
	}
	if len(f.Sizes) > 0 {
		f.LODSizes = lod.Reorder(f.LOD, f.Sizes, 1)
	}
	if len(f.Colors) > 0 {
		f.LODColors = lod.Reorder(f.LOD, f.Colors, 4)
	}
}

// packChanged reports whether anything the grid depends on differs
// between two frames sharing the same positions.
func packChanged(prev, next *Frame) bool {
	return prev.View != next.View ||
		prev.Viewport != next.Viewport ||
		prev.Style.Size != next.Style.Size ||
		prev.Style.GridSize != next.Style.GridSize ||
		prev.Style.MaxGridSize != next.Style.MaxGridSize ||
		prev.Style.PixelRatio != next.Style.PixelRatio
}

// pack rebuilds the grid over the current view.
func (t *Target) pack(f *Frame) error {
	size := f.Style.GridSize
	if size <= 0 {
		size = gridpack.SizeFor(f.Viewport.Width, f.Viewport.Height, f.Style.PixelRatio, f.Style.MaxGridSize)
	}

	start := time.Now()
	res, err := gridpack.Pack(f.Positions, f.View.Box, size, f.SizeOf)
	if err != nil {
		return fmt.Errorf("packing %d points at %d: %w", f.Count(), size, err)
	}
	f.Grid = res

	t.log.Debug("grid packed",
		zap.Int("size", size),
		zap.Int("occupied", res.Occupied()),
		zap.Int("outside", res.Outside),
		zap.Duration("took", time.Since(start)))
	return nil
}
