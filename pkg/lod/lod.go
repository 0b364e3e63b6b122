// Package lod precomputes nested decimations of a point cloud so a renderer
// can draw fewer points when zoomed out, without rebuilding any spatial
// structure per frame.
//
// Points are binned with the gridpack rule (first point per cell wins) at
// grid sizes Base, 2*Base, 4*Base and so on. Because each finer grid splits
// every coarse cell into four, a coarse representative stays the first
// point of its fine cell, so each level is a superset of the one before.
// Only the newly added points are appended to the index buffer, which makes
// every level's range a prefix of the next and lets the draw step issue a
// single growing range.
package lod

import (
	"math"
	"sort"

	"github.com/Faultbox/scatter-gl/pkg/bounds"
)

// Default build options.
const (
	DefaultBase      = 16
	DefaultMaxLevels = 8
)

// Options control the level hierarchy.
type Options struct {
	// Base is the grid size of the coarsest level.
	Base int
	// MaxLevels caps the number of grid levels. A lossless level holding
	// the remaining points is appended when the cap is hit first.
	MaxLevels int
}

// DefaultOptions returns Base 16 with up to 8 grid levels (16..2048).
func DefaultOptions() Options {
	return Options{Base: DefaultBase, MaxLevels: DefaultMaxLevels}
}

func (o Options) normalized() Options {
	if o.Base < 1 {
		o.Base = DefaultBase
	}
	if o.MaxLevels < 1 {
		o.MaxLevels = DefaultMaxLevels
	}
	return o
}

// Range is a half-open [Start, End) range into Levels.Index.
type Range struct {
	Start, End int
}

// Len returns the number of points in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range selects nothing.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Level is one decimation step.
type Level struct {
	// GridSize is the grid resolution the level was binned at; 0 for the
	// lossless tail level. Strictly increasing across levels.
	GridSize int
	// PixelSize is the normalized edge length of one cell (1/GridSize),
	// 0 for the lossless level. The level is visually complete whenever a
	// screen pixel is at least this large.
	PixelSize float64
	// Range covers every point of this level and all coarser levels.
	Range Range
}

// Levels is a built hierarchy, ordered coarse to fine.
type Levels struct {
	Levels []Level
	// Index holds point indices reordered so each level is a prefix.
	Index []uint32
	// Box is the data extent used for binning.
	Box bounds.Box
	// Skipped counts points excluded for non-finite coordinates.
	Skipped int
}

// Build bins interleaved x,y positions into nested levels.
func Build(positions []float64, opts Options) *Levels {
	opts = opts.normalized()
	out := &Levels{}

	box, skipped := bounds.FromPositions(positions)
	out.Skipped = skipped
	count := len(positions) / 2
	finite := count - skipped
	if finite == 0 {
		out.Box = box
		return out
	}
	box = box.Widen(bounds.Epsilon)
	out.Box = box

	out.Index = make([]uint32, 0, finite)
	taken := make([]bool, count)
	claimed := make(map[int]struct{})

	size := opts.Base
	for level := 0; level < opts.MaxLevels && len(out.Index) < finite; level++ {
		clear(claimed)
		added := 0
		s := float64(size)
		last := size - 1

		for i := 0; i < count; i++ {
			x, y := positions[i*2], positions[i*2+1]
			if !bounds.Finite(x, y) {
				continue
			}
			nx, ny := box.Normalize(x, y)
			cx := min(int(math.Floor(nx*s)), last)
			cy := min(int(math.Floor(ny*s)), last)
			key := cx + cy*size
			if _, ok := claimed[key]; ok {
				continue
			}
			claimed[key] = struct{}{}
			if !taken[i] {
				taken[i] = true
				out.Index = append(out.Index, uint32(i))
				added++
			}
		}

		out.push(Level{
			GridSize:  size,
			PixelSize: 1 / s,
			Range:     Range{0, len(out.Index)},
		}, added)

		if size > math.MaxInt32/2 {
			break
		}
		size *= 2
	}

	if len(out.Index) < finite {
		before := len(out.Index)
		for i := 0; i < count; i++ {
			if !taken[i] && bounds.Finite(positions[i*2], positions[i*2+1]) {
				out.Index = append(out.Index, uint32(i))
			}
		}
		out.push(Level{Range: Range{0, len(out.Index)}}, len(out.Index)-before)
	}

	return out
}

// push appends a level, or folds it into the previous one when it adds no
// points: the previous set is then already complete at the finer size.
func (l *Levels) push(lv Level, added int) {
	if added == 0 && len(l.Levels) > 0 {
		prev := &l.Levels[len(l.Levels)-1]
		prev.GridSize = lv.GridSize
		prev.PixelSize = lv.PixelSize
		return
	}
	l.Levels = append(l.Levels, lv)
}

// Len returns the number of levels.
func (l *Levels) Len() int {
	return len(l.Levels)
}

// Count returns the number of points in the finest level.
func (l *Levels) Count() int {
	return len(l.Index)
}

// Query returns the range to draw for the current pixel size, expressed in
// the same normalized units as Level.PixelSize. It selects the coarsest
// level whose cells are no larger than a pixel; on an exact tie that level
// (the coarser candidate) wins. When even the finest grid is too coarse the
// finest level is returned. With no levels the range is empty.
func (l *Levels) Query(pixelSize float64) Range {
	n := len(l.Levels)
	if n == 0 {
		return Range{}
	}
	i := sort.Search(n, func(i int) bool {
		return l.Levels[i].PixelSize <= pixelSize
	})
	if i == n {
		i = n - 1
	}
	return l.Levels[i].Range
}

// Select returns the index slice for a range.
func (l *Levels) Select(r Range) []uint32 {
	if r.Empty() {
		return nil
	}
	return l.Index[r.Start:r.End]
}

// Reorder gathers a per-point attribute buffer with the given stride into
// level order, e.g. stride 2 for positions or 4 for RGBA colours.
func Reorder[T any](l *Levels, src []T, stride int) []T {
	dst := make([]T, 0, len(l.Index)*stride)
	for _, idx := range l.Index {
		off := int(idx) * stride
		dst = append(dst, src[off:off+stride]...)
	}
	return dst
}

// PixelSize returns the size of one device pixel in normalized data units
// for a view over the data box rendered across viewportPx device pixels
// along its longer side.
func PixelSize(view bounds.View, data bounds.Box, viewportPx int) float64 {
	if viewportPx <= 0 {
		return math.Inf(1)
	}
	return view.Scale(data) / float64(viewportPx)
}
