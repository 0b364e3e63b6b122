package scatter

import (
	"github.com/Faultbox/scatter-gl/pkg/bounds"
	"github.com/Faultbox/scatter-gl/pkg/gridpack"
	"github.com/Faultbox/scatter-gl/pkg/lod"
)

// Frame is an immutable snapshot of everything the draw step needs. A new
// Frame is built for every Update and swapped in whole.
type Frame struct {
	// Version increases by one with every published frame.
	Version uint64

	Style    Style
	View     bounds.View
	Viewport Viewport

	// Positions is the caller's buffer; Box is its finite extent.
	Positions []float64
	Box       bounds.Box
	Sizes     []float32
	Colors    []float32

	// Grid is the packed grid over View, set in cluster mode only.
	Grid *gridpack.Result

	// LOD is the decimation hierarchy over Box.
	LOD *lod.Levels
	// Level-ordered buffers for the LOD path. Positions are normalized to
	// Box so they survive narrowing to float32.
	LODPositions []float32
	LODSizes     []float32
	LODColors    []float32
	// StylesVersion is the Version of the frame that last rebuilt
	// LODSizes and LODColors.
	StylesVersion uint64
}

// Count returns the number of input points.
func (f *Frame) Count() int {
	return len(f.Positions) / 2
}

// DevicePixels returns the viewport's longer side in device pixels. With
// no viewport it assumes a canvas the size of the default grid.
func (f *Frame) DevicePixels() int {
	px := int(float64(max(f.Viewport.Width, f.Viewport.Height)) * f.Style.PixelRatio)
	if px <= 0 {
		return gridpack.SizeFor(0, 0, 1, f.Style.MaxGridSize)
	}
	return px
}

// PixelSize returns the current size of one device pixel in units
// normalized to the data box.
func (f *Frame) PixelSize() float64 {
	return lod.PixelSize(f.View, f.Box, f.DevicePixels())
}

// Visible returns the LOD range to draw at the current view and viewport.
func (f *Frame) Visible() lod.Range {
	if f.LOD == nil {
		return lod.Range{}
	}
	return f.LOD.Query(f.PixelSize())
}

// SizeOf returns the size of point i.
func (f *Frame) SizeOf(i int) float32 {
	if len(f.Sizes) > 0 {
		return f.Sizes[i]
	}
	return f.Style.Size
}
