// Package gridpack bins 2D points into a fixed-size square grid suitable
// for upload as an RGBA texture.
//
// Each cell keeps exactly one representative point: the first point (in
// input order) that falls into it. The cell stores the representative's
// sub-cell offset and a style payload, plus a counter of every point that
// mapped there. Later points are counted but otherwise dropped, which makes
// the grid a lossy, bounded-memory downsampling of clouds that are much
// denser than the screen.
package gridpack

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// Grid size limits. MaxSize matches the largest texture side we upload.
// DefaultSize is used when no viewport is known.
const (
	MinSize     = 1
	MaxSize     = 4096
	DefaultSize = 256
)

// ErrInvalidSize is returned for grid sizes outside [MinSize, MaxSize].
var ErrInvalidSize = errors.New("gridpack: invalid grid size")

// Cell is one grid slot.
type Cell struct {
	OffsetX float32 // sub-cell x of the representative, in [0,1)
	OffsetY float32 // sub-cell y of the representative, in [0,1)
	Count   uint32  // points mapped into the cell; 0 means absent
	Payload float32 // style value (point size) of the representative
}

// Present reports whether any point claimed the cell.
func (c Cell) Present() bool {
	return c.Count > 0
}

// Grid is a Size x Size array of cells stored row by row.
type Grid struct {
	Size  int
	Cells []Cell
}

// NewGrid allocates an empty grid.
func NewGrid(size int) (*Grid, error) {
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}
	return &Grid{
		Size:  size,
		Cells: make([]Cell, size*size),
	}, nil
}

// Shape returns the texture dimensions (width, height).
func (g *Grid) Shape() (int, int) {
	return g.Size, g.Size
}

// Index returns the linear index of cell (cx, cy).
func (g *Grid) Index(cx, cy int) int {
	return cx + cy*g.Size
}

// CellPosition maps a linear index back to its (x, y) cell coordinate.
func (g *Grid) CellPosition(idx int) (cx, cy int) {
	return idx % g.Size, idx / g.Size
}

// Point returns the normalized [0,1) position of the representative stored
// in cell idx. ok is false for absent cells.
func (g *Grid) Point(idx int) (nx, ny float64, ok bool) {
	c := g.Cells[idx]
	if !c.Present() {
		return 0, 0, false
	}
	cx, cy := g.CellPosition(idx)
	s := float64(g.Size)
	return (float64(cx) + float64(c.OffsetX)) / s, (float64(cy) + float64(c.OffsetY)) / s, true
}

// Occupied returns the number of present cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.Cells {
		if c.Present() {
			n++
		}
	}
	return n
}

// Total returns the sum of all collision counters, i.e. the number of
// points that were binned.
func (g *Grid) Total() int {
	n := 0
	for _, c := range g.Cells {
		n += int(c.Count)
	}
	return n
}

// MaxCount returns the largest collision counter.
func (g *Grid) MaxCount() uint32 {
	var m uint32
	for _, c := range g.Cells {
		if c.Count > m {
			m = c.Count
		}
	}
	return m
}

// RGBA8 encodes the grid as an 8-bit RGBA texture: offsets scaled to
// 0..255, the counter and payload saturated at 255.
func (g *Grid) RGBA8() []byte {
	data := make([]byte, len(g.Cells)*4)
	for i, c := range g.Cells {
		if !c.Present() {
			continue
		}
		ptr := i * 4
		data[ptr] = uint8(255 * c.OffsetX)
		data[ptr+1] = uint8(255 * c.OffsetY)
		data[ptr+2] = saturate(float64(c.Count))
		data[ptr+3] = saturate(float64(c.Payload))
	}
	return data
}

// RGBA32F encodes the grid as a float texture without quantization.
func (g *Grid) RGBA32F() []float32 {
	data := make([]float32, len(g.Cells)*4)
	for i, c := range g.Cells {
		ptr := i * 4
		data[ptr] = c.OffsetX
		data[ptr+1] = c.OffsetY
		data[ptr+2] = float32(c.Count)
		data[ptr+3] = c.Payload
	}
	return data
}

// Image wraps the 8-bit encoding as an image, row 0 at the top.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Size, g.Size))
	copy(img.Pix, g.RGBA8())
	return img
}

// Heatmap renders occupancy as a grayscale image with the data y axis
// pointing up. Brightness is log-scaled by collision count.
func (g *Grid) Heatmap() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Size, g.Size))
	maxLog := math.Log1p(float64(g.MaxCount()))
	for i, c := range g.Cells {
		if !c.Present() {
			continue
		}
		cx, cy := g.CellPosition(i)
		v := uint8(255)
		if maxLog > 0 {
			v = uint8(64 + 191*math.Log1p(float64(c.Count))/maxLog)
		}
		img.SetRGBA(cx, g.Size-1-cy, color.RGBA{R: v, G: v, B: v, A: 255})
	}
	return img
}

func saturate(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
