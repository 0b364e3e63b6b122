package gridpack

import (
	"math"

	"github.com/Faultbox/scatter-gl/pkg/bounds"
)

// SizeFunc returns the style payload for point i.
type SizeFunc func(i int) float32

// ConstSize returns a SizeFunc that yields s for every point.
func ConstSize(s float32) SizeFunc {
	return func(int) float32 { return s }
}

// Result is a packed grid plus the points that could not be placed.
type Result struct {
	*Grid

	// Skipped counts points with a non-finite coordinate.
	Skipped int
	// Outside counts points that fell outside the packing box.
	Outside int
}

// Packer packs point sets into grids of a fixed size.
type Packer struct {
	Size   int
	SizeOf SizeFunc
}

// Pack bins interleaved x,y positions against box.
func (p Packer) Pack(positions []float64, box bounds.Box) (*Result, error) {
	return Pack(positions, box, p.Size, p.SizeOf)
}

// Pack bins interleaved x,y positions into a size x size grid relative to
// box. The first point to reach a cell becomes its representative and
// stores its sub-cell offset and sizeOf(i); every later point in the same
// cell only increments the counter. A box with zero extent is widened by
// bounds.Epsilon. sizeOf may be nil.
func Pack(positions []float64, box bounds.Box, size int, sizeOf SizeFunc) (*Result, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	res := &Result{Grid: grid}

	box = box.Widen(bounds.Epsilon)
	s := float64(size)
	last := size - 1

	count := len(positions) / 2
	for i := 0; i < count; i++ {
		x, y := positions[i*2], positions[i*2+1]
		if !bounds.Finite(x, y) {
			res.Skipped++
			continue
		}
		if !box.Contains(x, y) {
			res.Outside++
			continue
		}

		nx, ny := box.Normalize(x, y)
		tx, ty := nx*s, ny*s
		cx := min(int(math.Floor(tx)), last)
		cy := min(int(math.Floor(ty)), last)

		cell := &grid.Cells[cx+cy*size]
		if cell.Count > 0 {
			cell.Count++
			continue
		}

		cell.OffsetX = frac32(tx - float64(cx))
		cell.OffsetY = frac32(ty - float64(cy))
		cell.Count = 1
		if sizeOf != nil {
			cell.Payload = sizeOf(i)
		}
	}

	return res, nil
}

// frac32 narrows a fraction in [0,1) to float32 without rounding up to 1.
func frac32(f float64) float32 {
	v := float32(f)
	if v >= 1 {
		return math.Nextafter32(1, 0)
	}
	return v
}

// SizeFor picks the grid resolution class for a viewport: the next power
// of two covering the larger device-pixel side, clamped to
// [MinSize, maxSize]. An empty viewport yields DefaultSize (capped by
// maxSize). Grid size never depends on point count.
func SizeFor(widthPx, heightPx int, pixelRatio float64, maxSize int) int {
	if maxSize <= 0 || maxSize > MaxSize {
		maxSize = MaxSize
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	side := float64(max(widthPx, heightPx)) * pixelRatio
	if side <= 0 {
		return min(DefaultSize, maxSize)
	}
	size := MinSize
	for float64(size) < side && size < maxSize {
		size <<= 1
	}
	return min(size, maxSize)
}
