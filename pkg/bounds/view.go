package bounds

import "math"

// minViewExtent keeps zooming from collapsing the window to nothing.
const minViewExtent = 1e-9

// View is the visible data-space window. It is distinct from the data
// extent and changes only through explicit Pan and Zoom calls.
type View struct {
	Box
}

// ViewOf returns a window showing exactly the given box.
func ViewOf(b Box) View {
	return View{b.Widen(Epsilon)}
}

// NewView returns a window with the given corners.
func NewView(x0, y0, x1, y1 float64) View {
	return ViewOf(New(x0, y0, x1, y1))
}

// Pan shifts the window by a drag of (dx, dy) screen pixels on a canvas of
// widthPx x heightPx. Screen y grows downward, data y grows upward, so a
// drag to the right and down reveals data to the left and above.
func (v View) Pan(dx, dy float64, widthPx, heightPx int) View {
	if widthPx <= 0 || heightPx <= 0 {
		return v
	}
	ux := dx * v.Width() / float64(widthPx)
	uy := dy * v.Height() / float64(heightPx)
	v.X.Lo -= ux
	v.X.Hi -= ux
	v.Y.Lo += uy
	v.Y.Hi += uy
	return v
}

// Zoom grows (dz > 0) or shrinks (dz < 0) the window around an anchor given
// in screen-relative coordinates: rx, ry in [0,1] with ry measured from the
// top edge. The data point under the anchor stays fixed.
func (v View) Zoom(rx, ry, dz float64) View {
	w, h := v.Width(), v.Height()
	x0 := v.X.Lo - rx*w*dz
	x1 := v.X.Hi + (1-rx)*w*dz
	y0 := v.Y.Lo - (1-ry)*h*dz
	y1 := v.Y.Hi + ry*h*dz
	if x1-x0 < minViewExtent || y1-y0 < minViewExtent {
		return v
	}
	v.X.Lo, v.X.Hi = x0, x1
	v.Y.Lo, v.Y.Hi = y0, y1
	return v
}

// Scale returns how much of the data box the window spans, as the larger
// of the two axis ratios. 1 means the whole box is in view.
func (v View) Scale(data Box) float64 {
	if !data.Valid() {
		return 1
	}
	return math.Max(v.Width()/data.Width(), v.Height()/data.Height())
}

// ScreenToData maps a pixel position (origin top-left) to data space.
func (v View) ScreenToData(px, py float64, widthPx, heightPx int) (x, y float64) {
	if widthPx <= 0 || heightPx <= 0 {
		return v.X.Lo, v.Y.Lo
	}
	x = v.X.Lo + px/float64(widthPx)*v.Width()
	y = v.Y.Hi - py/float64(heightPx)*v.Height()
	return x, y
}
