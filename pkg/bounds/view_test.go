package bounds

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPan(t *testing.T) {
	v := NewView(-10, -10, 10, 10)

	// Dragging right by a quarter of the canvas moves the window left.
	got := v.Pan(100, 0, 400, 400)
	if !approx(got.MinX(), -15) || !approx(got.MaxX(), 5) {
		t.Errorf("expected x range [-15, 5], got [%v, %v]", got.MinX(), got.MaxX())
	}

	// Dragging down moves the window up in data space.
	got = v.Pan(0, 200, 400, 400)
	if !approx(got.MinY(), 0) || !approx(got.MaxY(), 20) {
		t.Errorf("expected y range [0, 20], got [%v, %v]", got.MinY(), got.MaxY())
	}

	if v.MinX() != -10 {
		t.Error("Pan must not modify the receiver")
	}
}

func TestPanZeroCanvas(t *testing.T) {
	v := NewView(0, 0, 1, 1)
	if got := v.Pan(10, 10, 0, 0); got != v {
		t.Errorf("expected unchanged view, got %s", got)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	v := NewView(0, 0, 100, 100)
	ax, ay := v.ScreenToData(25, 75, 200, 200)

	got := v.Zoom(25.0/200, 75.0/200, -0.5)
	bx, by := got.ScreenToData(25, 75, 200, 200)

	if !approx(ax, bx) || !approx(ay, by) {
		t.Errorf("anchor moved from (%v, %v) to (%v, %v)", ax, ay, bx, by)
	}
	if !approx(got.Width(), 50) || !approx(got.Height(), 50) {
		t.Errorf("expected 50x50 window, got %vx%v", got.Width(), got.Height())
	}
}

func TestZoomOut(t *testing.T) {
	v := NewView(0, 0, 10, 10)
	got := v.Zoom(0.5, 0.5, 1)
	if want := NewView(-5, -5, 15, 15); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestZoomCollapse(t *testing.T) {
	v := NewView(0, 0, 10, 10)
	if got := v.Zoom(0.5, 0.5, -1); got != v {
		t.Errorf("expected collapse to be rejected, got %s", got)
	}
}

func TestScale(t *testing.T) {
	data := New(0, 0, 100, 50)
	v := NewView(0, 0, 25, 25)
	if s := v.Scale(data); !approx(s, 0.5) {
		t.Errorf("expected scale 0.5, got %v", s)
	}
}
