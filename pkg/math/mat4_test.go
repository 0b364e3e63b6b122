package math

import (
	"testing"
)

// apply transforms a point on the z=0 plane (w=1).
func apply(m Mat4, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

func TestWindowToClip(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		inX, inY       float32
		wantX, wantY   float32
	}{
		{"unit", 0, 0, 1, 1, 0.5, 0.5, 0, 0},
		{"corner", -10, -10, 10, 10, 10, -10, 1, -1},
		{"offset", 0.25, 0.5, 0.75, 1, 0.25, 1, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := apply(WindowToClip(tt.x0, tt.y0, tt.x1, tt.y1), tt.inX, tt.inY)
			if abs(x-tt.wantX) > 1e-6 || abs(y-tt.wantY) > 1e-6 {
				t.Errorf("got (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestWindowToClipDepth(t *testing.T) {
	m := WindowToClip(0, 0, 1, 1)
	if m[10] != -1 || m[15] != 1 {
		t.Errorf("expected flat depth with w=1, got m10=%v m15=%v", m[10], m[15])
	}
}

func TestPtr(t *testing.T) {
	m := WindowToClip(0, 0, 2, 2)
	if p := m.Ptr(); *p != m[0] {
		t.Errorf("expected pointer to first element %v, got %v", m[0], *p)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
