// Package math provides the matrix math the scatter renderer needs to map
// data-space windows onto clip space.
package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// WindowToClip maps the rectangle (x0,y0)-(x1,y1) onto clip space [-1,1]².
// Computed in float64 so that narrow windows far from the origin keep
// their precision until the final narrowing.
func WindowToClip(x0, y0, x1, y1 float64) Mat4 {
	sx := 2 / (x1 - x0)
	sy := 2 / (y1 - y0)
	return Mat4{
		float32(sx), 0, 0, 0,
		0, float32(sy), 0, 0,
		0, 0, -1, 0,
		float32(-(x1 + x0) / (x1 - x0)), float32(-(y1 + y0) / (y1 - y0)), 0, 1,
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
