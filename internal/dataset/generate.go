package dataset

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/scatter-gl/pkg/bounds"
)

// Gaussian returns n points drawn from a standard normal distribution on
// both axes.
func Gaussian(n int, seed int64) *Set {
	rng := rand.New(rand.NewSource(seed))
	positions := make([]float64, max(n, 0)*2)
	for i := range positions {
		positions[i] = rng.NormFloat64()
	}
	return newSet(fmt.Sprintf("gaussian(%d)", n), positions, 0)
}

// Uniform returns n points spread uniformly over box.
func Uniform(n int, seed int64, box bounds.Box) *Set {
	rng := rand.New(rand.NewSource(seed))
	positions := make([]float64, max(n, 0)*2)
	w, h := box.Width(), box.Height()
	for i := 0; i < len(positions); i += 2 {
		positions[i] = box.MinX() + rng.Float64()*w
		positions[i+1] = box.MinY() + rng.Float64()*h
	}
	return newSet(fmt.Sprintf("uniform(%d)", n), positions, 0)
}

// RandomSizes returns n sizes drawn uniformly from [lo, hi).
func RandomSizes(n int, seed int64, lo, hi float32) []float32 {
	rng := rand.New(rand.NewSource(seed))
	sizes := make([]float32, max(n, 0))
	for i := range sizes {
		sizes[i] = lo + rng.Float32()*(hi-lo)
	}
	return sizes
}

// RandomColors returns n random RGBA colours as a flat buffer of 4n
// components in [0,1).
func RandomColors(n int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	colors := make([]float32, max(n, 0)*4)
	for i := range colors {
		colors[i] = rng.Float32()
	}
	return colors
}
