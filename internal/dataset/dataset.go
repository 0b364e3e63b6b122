// Package dataset produces point sets for the viewer and tools: seeded
// generators plus CSV and raw binary loaders.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/scatter-gl/internal/config"
	"github.com/Faultbox/scatter-gl/pkg/bounds"
)

// ErrNoPoints is returned when a source yields no usable points.
var ErrNoPoints = errors.New("dataset: no points")

// Set is an interleaved x,y point buffer with its extent.
type Set struct {
	Name      string
	Positions []float64
	Box       bounds.Box
	// Skipped counts rows or pairs that could not be parsed.
	Skipped int
}

// Len returns the number of points.
func (s *Set) Len() int {
	return len(s.Positions) / 2
}

func newSet(name string, positions []float64, skipped int) *Set {
	box, nonFinite := bounds.FromPositions(positions)
	return &Set{
		Name:      name,
		Positions: positions,
		Box:       box,
		Skipped:   skipped + nonFinite,
	}
}

// Load resolves the configured source: a file when Input is set,
// otherwise the named generator.
func Load(cfg config.DataConfig) (*Set, error) {
	if cfg.Input != "" {
		return LoadFile(cfg.Input)
	}
	switch cfg.Generator {
	case "", "gaussian":
		return Gaussian(cfg.Points, cfg.Seed), nil
	case "uniform":
		return Uniform(cfg.Points, cfg.Seed, bounds.New(-10, -10, 10, 10)), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
	}
}

// LoadFile picks a loader by extension: .bin and .f32 are raw float32
// pairs, anything else is CSV.
func LoadFile(path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin", ".f32":
		return LoadBinary(path)
	default:
		return LoadCSV(path)
	}
}
