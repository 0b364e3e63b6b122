package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// LoadBinary reads a file of little-endian float32 x,y pairs. A trailing
// partial pair is an error.
func LoadBinary(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of 8 bytes", path, len(data))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPoints)
	}

	positions := make([]float64, len(data)/4)
	for i := range positions {
		positions[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
	}
	return newSet(path, positions, 0), nil
}

// WriteBinary writes positions as little-endian float32 pairs.
func WriteBinary(w io.Writer, positions []float64) error {
	n := len(positions) &^ 1
	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(positions[i])))
	}
	_, err := w.Write(buf)
	return err
}
