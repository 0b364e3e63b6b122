package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV file with a header row. The x column is the first of
// x|lon|lng|long|longitude and the y column the first of
// y|lat|latitude (case-insensitive). Rows that fail to parse are counted
// in Set.Skipped.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	set.Name = path
	return set, nil
}

// ReadCSV parses CSV points from r.
func ReadCSV(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoPoints
	}
	if err != nil {
		return nil, err
	}

	ix, iy := columns(header)
	if ix == -1 || iy == -1 {
		return nil, errors.New("csv: x/y or lon/lat columns not found")
	}

	var positions []float64
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if ix >= len(row) || iy >= len(row) {
			skipped++
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(row[ix]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[iy]), 64)
		if errX != nil || errY != nil {
			skipped++
			continue
		}
		positions = append(positions, x, y)
	}

	if len(positions) == 0 {
		return nil, ErrNoPoints
	}
	return newSet("csv", positions, skipped), nil
}

func columns(header []string) (ix, iy int) {
	ix, iy = -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "lon", "lng", "long", "longitude":
			if ix == -1 {
				ix = i
			}
		case "y", "lat", "latitude":
			if iy == -1 {
				iy = i
			}
		}
	}
	return ix, iy
}
