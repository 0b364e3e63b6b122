package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/scatter-gl/internal/config"
	"github.com/Faultbox/scatter-gl/pkg/bounds"
)

func TestGaussian(t *testing.T) {
	a := Gaussian(1000, 7)
	b := Gaussian(1000, 7)

	if a.Len() != 1000 {
		t.Fatalf("expected 1000 points, got %d", a.Len())
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatal("same seed should give the same points")
		}
	}
	if !a.Box.Valid() || a.Box.Width() <= 0 {
		t.Errorf("expected a non-empty box, got %v", a.Box)
	}
}

func TestGaussianZero(t *testing.T) {
	s := Gaussian(0, 1)
	if s.Len() != 0 {
		t.Errorf("expected no points, got %d", s.Len())
	}
}

func TestUniformStaysInBox(t *testing.T) {
	box := bounds.New(-10, 5, 10, 6)
	s := Uniform(5000, 3, box)
	for i := 0; i < s.Len(); i++ {
		x, y := s.Positions[i*2], s.Positions[i*2+1]
		if !box.Contains(x, y) {
			t.Fatalf("point %d (%v,%v) outside %v", i, x, y, box)
		}
	}
}

func TestRandomStyles(t *testing.T) {
	sizes := RandomSizes(100, 1, 2, 10)
	for i, s := range sizes {
		if s < 2 || s >= 10 {
			t.Fatalf("size %d = %v out of [2,10)", i, s)
		}
	}
	if got := len(RandomColors(100, 1)); got != 400 {
		t.Errorf("expected 400 colour components, got %d", got)
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		skipped int
	}{
		{
			name:  "x y",
			input: "id,x,y\n1,0.5,1.5\n2,-3,4\n",
			want:  []float64{0.5, 1.5, -3, 4},
		},
		{
			name:  "lat lon order",
			input: "Latitude, Longitude\n10,20\n",
			want:  []float64{20, 10},
		},
		{
			name:    "bad rows",
			input:   "lng,lat\n1,2\nfoo,3\n4\n5,6\n",
			want:    []float64{1, 2, 5, 6},
			skipped: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadCSV failed: %v", err)
			}
			if len(s.Positions) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, s.Positions)
			}
			for i := range tt.want {
				if s.Positions[i] != tt.want[i] {
					t.Errorf("value %d: expected %v, got %v", i, tt.want[i], s.Positions[i])
				}
			}
			if s.Skipped != tt.skipped {
				t.Errorf("expected %d skipped, got %d", tt.skipped, s.Skipped)
			}
		})
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, ErrNoPoints) {
		t.Errorf("empty input: expected ErrNoPoints, got %v", err)
	}
	if _, err := ReadCSV(strings.NewReader("a,b\n1,2\n")); err == nil {
		t.Error("expected error for missing columns")
	}
	if _, err := ReadCSV(strings.NewReader("x,y\nfoo,bar\n")); !errors.Is(err, ErrNoPoints) {
		t.Errorf("no valid rows: expected ErrNoPoints, got %v", err)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.bin")
	positions := []float64{1, 2, -0.5, 0.25, 1e3, -1e3}

	var buf bytes.Buffer
	if err := WriteBinary(&buf, positions); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", s.Len())
	}
	for i := range positions {
		if s.Positions[i] != positions[i] {
			t.Errorf("value %d: expected %v, got %v", i, positions[i], s.Positions[i])
		}
	}
	if s.Box.MinX() != -0.5 || s.Box.MaxY() != 2 {
		t.Errorf("unexpected box %v", s.Box)
	}
}

func TestLoadBinaryTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, make([]byte, 12), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadBinary(path); err == nil {
		t.Error("expected error for partial pair")
	}
}

func TestLoad(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "pts.csv")
	if err := os.WriteFile(csvPath, []byte("x,y\n1,1\n2,2\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name    string
		cfg     config.DataConfig
		want    int
		wantErr bool
	}{
		{"gaussian", config.DataConfig{Generator: "gaussian", Points: 10, Seed: 1}, 10, false},
		{"uniform", config.DataConfig{Generator: "uniform", Points: 20, Seed: 1}, 20, false},
		{"file wins", config.DataConfig{Generator: "gaussian", Points: 10, Input: csvPath}, 2, false},
		{"unknown", config.DataConfig{Generator: "spiral"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if err == nil && s.Len() != tt.want {
				t.Errorf("expected %d points, got %d", tt.want, s.Len())
			}
		})
	}
}
