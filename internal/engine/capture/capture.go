// Package capture writes frames and grid textures to image files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Capture saves timestamped screenshots into a directory.
type Capture struct {
	outputDir string
	prefix    string
	ext       string
	now       func() time.Time
}

// New creates a capture handler writing prefix_<timestamp>.png files.
func New(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		ext:       ".png",
		now:       time.Now,
	}
}

// SetFormat selects the file extension, ".png" or ".bmp".
func (c *Capture) SetFormat(ext string) error {
	ext = strings.ToLower(ext)
	if _, err := encoderFor(ext); err != nil {
		return err
	}
	c.ext = ext
	return nil
}

// Filename returns the path the next capture would be written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s%s", c.prefix, c.now().Format("2006-01-02_15-04-05.000"), c.ext)
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// FromPixels saves bottom-up RGBA rows as read back from OpenGL.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.FromImage(img)
}

// FromImage saves an image.
func (c *Capture) FromImage(img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := c.Filename()
	if err := WriteImage(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// FlipRows converts bottom-up RGBA rows (OpenGL origin) to an image with
// row 0 at the top.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// WriteImage encodes img to path, choosing PNG or BMP by extension.
func WriteImage(path string, img image.Image) error {
	encode, err := encoderFor(strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

type encoder func(w *os.File, img image.Image) error

func encoderFor(ext string) (encoder, error) {
	switch ext {
	case ".png":
		return func(w *os.File, img image.Image) error { return png.Encode(w, img) }, nil
	case ".bmp":
		return func(w *os.File, img image.Image) error { return bmp.Encode(w, img) }, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", ext)
	}
}
