package canvas

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// maxPPMLine is the longest line a plain PPM writer may emit
const maxPPMLine = 70

// ErrUnknownFormat is returned by Save for an unsupported file extension
var ErrUnknownFormat = errors.New("unknown image format")

// Canvas is a width x height grid of linear RGB colors, initially black
type Canvas struct {
	Width  int
	Height int
	pixels []core.Vec3
}

// New creates a black canvas
func New(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height, pixels: make([]core.Vec3, width*height)}
}

// Filled creates a canvas where every pixel has the given color
func Filled(width, height int, c core.Vec3) *Canvas {
	cv := New(width, height)
	for i := range cv.pixels {
		cv.pixels[i] = c
	}
	return cv
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Set writes a pixel; writes outside the canvas are ignored
func (c *Canvas) Set(x, y int, col core.Vec3) {
	if c.inside(x, y) {
		c.pixels[y*c.Width+x] = col
	}
}

// At returns the pixel color, or black outside the canvas
func (c *Canvas) At(x, y int) core.Vec3 {
	if !c.inside(x, y) {
		return core.Black
	}
	return c.pixels[y*c.Width+x]
}

// ClampByte scales a color channel to 0..255, rounding partial values up
func ClampByte(v float64) uint8 {
	x := v * 255
	switch {
	case x > 255:
		return 255
	case x < 0 || math.IsNaN(x):
		return 0
	default:
		return uint8(math.Ceil(x))
	}
}

// ToImage converts the canvas to an 8-bit RGBA image
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: ClampByte(p.X), G: ClampByte(p.Y), B: ClampByte(p.Z), A: 255})
		}
	}
	return img
}

// WritePPM serializes the canvas as a plain (P3) PPM with lines no longer than 70 characters
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("P3\n" + strconv.Itoa(c.Width) + " " + strconv.Itoa(c.Height) + "\n255\n"); err != nil {
		return errors.Wrap(err, "write ppm header")
	}

	var line strings.Builder
	flush := func() error {
		line.WriteByte('\n')
		_, err := bw.WriteString(line.String())
		line.Reset()
		return err
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.At(x, y)
			for _, v := range [3]float64{p.X, p.Y, p.Z} {
				s := strconv.Itoa(int(ClampByte(v)))
				if line.Len() > 0 && line.Len()+1+len(s) > maxPPMLine {
					if err := flush(); err != nil {
						return errors.Wrap(err, "write ppm pixels")
					}
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(s)
			}
		}
		if line.Len() > 0 {
			if err := flush(); err != nil {
				return errors.Wrap(err, "write ppm pixels")
			}
		}
	}
	return errors.Wrap(bw.Flush(), "flush ppm")
}

// Encode writes the canvas in the named format: "ppm", "png" or "bmp"
func (c *Canvas) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "ppm":
		return c.WritePPM(w)
	case "png":
		return errors.Wrap(png.Encode(w, c.ToImage()), "encode png")
	case "bmp":
		return errors.Wrap(bmp.Encode(w, c.ToImage()), "encode bmp")
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// FormatFromPath returns the image format implied by a file extension
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "ppm", "png", "bmp":
		return ext, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "extension %q of %s", ext, path)
	}
}

// Save writes the canvas to path, choosing the format from its extension.
// A leading ~ is expanded and missing parent directories are created.
func (c *Canvas) Save(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrapf(err, "expand %s", path)
	}
	format, err := FormatFromPath(expanded)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}

	file, err := os.Create(expanded)
	if err != nil {
		return errors.Wrapf(err, "create %s", expanded)
	}
	if err := c.Encode(file, format); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", expanded)
	}
	return errors.Wrapf(file.Close(), "close %s", expanded)
}
