package edt

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is an immutable binary image: width*height samples in row-major
// order. A true sample marks a feature pixel, whose distance is defined to
// be zero; the transform computes each remaining pixel's distance to the
// nearest feature.
//
// The fields are exported so callers holding a flat buffer can construct a
// Raster directly; both engines re-validate the shape before computing.
// Use [NewRaster] to validate eagerly.
type Raster struct {
	// Samples holds the feature mask, indexed by y*Width + x.
	Samples []bool

	// Width and Height are the raster dimensions in pixels.
	Width, Height int
}

// NewRaster builds a Raster and validates its shape. It returns
// [ErrEmptyDimension] if either dimension is less than 1, or
// [ErrShapeMismatch] if len(samples) != width*height.
//
// The sample slice is referenced, not copied; the caller must not mutate
// it while the raster is in use.
func NewRaster(samples []bool, width, height int) (*Raster, error) {
	r := &Raster{Samples: samples, Width: width, Height: height}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RasterFromGray adapts a grayscale image. Pixels with a luma value
// strictly greater than threshold become feature pixels.
func RasterFromGray(img *image.Gray, threshold uint8) *Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	samples := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[(y+b.Min.Y-img.Rect.Min.Y)*img.Stride:]
		for x := 0; x < w; x++ {
			samples[y*w+x] = row[x+b.Min.X-img.Rect.Min.X] > threshold
		}
	}
	return &Raster{Samples: samples, Width: w, Height: h}
}

// RasterFromImage adapts an arbitrary image by converting each pixel to
// luma first, then thresholding as in [RasterFromGray].
func RasterFromImage(img image.Image, threshold uint8) *Raster {
	if g, ok := img.(*image.Gray); ok {
		return RasterFromGray(g, threshold)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	samples := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.Gray)
			samples[y*w+x] = g.Y > threshold
		}
	}
	return &Raster{Samples: samples, Width: w, Height: h}
}

// Invert returns a new raster with the feature mask flipped: feature
// pixels become background and vice versa. The receiver is unchanged.
func (r *Raster) Invert() *Raster {
	inv := make([]bool, len(r.Samples))
	for i, b := range r.Samples {
		inv[i] = !b
	}
	return &Raster{Samples: inv, Width: r.Width, Height: r.Height}
}

// Len returns the number of samples (Width*Height for a valid raster).
func (r *Raster) Len() int { return len(r.Samples) }

// At reports whether the pixel at (x, y) is a feature pixel.
func (r *Raster) At(x, y int) bool { return r.Samples[y*r.Width+x] }

// Index returns the flat row-major index of (x, y).
func (r *Raster) Index(x, y int) int { return y*r.Width + x }

// validate checks the shape contract shared by both engines.
func (r *Raster) validate() error {
	if r.Width < 1 || r.Height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrEmptyDimension, r.Width, r.Height)
	}
	if len(r.Samples) != r.Width*r.Height {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrShapeMismatch, len(r.Samples), r.Width, r.Height)
	}
	return nil
}

// countFeatures returns the number of feature pixels.
func (r *Raster) countFeatures() int {
	n := 0
	for _, b := range r.Samples {
		if b {
			n++
		}
	}
	return n
}
