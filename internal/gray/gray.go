// Package gray renders distance fields as 8-bit grayscale images for
// visualization. It consumes engine output only; no transform logic
// lives here.
package gray

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/edt"
)

// FromField converts a distance field to a grayscale image. Values are
// normalized by the largest finite distance so the farthest pixel maps
// to 255. +Inf values clamp to 255. A field with no finite positive
// value (all features, or all +Inf) renders black.
func FromField(f *edt.Field) *image.Gray {
	w, h := f.Width(), f.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))

	max := f.Max()
	if max == 0 {
		return img
	}
	for i, v := range f.Values() {
		g := 255.0
		if !math.IsInf(v, 1) {
			g = v / max * 255
		}
		img.Pix[(i/w)*img.Stride+i%w] = uint8(g)
	}
	return img
}

// wavefrontColor marks Trial pixels in [Overlay] output.
var wavefrontColor = color.RGBA{R: 255, A: 255}

// Overlay renders the field like [FromField] and paints the given
// wavefront positions on top in red. Used to visualize Fast Marching
// progress snapshots.
func Overlay(f *edt.Field, band []edt.Pos) *image.RGBA {
	g := FromField(f)
	img := image.NewRGBA(g.Bounds())
	draw.Draw(img, img.Bounds(), g, image.Point{}, draw.Src)
	for _, p := range band {
		img.SetRGBA(p.X, p.Y, wavefrontColor)
	}
	return img
}

// Scale resizes an image by an integer factor with nearest-neighbor
// interpolation, keeping pixel boundaries crisp. Useful for inspecting
// small test fields. A factor below 2 returns the input converted to
// RGBA at original size.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	if factor < 2 {
		factor = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Smooth resizes an image to the given size with Catmull-Rom
// interpolation, for presentation-quality output.
func Smooth(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
