package edt

import "math"

// Field is a dense distance field: one non-negative float64 per pixel, in
// the same row-major layout as the input [Raster]. Pixels that no feature
// can reach (possible only when the raster has zero feature pixels) hold
// +Inf.
//
// A Field returned by an engine is owned exclusively by the caller; the
// engine keeps no reference to it.
type Field struct {
	width, height int
	values        []float64
}

// newField allocates a field of the given shape with every value set to v.
func newField(width, height int, v float64) *Field {
	values := make([]float64, width*height)
	if v != 0 {
		for i := range values {
			values[i] = v
		}
	}
	return &Field{width: width, height: height, values: values}
}

// Width returns the field width in pixels.
func (f *Field) Width() int { return f.width }

// Height returns the field height in pixels.
func (f *Field) Height() int { return f.height }

// At returns the distance at (x, y).
func (f *Field) At(x, y int) float64 { return f.values[y*f.width+x] }

// Values returns the underlying row-major value slice.
//
// For a field returned by an engine the slice is the caller's to keep.
// For the partial field passed to a [ProgressFunc] it is the engine's
// working buffer and must be treated as read-only.
func (f *Field) Values() []float64 { return f.values }

// Max returns the largest finite value in the field, or 0 if there is
// none. Useful for normalizing a field for visualization.
func (f *Field) Max() float64 {
	max := 0.0
	for _, v := range f.values {
		if v > max && !math.IsInf(v, 1) {
			max = v
		}
	}
	return max
}

// sqrt replaces every value with its square root in place. +Inf stays +Inf.
func (f *Field) sqrt() {
	for i, v := range f.values {
		f.values[i] = math.Sqrt(v)
	}
}
