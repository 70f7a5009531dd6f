package edt

import (
	"math"
	"testing"
)

// mustRaster parses a string mask where '1' marks a feature pixel.
func mustRaster(t *testing.T, rows []string) *Raster {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	samples := make([]bool, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			t.Fatalf("ragged mask row %q", row)
		}
		for _, c := range row {
			samples = append(samples, c == '1')
		}
	}
	r, err := NewRaster(samples, w, h)
	if err != nil {
		t.Fatalf("NewRaster() = %v", err)
	}
	return r
}

// parseSquared parses a string grid of single-digit squared distances.
func parseSquared(rows []string) []float64 {
	var vals []float64
	for _, row := range rows {
		for _, c := range row {
			vals = append(vals, float64(c-'0'))
		}
	}
	return vals
}

// bruteForce computes the exact distance field by scanning every feature
// pixel for every pixel. O(n⁴), for cross-checking on small rasters only.
func bruteForce(r *Raster) []float64 {
	out := make([]float64, len(r.Samples))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			best := math.Inf(1)
			for fy := 0; fy < r.Height; fy++ {
				for fx := 0; fx < r.Width; fx++ {
					if !r.Samples[fy*r.Width+fx] {
						continue
					}
					d := math.Hypot(float64(x-fx), float64(y-fy))
					if d < best {
						best = d
					}
				}
			}
			out[y*r.Width+x] = best
		}
	}
	return out
}

// randomRaster builds a deterministic pseudo-random mask from a seed,
// with roughly density*len feature pixels.
func randomRaster(t *testing.T, w, h int, seed uint64, density float64) *Raster {
	t.Helper()
	samples := make([]bool, w*h)
	s := seed
	for i := range samples {
		// xorshift64 keeps the fixture independent of rand churn.
		s ^= s << 13
		s ^= s >> 7
		s ^= s << 17
		samples[i] = float64(s%1000)/1000 < density
	}
	r, err := NewRaster(samples, w, h)
	if err != nil {
		t.Fatalf("NewRaster() = %v", err)
	}
	return r
}
