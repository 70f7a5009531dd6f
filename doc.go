// Package edt computes 2D Euclidean distance transforms for Go.
//
// # Overview
//
// edt takes a binary raster (a flat []bool buffer plus a width and height)
// and computes, for every pixel, the Euclidean distance to the nearest
// feature pixel. Two engines are provided:
//
//   - [Exact] implements the Saito–Toriwaki two-pass squared-distance
//     minimization and produces a provably exact distance field. An
//     optional parallel mode distributes the passes across a worker pool
//     with bit-identical results.
//   - [FMM] implements the Fast Marching Method, solving the Eikonal
//     equation |∇T| = 1 by wavefront expansion. It is faster but
//     approximate, and supports a per-step progress callback that can
//     observe the expanding wavefront or abort the computation.
//
// # Quick Start
//
//	import "github.com/gogpu/edt"
//
//	// Build a raster: feature pixels have distance zero.
//	r, err := edt.NewRaster(samples, width, height)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Exact transform, parallel across all CPUs.
//	field, err := edt.Exact(r, edt.WithParallel())
//
//	// Approximate transform with wavefront observation.
//	field, err = edt.FMM(r, edt.WithProgress(func(s edt.Step) error {
//		fmt.Println("froze", s.X, s.Y, "at", s.Value)
//		return nil
//	}))
//
// # Output
//
// Both engines return a [Field]: a dense row-major []float64 the same
// shape as the input. Feature pixels map to 0. Pixels with no feature
// anywhere in the raster (only possible when the raster has zero feature
// pixels) hold +Inf. Distances are in pixel units; no physical unit
// conversion is performed.
//
// # Choosing an engine
//
// Exact is the reference: its output equals the true Euclidean distance
// for every pixel. FMM propagates distance through orthogonal first-order
// updates, so distances deviate slightly from the true value (about +21%
// at the immediate diagonal of an isolated feature, about -29% right at a
// concave corner of the feature set, both shrinking with range). Use
// Exact when correctness matters, FMM when speed or incremental
// observation matters.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right, Y increases down
//   - Row-major indexing: index = y*width + x
package edt
