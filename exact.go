package edt

import (
	"math"
	"time"

	"github.com/gogpu/edt/internal/parallel"
)

// Exact computes the exact Euclidean distance transform of r using the
// Saito–Toriwaki two-pass squared-distance minimization.
//
// Pass 1 computes, per column, the vertical distance to the nearest
// feature pixel in that column. Pass 2 minimizes colDist² + dx² over all
// columns for every pixel of every row. Both passes are embarrassingly
// parallel (per column, per row); [WithParallel] or [WithWorkers]
// distributes them across a worker pool with bit-identical output.
//
// Feature pixels map to 0. If the raster has no feature pixels at all,
// every output value is +Inf.
func Exact(r *Raster, opts ...Option) (*Field, error) {
	f, err := ExactSquared(r, opts...)
	if err != nil {
		return nil, err
	}
	f.sqrt()
	return f, nil
}

// ExactSquared is [Exact] without the final square root: each output
// value is the squared Euclidean distance to the nearest feature pixel.
// Use it when only comparisons are needed and the square root would be
// wasted work.
func ExactSquared(r *Raster, opts ...Option) (*Field, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := r.Width, r.Height

	run := runner(o.workers)
	defer run.close()

	// Column buffer: per-pixel vertical distance to the nearest feature
	// in the same column. Discarded when the call returns.
	col := make([]float64, w*h)
	out := newField(w, h, 0)

	start := time.Now()
	run.forRanges(w, func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			columnSweep(r, col, x)
		}
	})
	pass1 := time.Now()
	run.forRanges(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowMinimize(col, out.values, w, y)
		}
	})
	Logger().Debug("exact transform done",
		"size", w*h,
		"workers", o.workers,
		"pass1", pass1.Sub(start),
		"pass2", time.Since(pass1))

	return out, nil
}

// columnSweep fills column x of col with the vertical distance to the
// nearest feature pixel in that column: a downward sweep counting pixels
// since the last feature, then an upward sweep taking the minimum. A
// column with no feature pixel stays at +Inf.
func columnSweep(r *Raster, col []float64, x int) {
	w, h := r.Width, r.Height
	since := math.Inf(1)
	for y := 0; y < h; y++ {
		if r.Samples[y*w+x] {
			since = 0
		} else {
			since++ // +Inf stays +Inf
		}
		col[y*w+x] = since
	}
	since = math.Inf(1)
	for y := h - 1; y >= 0; y-- {
		if r.Samples[y*w+x] {
			since = 0
		} else {
			since++
		}
		if since < col[y*w+x] {
			col[y*w+x] = since
		}
	}
}

// rowMinimize fills row y of out with the squared 2D distance:
// min over all columns xp of col[xp]² + (x-xp)². The naive O(width) scan
// per pixel keeps the engine simple; a lower-envelope optimization would
// produce identical output.
func rowMinimize(col, out []float64, w, y int) {
	row := col[y*w : (y+1)*w]
	dst := out[y*w : (y+1)*w]
	for x := range dst {
		best := math.Inf(1)
		for xp, cd := range row {
			dx := float64(x - xp)
			if v := cd*cd + dx*dx; v < best {
				best = v
			}
		}
		dst[x] = best
	}
}

// ExactWithNearest computes the exact transform and additionally returns,
// for every pixel, the coordinate of its nearest feature pixel. Ties are
// broken deterministically: on a vertical tie the feature above wins, on
// a horizontal tie the leftmost column wins.
// Pixels with no nearest feature hold [NoNearest] and +Inf.
func ExactWithNearest(r *Raster, opts ...Option) (*Field, []Pos, error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := r.Width, r.Height
	col := make([]float64, w*h)
	colRow := make([]int32, w*h) // row of the nearest in-column feature
	out := newField(w, h, 0)
	nearest := make([]Pos, w*h)

	run := runner(o.workers)
	defer run.close()

	run.forRanges(w, func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			columnSweepNearest(r, col, colRow, x)
		}
	})
	run.forRanges(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowMinimizeNearest(col, colRow, out.values, nearest, w, y)
		}
	})

	out.sqrt()
	return out, nearest, nil
}

// columnSweepNearest is columnSweep plus bookkeeping of which row the
// nearest in-column feature sits on.
func columnSweepNearest(r *Raster, col []float64, colRow []int32, x int) {
	w, h := r.Width, r.Height
	since := math.Inf(1)
	last := int32(-1)
	for y := 0; y < h; y++ {
		if r.Samples[y*w+x] {
			since = 0
			last = int32(y)
		} else {
			since++
		}
		col[y*w+x] = since
		colRow[y*w+x] = last
	}
	since = math.Inf(1)
	last = -1
	for y := h - 1; y >= 0; y-- {
		if r.Samples[y*w+x] {
			since = 0
			last = int32(y)
		} else {
			since++
		}
		if since < col[y*w+x] {
			col[y*w+x] = since
			colRow[y*w+x] = last
		}
	}
}

// rowMinimizeNearest is rowMinimize plus bookkeeping of the winning
// column, combined with the column pass result into an absolute
// nearest-feature coordinate.
func rowMinimizeNearest(col []float64, colRow []int32, out []float64, nearest []Pos, w, y int) {
	row := col[y*w : (y+1)*w]
	for x := 0; x < w; x++ {
		best := math.Inf(1)
		bestX := -1
		for xp, cd := range row {
			dx := float64(x - xp)
			if v := cd*cd + dx*dx; v < best {
				best = v
				bestX = xp
			}
		}
		out[y*w+x] = best
		if bestX < 0 {
			nearest[y*w+x] = NoNearest
		} else {
			nearest[y*w+x] = Pos{X: bestX, Y: int(colRow[y*w+bestX])}
		}
	}
}

// passRunner executes the per-column and per-row pass bodies, inline or
// on a worker pool. The pool lives for one engine invocation; forRanges
// blocks until every unit completes, which is the full barrier between
// Pass 1 and Pass 2.
type passRunner struct {
	pool *parallel.Pool
}

// runner builds a passRunner: inline execution for a single worker, a
// fresh fixed-size pool otherwise.
func runner(workers int) passRunner {
	if workers <= 1 {
		return passRunner{}
	}
	return passRunner{pool: parallel.NewPool(workers)}
}

func (p passRunner) forRanges(n int, fn func(start, end int)) {
	if p.pool == nil {
		fn(0, n)
		return
	}
	p.pool.ForRanges(n, fn)
}

func (p passRunner) close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
