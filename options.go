package edt

import "runtime"

// Option configures an engine invocation.
// Use functional options to customize engine behavior.
//
// Example:
//
//	// Sequential exact transform
//	field, err := edt.Exact(r)
//
//	// Parallel across 4 workers
//	field, err := edt.Exact(r, edt.WithWorkers(4))
//
// [WithParallel] and [WithWorkers] apply to [Exact] and its variants;
// [WithProgress] applies to [FMM]. Options an engine does not understand
// are ignored.
type Option func(*engineOptions)

// engineOptions holds optional configuration for a single invocation.
type engineOptions struct {
	workers  int
	progress ProgressFunc
}

// defaultOptions returns the per-invocation defaults: sequential
// execution, no progress callback.
func defaultOptions() engineOptions {
	return engineOptions{workers: 1}
}

// WithParallel distributes the exact engine's passes across GOMAXPROCS
// workers. Output is bit-identical to the sequential execution;
// parallelism is purely a performance knob.
func WithParallel() Option {
	return func(o *engineOptions) {
		o.workers = runtime.GOMAXPROCS(0)
	}
}

// WithWorkers distributes the exact engine's passes across exactly n
// workers. n <= 1 selects sequential execution.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithProgress installs a progress callback on the Fast Marching engine.
// The callback runs once per freeze event, after the pixel's distance is
// finalized. Returning a non-nil error aborts the computation; [FMM] then
// returns the partial field together with an error wrapping both
// [ErrCallbackAborted] and the callback's error.
//
// The engine is paused while the callback runs: a slow callback delays
// convergence but never corrupts state.
func WithProgress(fn ProgressFunc) Option {
	return func(o *engineOptions) {
		o.progress = fn
	}
}
