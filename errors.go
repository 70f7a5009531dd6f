package edt

import "errors"

// Sentinel errors for the edt package.
var (
	// ErrShapeMismatch is returned when the sample buffer length does not
	// equal width*height. No computation starts and no output is allocated.
	ErrShapeMismatch = errors.New("edt: sample length does not match width*height")

	// ErrEmptyDimension is returned when width or height is zero or negative.
	ErrEmptyDimension = errors.New("edt: width and height must be at least 1")

	// ErrCallbackAborted is returned by [FMM] when a progress callback
	// requests early termination. The field returned alongside it holds the
	// state at the moment of the abort and must not be treated as a
	// completed transform.
	ErrCallbackAborted = errors.New("edt: progress callback aborted")
)
