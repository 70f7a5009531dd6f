package edt

import "math"

// Pos represents a pixel coordinate.
type Pos struct {
	X, Y int
}

// P is a convenience function to create a Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// Dist returns the Euclidean distance between two pixel coordinates.
func (p Pos) Dist(q Pos) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// NoNearest marks pixels with no nearest feature in the position slice
// returned by [ExactWithNearest]. It only appears when the raster has
// zero feature pixels.
var NoNearest = Pos{X: -1, Y: -1}
