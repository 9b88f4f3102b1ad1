package spatial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a location in K-dimensional space. Coordinates are indexed by
// axis, 0..K-1.
type Point []float64

// PointFromR2 converts a gonum 2D vector to a Point.
func PointFromR2(v r2.Vec) Point { return Point{v.X, v.Y} }

// PointFromR3 converts a gonum 3D vector to a Point.
func PointFromR3(v r3.Vec) Point { return Point{v.X, v.Y, v.Z} }

// R2 returns the first two coordinates as a gonum vector.
func (p Point) R2() r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }

// R3 returns the first three coordinates as a gonum vector.
func (p Point) R3() r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }

// Dims returns the number of coordinates in p.
func (p Point) Dims() int { return len(p) }

// Clone returns a copy of p that shares no storage with it.
func (p Point) Clone() Point {
	q := make(Point, len(p))
	copy(q, p)
	return q
}

// EqualWithin reports whether every coordinate of p is within eps of the
// corresponding coordinate of q.
func (p Point) EqualWithin(q Point, eps float64) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if math.Abs(p[i]-q[i]) > eps {
			return false
		}
	}
	return true
}

// DistanceSquared returns the squared Euclidean distance between p and q.
func (p Point) DistanceSquared(q Point) float64 {
	return euclideanSumOfSquares(p, q)
}

// DistanceManhattan returns the L1 distance between p and q.
func (p Point) DistanceManhattan(q Point) float64 {
	return ManhattanMetric{}.Distance(p, q)
}

func (p Point) String() string {
	return fmt.Sprintf("%v", []float64(p))
}

func checkDims(p Point, k int) error {
	if len(p) != k {
		return fmt.Errorf("%w: got %d coordinates, want %d", ErrDimensionMismatch, len(p), k)
	}
	return nil
}
