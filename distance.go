package spatial

import "math"

// DistanceMetric provides distance computation with a reduced form for
// tree-pruning (e.g., squared Euclidean skips sqrt). Tree queries report
// reduced distances.
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
}

// planeMetric is a DistanceMetric whose reduced distance decomposes over
// axes, which is what makes the k-d cut-plane pruning rule valid.
type planeMetric interface {
	DistanceMetric

	// reducedAxis converts a signed distance to a cut plane into a lower
	// bound on the reduced distance to anything across that plane.
	reducedAxis(d float64) float64

	// reducedRadius converts a search radius into reduced-distance space.
	reducedRadius(r float64) float64
}

var (
	_ planeMetric = EuclideanMetric{}
	_ planeMetric = ManhattanMetric{}
)

// EuclideanMetric computes the Euclidean (L2) distance.
// ReducedDistance returns squared Euclidean distance (skips sqrt).
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(euclideanSumOfSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	return euclideanSumOfSquares(a, b)
}

func (EuclideanMetric) reducedAxis(d float64) float64   { return d * d }
func (EuclideanMetric) reducedRadius(r float64) float64 { return r * r }

func euclideanSumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func (m ManhattanMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

func (ManhattanMetric) reducedAxis(d float64) float64   { return math.Abs(d) }
func (ManhattanMetric) reducedRadius(r float64) float64 { return r }
