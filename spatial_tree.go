package spatial

// RadiusSearcher is the read interface the clustering routines need from an
// index: visit every value within a Euclidean radius of a point.
type RadiusSearcher[V any] interface {
	// RangeSearchL2 calls fn for every value within radius of center.
	// Returning false from fn stops the search.
	RangeSearchL2(center Point, radius float64, fn func(V) bool) error

	// Len returns the number of indexed values.
	Len() int
}

var _ RadiusSearcher[int] = (*KdTree[int])(nil)
