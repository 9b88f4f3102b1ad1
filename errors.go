package spatial

import "errors"

// Precondition errors. Call sites wrap these with the offending values, so
// compare with errors.Is rather than ==.
var (
	// ErrInvalidDimension is returned when a tree is created with K < 2 or a
	// grid with an unsupported number of axes.
	ErrInvalidDimension = errors.New("spatial: invalid dimension")

	// ErrDimensionMismatch is returned when a point's length differs from the
	// dimension of the structure it is passed to.
	ErrDimensionMismatch = errors.New("spatial: dimension mismatch")

	// ErrInvalidEpsilon is returned when the equality tolerance is not > 0.
	ErrInvalidEpsilon = errors.New("spatial: epsilon must be > 0")

	// ErrLengthMismatch is returned when parallel point and value slices
	// differ in length.
	ErrLengthMismatch = errors.New("spatial: points and values length mismatch")

	ErrInvalidBinCount = errors.New("spatial: bin count must be >= 1")
	ErrInvalidBinScale = errors.New("spatial: bin scale must be > 0")
	ErrInvalidK        = errors.New("spatial: k must be >= 1")

	// ErrInvalidExtent is returned for negative search radii or box extents.
	ErrInvalidExtent = errors.New("spatial: search extent must be >= 0")

	// ErrEmptyHeap is the panic value of MinHeap accessors on an empty heap.
	ErrEmptyHeap = errors.New("spatial: heap is empty")

	// ErrInvalidConfig is returned by the composite routines for bad Config
	// fields.
	ErrInvalidConfig = errors.New("spatial: invalid config")
)
