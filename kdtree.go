package spatial

import (
	"fmt"
	"math"
)

// KdTree is a k-d tree mapping K-dimensional points to values of type V.
//
// A node at depth d splits on axis d mod K. Every point in its left subtree
// has a strictly smaller coordinate on that axis; every point in its right
// subtree has a greater or equal one. Ties therefore always go right, which
// gives insertion and exact lookup a single descent path.
//
// Point equality (Contains, Find, Remove) is tolerance based: two points are
// equal when every coordinate differs by at most Epsilon. Lookups follow the
// single descent path and never backtrack, so a query point that is equal
// within Epsilon to a stored point but falls on the other side of a cut plane
// is not found. Callers that need tolerant lookup across cut planes should
// use BoxSearch with an Epsilon extent instead.
//
// KdTree is not safe for concurrent mutation. Concurrent readers are safe
// while no goroutine mutates the tree.
type KdTree[V any] struct {
	k       int
	epsilon float64
	root    *kdNode[V]
	count   int

	logger       *Logger
	heapCapacity int
}

type kdNode[V any] struct {
	point       Point
	value       V
	left, right *kdNode[V]
}

// Neighbor is a single nearest-neighbour result. Distance is the reduced
// distance of the metric used: squared Euclidean for the L2 queries and
// Manhattan distance for the L1 queries.
type Neighbor[V any] struct {
	Point    Point
	Value    V
	Distance float64
}

// NewKdTree creates an empty tree over k-dimensional points. k must be >= 2
// and epsilon must be > 0.
func NewKdTree[V any](k int, epsilon float64, opts ...Option) (*KdTree[V], error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: K must be >= 2, got %d", ErrInvalidDimension, k)
	}
	if !(epsilon > 0) || math.IsInf(epsilon, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidEpsilon, epsilon)
	}
	o := applyOptions(opts)
	return &KdTree[V]{
		k:            k,
		epsilon:      epsilon,
		logger:       o.logger.WithStructure("kdtree").WithDimension(k),
		heapCapacity: o.heapCapacity,
	}, nil
}

// K returns the dimension of the tree.
func (t *KdTree[V]) K() int { return t.k }

// Epsilon returns the per-axis equality tolerance.
func (t *KdTree[V]) Epsilon() float64 { return t.epsilon }

// Len returns the number of points stored in the tree.
func (t *KdTree[V]) Len() int { return t.count }

// Depth returns the number of nodes on the longest root-to-leaf path.
// An empty tree has depth 0.
func (t *KdTree[V]) Depth() int { return t.root.height() }

func (n *kdNode[V]) height() int {
	if n == nil {
		return 0
	}
	return max(n.left.height(), n.right.height()) + 1
}

// Clear removes every point from the tree.
func (t *KdTree[V]) Clear() {
	t.root = nil
	t.count = 0
}

// Insert adds p with the given value. The tree keeps its own copy of p.
// Inserting a point that is already present adds a second node; no
// rebalancing is performed.
func (t *KdTree[V]) Insert(p Point, v V) error {
	if err := checkDims(p, t.k); err != nil {
		return err
	}
	link := &t.root
	for depth := 0; *link != nil; depth++ {
		n := *link
		if axis := depth % t.k; p[axis] < n.point[axis] {
			link = &n.left
		} else {
			link = &n.right
		}
	}
	*link = &kdNode[V]{point: p.Clone(), value: v}
	t.count++
	return nil
}

// Contains reports whether a point equal to p within Epsilon lies on p's
// descent path.
func (t *KdTree[V]) Contains(p Point) (bool, error) {
	if err := checkDims(p, t.k); err != nil {
		return false, err
	}
	link, _ := t.locate(p)
	return *link != nil, nil
}

// Find returns the value of the first node equal to p within Epsilon on p's
// descent path.
func (t *KdTree[V]) Find(p Point) (V, bool, error) {
	var zero V
	if err := checkDims(p, t.k); err != nil {
		return zero, false, err
	}
	link, _ := t.locate(p)
	if *link == nil {
		return zero, false, nil
	}
	return (*link).value, true, nil
}

// locate returns the slot holding the first node equal to p along its descent
// path, and that node's depth. The slot holds nil when there is no match.
func (t *KdTree[V]) locate(p Point) (**kdNode[V], int) {
	link := &t.root
	depth := 0
	for *link != nil {
		n := *link
		if n.point.EqualWithin(p, t.epsilon) {
			return link, depth
		}
		if axis := depth % t.k; p[axis] < n.point[axis] {
			link = &n.left
		} else {
			link = &n.right
		}
		depth++
	}
	return link, depth
}
