package spatial

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// All searches below are depth-first with branch pruning: at each node the
// side of the cut plane containing the query is visited first, and the other
// side only when the distance to the cut plane is within the current bound.

// BoxSearch calls fn for every value whose point lies inside the axis-aligned
// box centered on center with per-axis half extents extent (bounds
// inclusive). Returning false from fn stops the search.
func (t *KdTree[V]) BoxSearch(center, extent Point, fn func(V) bool) error {
	if err := checkDims(center, t.k); err != nil {
		return err
	}
	if err := checkDims(extent, t.k); err != nil {
		return err
	}
	for i, e := range extent {
		if !(e >= 0) {
			return fmt.Errorf("%w: extent[%d] = %v", ErrInvalidExtent, i, e)
		}
	}
	t.boxSearch(t.root, center, extent, 0, fn)
	return nil
}

func (t *KdTree[V]) boxSearch(n *kdNode[V], c, e Point, depth int, fn func(V) bool) bool {
	if n == nil {
		return true
	}
	if inBox(n.point, c, e) && !fn(n.value) {
		return false
	}
	axis := depth % t.k
	d := c[axis] - n.point[axis]
	near, far := n.right, n.left
	if d < 0 {
		near, far = n.left, n.right
	}
	if !t.boxSearch(near, c, e, depth+1, fn) {
		return false
	}
	if math.Abs(d) <= e[axis] {
		return t.boxSearch(far, c, e, depth+1, fn)
	}
	return true
}

func inBox(p, c, e Point) bool {
	for i := range p {
		if math.Abs(p[i]-c[i]) > e[i] {
			return false
		}
	}
	return true
}

// RangeSearchL1 calls fn for every value whose point is within Manhattan
// distance radius of center (inclusive). Returning false from fn stops the
// search.
func (t *KdTree[V]) RangeSearchL1(center Point, radius float64, fn func(V) bool) error {
	return t.rangeSearch(center, radius, ManhattanMetric{}, fn)
}

// RangeSearchL2 calls fn for every value whose point is within Euclidean
// distance radius of center (inclusive). Distances are compared squared.
// Returning false from fn stops the search.
func (t *KdTree[V]) RangeSearchL2(center Point, radius float64, fn func(V) bool) error {
	return t.rangeSearch(center, radius, EuclideanMetric{}, fn)
}

func (t *KdTree[V]) rangeSearch(center Point, radius float64, m planeMetric, fn func(V) bool) error {
	if err := checkDims(center, t.k); err != nil {
		return err
	}
	if !(radius >= 0) {
		return fmt.Errorf("%w: radius = %v", ErrInvalidExtent, radius)
	}
	t.rangeVisit(t.root, center, m.reducedRadius(radius), m, 0, fn)
	return nil
}

func (t *KdTree[V]) rangeVisit(n *kdNode[V], c Point, bound float64, m planeMetric, depth int, fn func(V) bool) bool {
	if n == nil {
		return true
	}
	if m.ReducedDistance(c, n.point) <= bound && !fn(n.value) {
		return false
	}
	axis := depth % t.k
	d := c[axis] - n.point[axis]
	near, far := n.right, n.left
	if d < 0 {
		near, far = n.left, n.right
	}
	if !t.rangeVisit(near, c, bound, m, depth+1, fn) {
		return false
	}
	if m.reducedAxis(d) <= bound {
		return t.rangeVisit(far, c, bound, m, depth+1, fn)
	}
	return true
}

// CollectBox returns the values BoxSearch would visit.
func (t *KdTree[V]) CollectBox(center, extent Point) ([]V, error) {
	var out []V
	err := t.BoxSearch(center, extent, collectInto(&out))
	return out, err
}

// CollectRangeL1 returns the values RangeSearchL1 would visit.
func (t *KdTree[V]) CollectRangeL1(center Point, radius float64) ([]V, error) {
	var out []V
	err := t.RangeSearchL1(center, radius, collectInto(&out))
	return out, err
}

// CollectRangeL2 returns the values RangeSearchL2 would visit.
func (t *KdTree[V]) CollectRangeL2(center Point, radius float64) ([]V, error) {
	var out []V
	err := t.RangeSearchL2(center, radius, collectInto(&out))
	return out, err
}

func collectInto[V any](out *[]V) func(V) bool {
	return func(v V) bool {
		*out = append(*out, v)
		return true
	}
}

// NearestL1 returns the stored point closest to q in Manhattan distance.
// The boolean is false when the tree is empty.
func (t *KdTree[V]) NearestL1(q Point) (Neighbor[V], bool, error) {
	return t.nearest(q, ManhattanMetric{})
}

// NearestL2 returns the stored point closest to q in Euclidean distance;
// the reported distance is squared. The boolean is false when the tree is
// empty.
func (t *KdTree[V]) NearestL2(q Point) (Neighbor[V], bool, error) {
	return t.nearest(q, EuclideanMetric{})
}

type nearestState[V any] struct {
	node *kdNode[V]
	dist float64
}

func (t *KdTree[V]) nearest(q Point, m planeMetric) (Neighbor[V], bool, error) {
	if err := checkDims(q, t.k); err != nil {
		return Neighbor[V]{}, false, err
	}
	st := nearestState[V]{dist: math.Inf(1)}
	t.nearestVisit(t.root, q, m, 0, &st)
	if st.node == nil {
		return Neighbor[V]{}, false, nil
	}
	return st.node.neighbor(st.dist), true, nil
}

func (t *KdTree[V]) nearestVisit(n *kdNode[V], q Point, m planeMetric, depth int, st *nearestState[V]) {
	if n == nil {
		return
	}
	// Only a strictly closer node replaces the current best, so ties keep
	// the first node visited.
	if d := m.ReducedDistance(q, n.point); st.node == nil || d < st.dist {
		st.node, st.dist = n, d
	}
	axis := depth % t.k
	d := q[axis] - n.point[axis]
	near, far := n.right, n.left
	if d < 0 {
		near, far = n.left, n.right
	}
	t.nearestVisit(near, q, m, depth+1, st)
	if m.reducedAxis(d) < st.dist {
		t.nearestVisit(far, q, m, depth+1, st)
	}
}

// KNearestL1 returns up to k stored points closest to q in Manhattan
// distance, nearest first. Fewer than k results are returned only when the
// tree holds fewer than k points.
func (t *KdTree[V]) KNearestL1(q Point, k int) ([]Neighbor[V], error) {
	return t.kNearest(q, k, ManhattanMetric{})
}

// KNearestL2 returns up to k stored points closest to q in Euclidean
// distance, nearest first, with squared distances.
func (t *KdTree[V]) KNearestL2(q Point, k int) ([]Neighbor[V], error) {
	return t.kNearest(q, k, EuclideanMetric{})
}

type knnCandidate[V any] struct {
	node *kdNode[V]
	dist float64
}

func (t *KdTree[V]) kNearest(q Point, k int, m planeMetric) ([]Neighbor[V], error) {
	if err := checkDims(q, t.k); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	// Inverted comparator: the heap minimum is the worst of the k best.
	h := NewMinHeap(func(a, b knnCandidate[V]) int {
		return cmp.Compare(b.dist, a.dist)
	}, min(k, t.heapCapacity))
	t.knnVisit(t.root, q, k, m, 0, h)

	found := h.Drain()
	slices.Reverse(found)
	out := make([]Neighbor[V], len(found))
	for i, c := range found {
		out[i] = c.node.neighbor(c.dist)
	}
	return out, nil
}

func (t *KdTree[V]) knnVisit(n *kdNode[V], q Point, k int, m planeMetric, depth int, h *MinHeap[knnCandidate[V]]) {
	if n == nil {
		return
	}
	d := m.ReducedDistance(q, n.point)
	if h.Len() < k {
		h.Insert(knnCandidate[V]{node: n, dist: d})
	} else if d < h.PeekMin().dist {
		h.ReplaceMin(knnCandidate[V]{node: n, dist: d})
	}

	axis := depth % t.k
	diff := q[axis] - n.point[axis]
	near, far := n.right, n.left
	if diff < 0 {
		near, far = n.left, n.right
	}
	t.knnVisit(near, q, k, m, depth+1, h)

	bound := math.Inf(1)
	if h.Len() == k {
		bound = h.PeekMin().dist
	}
	if m.reducedAxis(diff) < bound {
		t.knnVisit(far, q, k, m, depth+1, h)
	}
}

func (n *kdNode[V]) neighbor(dist float64) Neighbor[V] {
	return Neighbor[V]{Point: n.point.Clone(), Value: n.value, Distance: dist}
}
