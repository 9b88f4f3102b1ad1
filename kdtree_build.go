package spatial

import (
	"fmt"
	"math"
)

// CreateBalanced builds a tree over points with logarithmic depth by
// splitting every subtree at the median of its split axis. values[i] is
// associated with points[i]. The input slices are not modified.
func CreateBalanced[V any](k int, epsilon float64, points []Point, values []V, opts ...Option) (*KdTree[V], error) {
	t, err := NewKdTree[V](k, epsilon, opts...)
	if err != nil {
		return nil, err
	}
	if len(points) != len(values) {
		return nil, fmt.Errorf("%w: %d points, %d values", ErrLengthMismatch, len(points), len(values))
	}
	for i, p := range points {
		if err := checkDims(p, k); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}

	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	b := &kdBuilder[V]{
		k:       k,
		epsilon: epsilon,
		points:  points,
		values:  values,
		idx:     idx,
	}
	t.root = b.build(0, len(idx)-1, 0)
	t.count = len(points)

	t.logger.logBuild(t.count, t.Depth())
	return t, nil
}

// kdBuilder permutes an index array over the caller's points instead of the
// points themselves.
type kdBuilder[V any] struct {
	k       int
	epsilon float64
	points  []Point
	values  []V
	idx     []int
}

func (b *kdBuilder[V]) coord(i, axis int) float64 {
	return b.points[b.idx[i]][axis]
}

func (b *kdBuilder[V]) swap(i, j int) {
	b.idx[i], b.idx[j] = b.idx[j], b.idx[i]
}

// build constructs the subtree over idx[from..to] (inclusive).
func (b *kdBuilder[V]) build(from, to, axis int) *kdNode[V] {
	if from > to {
		return nil
	}
	mid := from + (to-from)/2
	b.selectNth(from, to, mid, axis)
	pivot := b.gatherTies(from, mid, axis)

	i := b.idx[pivot]
	n := &kdNode[V]{point: b.points[i].Clone(), value: b.values[i]}
	next := (axis + 1) % b.k
	n.left = b.build(from, pivot-1, next)
	n.right = b.build(pivot+1, to, next)
	return n
}

// selectNth rearranges idx[lo..hi] so that position nth holds the element
// that would be there if the range were sorted on axis, with nothing greater
// before it and nothing smaller after it. Three-way partitioning keeps
// heavily duplicated coordinates linear.
func (b *kdBuilder[V]) selectNth(lo, hi, nth, axis int) {
	for lo < hi {
		pv := b.medianOfThree(lo, lo+(hi-lo)/2, hi, axis)
		lt, i, gt := lo, lo, hi
		for i <= gt {
			c := b.coord(i, axis)
			switch {
			case c < pv:
				b.swap(lt, i)
				lt++
				i++
			case c > pv:
				b.swap(i, gt)
				gt--
			default:
				i++
			}
		}
		// [lo,lt) < pv, [lt,gt] == pv, (gt,hi] > pv
		switch {
		case nth < lt:
			hi = lt - 1
		case nth > gt:
			lo = gt + 1
		default:
			return
		}
	}
}

func (b *kdBuilder[V]) medianOfThree(i, j, k, axis int) float64 {
	x, y, z := b.coord(i, axis), b.coord(j, axis), b.coord(k, axis)
	if x > y {
		x, y = y, x
	}
	if y > z {
		y = z
	}
	return math.Max(x, y)
}

// gatherTies moves every element left of mid whose coordinate is within
// epsilon of the median into the block just left of mid, then swaps the
// smallest member of that block to its front and returns its position. The
// returned pivot has every smaller coordinate strictly to its left and every
// coordinate to its right >= its own, which is the split invariant that
// Insert and Find assume.
func (b *kdBuilder[V]) gatherTies(from, mid, axis int) int {
	m := b.coord(mid, axis)
	g := mid
	for j := mid - 1; j >= from; j-- {
		if math.Abs(b.coord(j, axis)-m) <= b.epsilon {
			g--
			b.swap(j, g)
		}
	}
	lowest := g
	for j := g + 1; j <= mid; j++ {
		if b.coord(j, axis) < b.coord(lowest, axis) {
			lowest = j
		}
	}
	b.swap(g, lowest)
	return g
}
