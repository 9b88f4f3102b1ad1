package spatial

// cellRange discretizes the corners of the box spanned by a and b after
// ordering each axis so that lo <= hi.
func (g *HashGrid[V]) cellRange(a, b Point) (lo, hi cell, err error) {
	if err = checkDims(a, g.dims); err != nil {
		return lo, hi, err
	}
	if err = checkDims(b, g.dims); err != nil {
		return lo, hi, err
	}
	for i := 0; i < g.dims; i++ {
		x, y := a[i], b[i]
		if x > y {
			x, y = y, x
		}
		lo[i] = g.cellCoord(x)
		hi[i] = g.cellCoord(y)
	}
	return lo, hi, nil
}

// eachBin calls fn with every bin touched by the cells in
// [lo, hi], skipping bins already visited by the same region operation.
// The scan stops when fn returns false.
func (g *HashGrid[V]) eachBin(lo, hi cell, fn func(*hashBin[V]) bool) {
	q := g.nextQuery()
	g.eachCell(lo, hi, func(c cell) bool {
		b := &g.bins[g.binIndex(c)]
		if b.lastQuery == q {
			return true
		}
		b.lastQuery = q
		return fn(b)
	})
}

// eachCell walks the inclusive cell box [lo, hi] in row-major order.
func (g *HashGrid[V]) eachCell(lo, hi cell, fn func(cell) bool) {
	c := lo
	for {
		if !fn(c) {
			return
		}
		axis := 0
		for ; axis < g.dims; axis++ {
			if c[axis] < hi[axis] {
				c[axis]++
				break
			}
			c[axis] = lo[axis]
		}
		if axis == g.dims {
			return
		}
	}
}

// InsertRegion adds v to every bin touched by the cells overlapping the box
// spanned by from and to. A bin reached through several cells receives v
// only once.
func (g *HashGrid[V]) InsertRegion(from, to Point, v V) error {
	lo, hi, err := g.cellRange(from, to)
	if err != nil {
		return err
	}
	g.eachBin(lo, hi, func(b *hashBin[V]) bool {
		g.add(b, v)
		return true
	})
	return nil
}

// SearchRegion calls fn for every value in the live bins touched by the
// cells overlapping the box spanned by from and to. Each physical bin is
// visited once per call. Returning false from fn stops the search.
func (g *HashGrid[V]) SearchRegion(from, to Point, fn func(V) bool) error {
	lo, hi, err := g.cellRange(from, to)
	if err != nil {
		return err
	}
	g.eachBin(lo, hi, func(b *hashBin[V]) bool {
		if b.version != g.version {
			return true
		}
		for _, v := range b.items {
			if !fn(v) {
				return false
			}
		}
		return true
	})
	return nil
}

// CollectRegion returns the values SearchRegion would visit.
func (g *HashGrid[V]) CollectRegion(from, to Point) ([]V, error) {
	var out []V
	err := g.SearchRegion(from, to, collectInto(&out))
	return out, err
}

// Buckets returns the contents of every live, non-empty bin touched by the
// region, one slice per physical bin. It is the serial half of a two-phase
// search: the returned slices share storage with the grid and stay valid
// until the next Insert, InsertRegion, Clear or Resize, so they may be
// processed concurrently (see ProcessBuckets) as long as the grid is not
// written meanwhile.
func (g *HashGrid[V]) Buckets(from, to Point) ([][]V, error) {
	lo, hi, err := g.cellRange(from, to)
	if err != nil {
		return nil, err
	}
	var out [][]V
	g.eachBin(lo, hi, func(b *hashBin[V]) bool {
		if b.version == g.version && len(b.items) > 0 {
			out = append(out, b.items[:len(b.items):len(b.items)])
		}
		return true
	})
	return out, nil
}
