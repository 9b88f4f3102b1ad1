package spatial

import (
	"fmt"
	"math"
)

// minTag is never issued as a live generation or query tag, so bins stamped
// with it are always stale.
const minTag = math.MinInt32

// maxCell bounds cell coordinates so that cell arithmetic cannot overflow.
const maxCell = 1 << 52

// cellPrimes are the per-axis multipliers of the cell hash.
var cellPrimes = [3]int64{73856093, 19349663, 83492791}

// HashGrid is an unbounded uniform grid that hashes cells into a fixed
// number of bins. Any real coordinate maps to some bin; distinct cells may
// share a bin, so searches return every value of the bins they touch, and a
// value inserted over a region may be reported more than once by a region
// search when its cells landed in different bins.
//
// Clear is O(1): every bin carries the generation it was last written in,
// and a bin whose generation is not the grid's current one is logically
// empty. Its storage is reused on the next write. A second per-bin tag
// records the last region operation that visited it, so one region
// operation touches each physical bin at most once.
//
// HashGrid is not safe for concurrent use. Region operations mutate bin
// tags, so they are unsafe even for callers working on disjoint regions;
// SearchRegionShared is the read-only alternative.
type HashGrid[V any] struct {
	dims     int
	bins     []hashBin[V]
	binScale float64
	invScale float64

	version   int32
	query     int32
	itemCount int

	logger *Logger
}

type hashBin[V any] struct {
	items     []V
	version   int32
	lastQuery int32
}

// cell is a discretized coordinate; only the first dims entries are used.
type cell [3]int64

// NewHashGrid creates a grid over dims-dimensional points (2 or 3) with
// binCount bins and cells of side binScale.
func NewHashGrid[V any](dims, binCount int, binScale float64, opts ...Option) (*HashGrid[V], error) {
	if dims < 2 || dims > len(cellPrimes) {
		return nil, fmt.Errorf("%w: grid axes must be 2 or 3, got %d", ErrInvalidDimension, dims)
	}
	if err := validateBinCount(binCount); err != nil {
		return nil, err
	}
	if err := validateBinScale(binScale); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	g := &HashGrid[V]{
		dims:     dims,
		binScale: binScale,
		invScale: 1 / binScale,
		version:  minTag + 1,
		query:    minTag,
		logger:   o.logger.WithStructure("hashgrid").WithDimension(dims),
	}
	g.bins = newBins[V](binCount)
	return g, nil
}

func validateBinCount(n int) error {
	if n < 1 || n > math.MaxInt32 {
		return fmt.Errorf("%w: got %d", ErrInvalidBinCount, n)
	}
	return nil
}

func validateBinScale(s float64) error {
	if !(s > 0) || math.IsInf(s, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidBinScale, s)
	}
	return nil
}

func newBins[V any](n int) []hashBin[V] {
	bins := make([]hashBin[V], n)
	for i := range bins {
		bins[i].version = minTag
		bins[i].lastQuery = minTag
	}
	return bins
}

// Dims returns the number of axes of the grid.
func (g *HashGrid[V]) Dims() int { return g.dims }

// BinCount returns the number of bins.
func (g *HashGrid[V]) BinCount() int { return len(g.bins) }

// ItemCount returns the number of values inserted since the last Clear.
// A region insert counts once per bin it wrote to.
func (g *HashGrid[V]) ItemCount() int { return g.itemCount }

// BinScale returns the side length of a grid cell.
func (g *HashGrid[V]) BinScale() float64 { return g.binScale }

// SetBinScale changes the cell side length and clears the grid.
func (g *HashGrid[V]) SetBinScale(s float64) error {
	if err := validateBinScale(s); err != nil {
		return err
	}
	g.binScale = s
	g.invScale = 1 / s
	g.Clear()
	return nil
}

// Clear logically empties every bin in O(1) by starting a new generation.
func (g *HashGrid[V]) Clear() {
	if g.version == math.MaxInt32 {
		// Includes bins beyond len that a later Resize may expose again.
		all := g.bins[:cap(g.bins)]
		for i := range all {
			all[i].version = minTag
		}
		g.version = minTag
		g.logger.logTagReset("version", len(all))
	}
	g.version++
	g.itemCount = 0
}

// Resize changes the number of bins and clears the grid. Existing values are
// discarded, not rehashed.
func (g *HashGrid[V]) Resize(binCount int) error {
	if err := validateBinCount(binCount); err != nil {
		return err
	}
	old := len(g.bins)
	if binCount <= cap(g.bins) {
		g.bins = g.bins[:binCount]
	} else {
		g.bins = newBins[V](binCount)
	}
	g.Clear()
	g.logger.logResize(old, binCount)
	return nil
}

// nextQuery issues a fresh region-operation tag.
func (g *HashGrid[V]) nextQuery() int32 {
	if g.query == math.MaxInt32 {
		all := g.bins[:cap(g.bins)]
		for i := range all {
			all[i].lastQuery = minTag
		}
		g.query = minTag
		g.logger.logTagReset("query", len(all))
	}
	g.query++
	return g.query
}

// cellCoord discretizes one coordinate.
func (g *HashGrid[V]) cellCoord(x float64) int64 {
	f := math.Floor(x * g.invScale)
	switch {
	case math.IsNaN(f):
		return 0
	case f > maxCell:
		return maxCell
	case f < -maxCell:
		return -maxCell
	}
	return int64(f)
}

func (g *HashGrid[V]) cellOf(p Point) cell {
	var c cell
	for i := 0; i < g.dims; i++ {
		c[i] = g.cellCoord(p[i])
	}
	return c
}

// binIndex hashes a cell to a bin. The remainder is taken with Euclidean
// (non-negative) modulo because cell coordinates and the hash can be negative.
func (g *HashGrid[V]) binIndex(c cell) int {
	var h int64
	for i := 0; i < g.dims; i++ {
		h ^= c[i] * cellPrimes[i]
	}
	n := int64(len(g.bins))
	r := h % n
	if r < 0 {
		r += n
	}
	return int(r)
}

// refresh empties a bin left over from an earlier generation and stamps it
// current. The old values are zeroed so the garbage collector can reclaim
// what they reference.
func (g *HashGrid[V]) refresh(b *hashBin[V]) {
	if b.version != g.version {
		clear(b.items)
		b.items = b.items[:0]
		b.version = g.version
	}
}

func (g *HashGrid[V]) add(b *hashBin[V], v V) {
	g.refresh(b)
	b.items = append(b.items, v)
	g.itemCount++
}

// Insert adds v to the bin of the cell containing p.
func (g *HashGrid[V]) Insert(p Point, v V) error {
	if err := checkDims(p, g.dims); err != nil {
		return err
	}
	g.add(&g.bins[g.binIndex(g.cellOf(p))], v)
	return nil
}

// Search calls fn for every value in the bin of the cell containing p,
// which includes values from other cells hashed to the same bin. Returning
// false from fn stops the search.
func (g *HashGrid[V]) Search(p Point, fn func(V) bool) error {
	if err := checkDims(p, g.dims); err != nil {
		return err
	}
	b := &g.bins[g.binIndex(g.cellOf(p))]
	if b.version != g.version {
		return nil
	}
	for _, v := range b.items {
		if !fn(v) {
			return nil
		}
	}
	return nil
}

// Collect returns the values Search would visit.
func (g *HashGrid[V]) Collect(p Point) ([]V, error) {
	var out []V
	err := g.Search(p, collectInto(&out))
	return out, err
}
