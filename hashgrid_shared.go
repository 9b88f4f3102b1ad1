package spatial

import "github.com/RoaringBitmap/roaring/v2"

// SearchRegionShared behaves like SearchRegion but never writes to the grid:
// bins are deduplicated with a bitmap local to the call instead of the
// shared per-bin query tags. Any number of goroutines may call it
// concurrently provided no goroutine writes to the grid at the same time.
func (g *HashGrid[V]) SearchRegionShared(from, to Point, fn func(V) bool) error {
	lo, hi, err := g.cellRange(from, to)
	if err != nil {
		return err
	}
	visited := roaring.New()
	g.eachCell(lo, hi, func(c cell) bool {
		idx := g.binIndex(c)
		if !visited.CheckedAdd(uint32(idx)) {
			return true
		}
		b := &g.bins[idx]
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
