package spatial

// MinHeap is an array-backed binary min-heap ordered by a caller-supplied
// comparator. It is 0-indexed: the children of slot i are 2i+1 and 2i+2, and
// cmp(items[parent], items[child]) <= 0 holds for every pair.
//
// Heap operations are implemented directly instead of through container/heap
// to avoid boxing every element in an interface. The backing array doubles
// when full and halves once the live count falls to a quarter of capacity,
// never dropping below the initial capacity hint.
//
// MinHeap is not safe for concurrent use.
type MinHeap[T any] struct {
	cmp    func(a, b T) int
	items  []T
	minCap int
}

// NewMinHeap creates an empty heap. cmp returns a negative number when a
// sorts before b, zero when they are equal and a positive number otherwise
// (the cmp.Compare convention). capacityHint < 1 is treated as 1.
func NewMinHeap[T any](cmp func(a, b T) int, capacityHint int) *MinHeap[T] {
	if capacityHint < 1 {
		capacityHint = 1
	}
	return &MinHeap[T]{
		cmp:    cmp,
		items:  make([]T, 0, capacityHint),
		minCap: capacityHint,
	}
}

// Len returns the number of elements in the heap.
func (h *MinHeap[T]) Len() int { return len(h.items) }

// IsEmpty reports whether the heap holds no elements.
func (h *MinHeap[T]) IsEmpty() bool { return len(h.items) == 0 }

// Cap returns the capacity of the backing array.
func (h *MinHeap[T]) Cap() int { return cap(h.items) }

// Insert adds x and sifts it up to its place.
func (h *MinHeap[T]) Insert(x T) {
	if len(h.items) == cap(h.items) {
		h.resize(2 * cap(h.items))
	}
	h.items = append(h.items, x)
	h.up(len(h.items) - 1)
}

// PeekMin returns the minimum element without removing it.
// It panics with ErrEmptyHeap if the heap is empty.
func (h *MinHeap[T]) PeekMin() T {
	if len(h.items) == 0 {
		panic(ErrEmptyHeap)
	}
	return h.items[0]
}

// RemoveMin removes and returns the minimum element.
// It panics with ErrEmptyHeap if the heap is empty.
func (h *MinHeap[T]) RemoveMin() T {
	n := len(h.items)
	if n == 0 {
		panic(ErrEmptyHeap)
	}
	root := h.items[0]
	last := n - 1
	h.items[0] = h.items[last]
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	if last > 0 {
		h.down(0)
	}
	h.maybeShrink()
	return root
}

// ReplaceMin overwrites the minimum element with x, restores the heap
// invariant and returns the element that was replaced. It is equivalent to
// RemoveMin followed by Insert without the intermediate resize work.
// It panics with ErrEmptyHeap if the heap is empty.
func (h *MinHeap[T]) ReplaceMin(x T) T {
	if len(h.items) == 0 {
		panic(ErrEmptyHeap)
	}
	old := h.items[0]
	h.items[0] = x
	h.down(0)
	return old
}

// Items returns a copy of the elements in heap (array) order.
func (h *MinHeap[T]) Items() []T {
	out := make([]T, len(h.items))
	copy(out, h.items)
	return out
}

// Drain removes every element and returns them in ascending order.
func (h *MinHeap[T]) Drain() []T {
	out := make([]T, 0, len(h.items))
	for len(h.items) > 0 {
		out = append(out, h.RemoveMin())
	}
	return out
}

// Reset empties the heap, keeping its current capacity.
func (h *MinHeap[T]) Reset() {
	clear(h.items)
	h.items = h.items[:0]
}

func (h *MinHeap[T]) less(i, j int) bool {
	return h.cmp(h.items[i], h.items[j]) < 0
}

// up swims element j toward the root until its parent is not greater.
func (h *MinHeap[T]) up(j int) {
	for j > 0 {
		p := (j - 1) / 2
		if !h.less(j, p) {
			return
		}
		h.items[p], h.items[j] = h.items[j], h.items[p]
		j = p
	}
}

// down sinks element i toward the leaves, swapping with the smaller child.
func (h *MinHeap[T]) down(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n || l < 0 { // l < 0 after int overflow
			return
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}

func (h *MinHeap[T]) maybeShrink() {
	c := cap(h.items)
	if c <= h.minCap || len(h.items) > c/4 {
		return
	}
	h.resize(max(c/2, h.minCap))
}

func (h *MinHeap[T]) resize(c int) {
	items := make([]T, len(h.items), c)
	copy(items, h.items)
	h.items = items
}
