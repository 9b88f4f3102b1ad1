package spatial

import (
	"math/rand"
	"testing"
)

func generateBenchPoints(n, dims int) []Point {
	rng := rand.New(rand.NewSource(42))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = make(Point, dims)
		for j := range pts[i] {
			pts[i][j] = rng.Float64() * 100
		}
	}
	return pts
}

// --- Balanced build ---

func benchCreateBalanced(b *testing.B, n int) {
	b.Helper()
	pts := generateBenchPoints(n, 3)
	values := indexValues(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CreateBalanced(3, 1e-9, pts, values); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCreateBalanced_1000(b *testing.B)   { benchCreateBalanced(b, 1000) }
func BenchmarkCreateBalanced_10000(b *testing.B)  { benchCreateBalanced(b, 10000) }
func BenchmarkCreateBalanced_100000(b *testing.B) { benchCreateBalanced(b, 100000) }

// --- Queries ---

func benchTree(b *testing.B, n int) (*KdTree[int], []Point) {
	b.Helper()
	tree, err := CreateBalanced(3, 1e-9, generateBenchPoints(n, 3), indexValues(n))
	if err != nil {
		b.Fatal(err)
	}
	return tree, generateBenchPoints(1024, 3)
}

func benchNearestL2(b *testing.B, n int) {
	tree, queries := benchTree(b, n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := tree.NearestL2(queries[i%len(queries)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNearestL2_10000(b *testing.B)  { benchNearestL2(b, 10000) }
func BenchmarkNearestL2_100000(b *testing.B) { benchNearestL2(b, 100000) }

func benchKNearestL2(b *testing.B, n, k int) {
	tree, queries := benchTree(b, n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.KNearestL2(queries[i%len(queries)], k); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKNearestL2_10000_K8(b *testing.B)  { benchKNearestL2(b, 10000, 8) }
func BenchmarkKNearestL2_10000_K64(b *testing.B) { benchKNearestL2(b, 10000, 64) }

func BenchmarkRangeSearchL2_10000(b *testing.B) {
	tree, queries := benchTree(b, 10000)
	count := func(int) bool { return true }
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tree.RangeSearchL2(queries[i%len(queries)], 5, count); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Hash grid ---

func BenchmarkHashGrid_InsertClear_10000(b *testing.B) {
	pts := generateBenchPoints(10000, 2)
	g, err := NewHashGrid[int](2, 16384, 1)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j, p := range pts {
			_ = g.Insert(p, j)
		}
		g.Clear()
	}
}

func BenchmarkHashGrid_SearchRegion(b *testing.B) {
	pts := generateBenchPoints(10000, 2)
	g, err := NewHashGrid[int](2, 16384, 1)
	if err != nil {
		b.Fatal(err)
	}
	for j, p := range pts {
		_ = g.Insert(p, j)
	}
	visit := func(int) bool { return true }
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := pts[i%len(pts)]
		_ = g.SearchRegion(Point{c[0] - 2, c[1] - 2}, Point{c[0] + 2, c[1] + 2}, visit)
	}
}

func BenchmarkHashGrid_SearchRegionShared(b *testing.B) {
	pts := generateBenchPoints(10000, 2)
	g, err := NewHashGrid[int](2, 16384, 1)
	if err != nil {
		b.Fatal(err)
	}
	for j, p := range pts {
		_ = g.Insert(p, j)
	}
	visit := func(int) bool { return true }
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := pts[i%len(pts)]
		_ = g.SearchRegionShared(Point{c[0] - 2, c[1] - 2}, Point{c[0] + 2, c[1] + 2}, visit)
	}
}

// --- Heap ---

func BenchmarkMinHeap_InsertRemove(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	vals := make([]float64, 1024)
	for i := range vals {
		vals[i] = rng.Float64()
	}
	h := NewMinHeap(func(a, c float64) int {
		switch {
		case a < c:
			return -1
		case a > c:
			return 1
		}
		return 0
	}, 16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range vals {
			h.Insert(v)
		}
		for !h.IsEmpty() {
			h.RemoveMin()
		}
	}
}
