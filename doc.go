// Package spatial implements in-memory spatial indexes for point data:
// a k-d tree, an unbounded hashed uniform grid and the bounded min-heap the
// tree uses for k-nearest queries.
//
// The structures target iterative geometry pipelines that rebuild or clear
// an index every step (collision broad-phase, point cloud consolidation,
// clustering), so construction and clearing are cheap: CreateBalanced builds
// a k-d tree by median selection in O(n log n), and HashGrid.Clear is O(1).
//
// Basic usage:
//
//	tree, err := spatial.CreateBalanced(2, 1e-8, points, values)
//	nb, ok, err := tree.NearestL2(spatial.Point{0.9, 0.9})
//	// nb.Value is the closest value, nb.Distance its squared distance
//
//	grid, err := spatial.NewHashGrid[int](2, 1024, 0.5)
//	grid.Insert(spatial.Point{1, 2}, 7)
//	grid.Search(spatial.Point{1, 2}, func(v int) bool { ...; return true })
//	grid.Clear() // O(1)
//
// # Distances
//
// Tree queries report reduced distances: squared Euclidean distance for the
// L2 variants and Manhattan distance for the L1 variants.
//
// # Concurrency
//
// No structure is internally synchronized. Readers may share a KdTree while
// nobody mutates it. HashGrid region operations write per-bin tags even when
// searching, so use SearchRegionShared for concurrent readers, or collect
// bins with HashGrid.Buckets and fan the processing out with ProcessBuckets.
//
// # Composite routines
//
// Consolidate merges nearby points using a HashGrid and a UnionFind; DBSCAN
// clusters points using a balanced KdTree, and CoreDistances computes the
// k-distance curve used to choose its radius.
package spatial
