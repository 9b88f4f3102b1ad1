package spatial

import (
	"context"
	"fmt"
	"math"
)

// CoreDistances returns, for each point, the Euclidean distance to its
// minSamples-th nearest neighbour other than itself. Neighbours are found
// with a balanced k-d tree queried from up to workers goroutines.
//
// minSamples is clamped to len(points)-1. Sorted, the result is the
// k-distance curve commonly used to pick DBSCANConfig.Eps: with
// minSamples = MinPoints-1 the knee of the curve is a good radius.
func CoreDistances(ctx context.Context, points []Point, minSamples, workers int) ([]float64, error) {
	if minSamples < 1 {
		return nil, fmt.Errorf("%w: minSamples must be >= 1, got %d", ErrInvalidK, minSamples)
	}
	n := len(points)
	core := make([]float64, n)
	minSamples = min(minSamples, n-1)
	if minSamples < 1 {
		return core, nil
	}

	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	tree, err := CreateBalanced(len(points[0]), 1e-12, points, ids)
	if err != nil {
		return nil, err
	}

	// k = minSamples+1 leaves room for the point itself.
	results, err := tree.KNearestL2Batch(ctx, points, minSamples+1, workers)
	if err != nil {
		return nil, err
	}
	for i, nbs := range results {
		count := 0
		for _, nb := range nbs {
			if nb.Value == i {
				continue
			}
			count++
			if count == minSamples {
				core[i] = math.Sqrt(nb.Distance)
				break
			}
		}
		// A duplicate of point i may take the place of i itself in the
		// results, leaving one slot short.
		if count < minSamples {
			core[i] = math.Sqrt(nbs[len(nbs)-1].Distance)
		}
	}
	return core, nil
}
