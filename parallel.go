package spatial

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ProcessBuckets calls fn once per bucket returned by HashGrid.Buckets,
// running at most workers calls at a time. If workers <= 1 the buckets are
// processed in order on the calling goroutine.
//
// The grid must not be written while ProcessBuckets runs. The first error
// returned by fn cancels the context passed to the remaining calls and is
// returned.
func ProcessBuckets[V any](ctx context.Context, buckets [][]V, workers int, fn func(ctx context.Context, bucket []V) error) error {
	if workers <= 1 || len(buckets) <= 1 {
		for _, b := range buckets {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, b); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, b := range buckets {
		b := b // per-iteration copy (go 1.21 loop-variable semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, b)
		})
	}
	return g.Wait()
}

// KNearestL2Batch answers KNearestL2 for every query using up to workers
// goroutines. Result i belongs to queries[i]. The tree must not be mutated
// while the batch runs.
func (t *KdTree[V]) KNearestL2Batch(ctx context.Context, queries []Point, k, workers int) ([][]Neighbor[V], error) {
	results := make([][]Neighbor[V], len(queries))
	if workers < 1 {
		workers = 1
	}

	// Split queries across workers. Each worker owns a contiguous range of
	// result slots, so no synchronization is needed for writes.
	perWorker := (len(queries) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(queries); start += perWorker {
		start, end := start, min(start+perWorker, len(queries))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := t.KNearestL2(queries[i], k)
				if err != nil {
					return err
				}
				results[i] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
