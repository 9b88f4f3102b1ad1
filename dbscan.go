package spatial

import (
	"fmt"
	"math"
)

// Noise is the label DBSCAN assigns to points that belong to no cluster.
const Noise = -1

const unvisited = -2

// DBSCANConfig controls DBSCAN clustering.
// Start with [DefaultDBSCANConfig] and override the fields you need.
type DBSCANConfig struct {
	// Eps is the neighbourhood radius (Euclidean). Must be > 0. Default: 0.5.
	Eps float64

	// MinPoints is the number of points, including the point itself, a
	// neighbourhood needs for its center to be a core point. Must be >= 1.
	// Default: 5.
	MinPoints int

	// Epsilon is the equality tolerance of the k-d tree built over the
	// points. 0 means 1e-9. Must be >= 0.
	Epsilon float64

	// Logger receives a summary record per call. Default: NoopLogger().
	Logger *Logger
}

// DBSCANResult contains the output of DBSCAN.
type DBSCANResult struct {
	// Labels assigns each point a cluster ID in 0..NumClusters-1, or Noise.
	Labels []int

	// NumClusters is the number of clusters found.
	NumClusters int
}

// DefaultDBSCANConfig returns a DBSCANConfig with reasonable defaults.
func DefaultDBSCANConfig() DBSCANConfig {
	return DBSCANConfig{
		Eps:       0.5,
		MinPoints: 5,
	}
}

func (cfg *DBSCANConfig) validate() error {
	if !(cfg.Eps > 0) || math.IsInf(cfg.Eps, 1) {
		return fmt.Errorf("%w: Eps must be > 0, got %v", ErrInvalidConfig, cfg.Eps)
	}
	if cfg.MinPoints < 1 {
		return fmt.Errorf("%w: MinPoints must be >= 1, got %d", ErrInvalidConfig, cfg.MinPoints)
	}
	if cfg.Epsilon < 0 {
		return fmt.Errorf("%w: Epsilon must be >= 0, got %v", ErrInvalidConfig, cfg.Epsilon)
	}
	return nil
}

func (cfg *DBSCANConfig) applyDefaults() {
	if cfg.Epsilon == 0 {
		cfg.Epsilon = 1e-9
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
}

// DBSCAN clusters points by density. It builds a balanced k-d tree over the
// points and answers every neighbourhood query with RangeSearchL2.
// All points must share the same dimensionality (>= 2).
func DBSCAN(points []Point, cfg DBSCANConfig) (*DBSCANResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if len(points) == 0 {
		return &DBSCANResult{Labels: []int{}}, nil
	}

	ids := make([]int, len(points))
	for i := range ids {
		ids[i] = i
	}
	tree, err := CreateBalanced(len(points[0]), cfg.Epsilon, points, ids, WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	return DBSCANWithIndex(points, tree, cfg)
}

// DBSCANWithIndex runs DBSCAN using a prebuilt index whose values are
// indices into points.
func DBSCANWithIndex(points []Point, index RadiusSearcher[int], cfg DBSCANConfig) (*DBSCANResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if index.Len() != len(points) {
		return nil, fmt.Errorf("%w: index holds %d values for %d points", ErrLengthMismatch, index.Len(), len(points))
	}

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = unvisited
	}
	neighbours := func(i int) ([]int, error) {
		var out []int
		err := index.RangeSearchL2(points[i], cfg.Eps, collectInto(&out))
		return out, err
	}

	clusterID := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		seeds, err := neighbours(i)
		if err != nil {
			return nil, err
		}
		if len(seeds) < cfg.MinPoints {
			labels[i] = Noise
			continue
		}

		labels[i] = clusterID
		// Queue-based expansion; seeds grows as core points are found.
		for j := 0; j < len(seeds); j++ {
			idx := seeds[j]
			if labels[idx] == Noise {
				labels[idx] = clusterID // noise becomes a border point
			}
			if labels[idx] != unvisited {
				continue
			}
			labels[idx] = clusterID
			more, err := neighbours(idx)
			if err != nil {
				return nil, err
			}
			if len(more) >= cfg.MinPoints {
				seeds = append(seeds, more...)
			}
		}
		clusterID++
	}

	cfg.Logger.Debug("dbscan completed",
		"points", len(points),
		"clusters", clusterID,
		"eps", cfg.Eps,
		"min_points", cfg.MinPoints,
	)
	return &DBSCANResult{Labels: labels, NumClusters: clusterID}, nil
}
