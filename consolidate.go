package spatial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ConsolidateConfig controls Consolidate.
// Start with [DefaultConsolidateConfig] and override the fields you need.
type ConsolidateConfig struct {
	// Tolerance is the Euclidean distance within which two points are merged.
	// Merging is transitive: chains of close points collapse into one group.
	// It is also the grid cell size. Must be > 0. Default: 1e-6.
	Tolerance float64

	// BinCount is the number of hash grid bins. 0 means twice the number of
	// points, with a floor of 64. Must be >= 0.
	BinCount int

	// Logger receives a summary record per call. Default: NoopLogger().
	Logger *Logger
}

// ConsolidateResult is the output of Consolidate.
type ConsolidateResult struct {
	// Centroids holds the mean of every group, indexed by group ID.
	Centroids []Point

	// Groups maps each input point to its group ID.
	Groups []int
}

// DefaultConsolidateConfig returns a ConsolidateConfig with reasonable defaults.
func DefaultConsolidateConfig() ConsolidateConfig {
	return ConsolidateConfig{Tolerance: 1e-6}
}

func (cfg *ConsolidateConfig) validate() error {
	if !(cfg.Tolerance > 0) || math.IsInf(cfg.Tolerance, 1) {
		return fmt.Errorf("%w: Tolerance must be > 0, got %v", ErrInvalidConfig, cfg.Tolerance)
	}
	if cfg.BinCount < 0 {
		return fmt.Errorf("%w: BinCount must be >= 0, got %d", ErrInvalidConfig, cfg.BinCount)
	}
	return nil
}

func (cfg *ConsolidateConfig) applyDefaults(n int) {
	if cfg.BinCount == 0 {
		cfg.BinCount = max(2*n, 64)
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
}

// Consolidate merges 2D or 3D points lying within cfg.Tolerance of each other
// and returns one centroid per merged group. Candidate pairs come from a
// HashGrid with cells of side Tolerance, so each point only examines the
// cells overlapping its tolerance box.
func Consolidate(points []Point, cfg ConsolidateConfig) (*ConsolidateResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults(len(points))
	if len(points) == 0 {
		return &ConsolidateResult{Centroids: []Point{}, Groups: []int{}}, nil
	}

	dims := len(points[0])
	grid, err := NewHashGrid[int](dims, cfg.BinCount, cfg.Tolerance, WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		if err := grid.Insert(p, i); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}

	uf := NewUnionFind(len(points))
	tol2 := cfg.Tolerance * cfg.Tolerance
	from := make(Point, dims)
	to := make(Point, dims)
	for i, p := range points {
		for d := range p {
			from[d] = p[d] - cfg.Tolerance
			to[d] = p[d] + cfg.Tolerance
		}
		err := grid.SearchRegion(from, to, func(j int) bool {
			// Bins alias distinct cells, so the distance check is mandatory.
			if j > i && p.DistanceSquared(points[j]) <= tol2 {
				uf.Union(i, j)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}

	groups := uf.Labels()
	sums := make([][]float64, uf.Sets())
	counts := make([]float64, uf.Sets())
	for i, g := range groups {
		if sums[g] == nil {
			sums[g] = make([]float64, dims)
		}
		floats.Add(sums[g], points[i])
		counts[g]++
	}
	centroids := make([]Point, len(sums))
	for g, s := range sums {
		floats.Scale(1/counts[g], s)
		centroids[g] = Point(s)
	}

	cfg.Logger.Debug("consolidation completed",
		"points", len(points),
		"groups", len(centroids),
		"tolerance", cfg.Tolerance,
	)
	return &ConsolidateResult{Centroids: centroids, Groups: groups}, nil
}
