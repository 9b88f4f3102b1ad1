package spatial

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidate_MergesNearbyPoints(t *testing.T) {
	points := []Point{
		{0, 0}, {0.05, 0}, {0, 0.05}, // group 0
		{5, 5},                       // group 1
		{10, 0}, {10.08, 0.01},       // group 2
	}
	cfg := DefaultConsolidateConfig()
	cfg.Tolerance = 0.1

	res, err := Consolidate(points, cfg)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 1, 2, 2}, res.Groups)
	want := []Point{
		{0.05 / 3, 0.05 / 3},
		{5, 5},
		{10.04, 0.005},
	}
	if diff := cmp.Diff(want, res.Centroids, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("centroids mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidate_IsTransitive(t *testing.T) {
	// Neighbours are 0.9 apart; the ends are far beyond tolerance.
	var points []Point
	for i := 0; i < 10; i++ {
		points = append(points, Point{float64(i) * 0.9, 0, 0})
	}
	res, err := Consolidate(points, ConsolidateConfig{Tolerance: 1})
	require.NoError(t, err)

	assert.Len(t, res.Centroids, 1)
	assert.InDelta(t, 4.05, res.Centroids[0][0], 1e-12)
}

func TestConsolidate_CollidingBinsDoNotMerge(t *testing.T) {
	// A single bin makes every point a candidate; only distance decides.
	points := []Point{{0, 0}, {3, 0}, {0, 3}, {0.01, 0}}
	res, err := Consolidate(points, ConsolidateConfig{Tolerance: 0.1, BinCount: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0}, res.Groups)
	assert.Len(t, res.Centroids, 3)
}

func TestConsolidate_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	points := make([]Point, 300)
	for i := range points {
		points[i] = Point{rng.Float64() * 20, rng.Float64() * 20}
	}
	const tol = 0.4

	uf := NewUnionFind(len(points))
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].DistanceSquared(points[j]) <= tol*tol {
				uf.Union(i, j)
			}
		}
	}

	res, err := Consolidate(points, ConsolidateConfig{Tolerance: tol})
	require.NoError(t, err)
	assert.Equal(t, uf.Labels(), res.Groups)
	assert.Len(t, res.Centroids, uf.Sets())
}

func TestConsolidate_EdgeCases(t *testing.T) {
	res, err := Consolidate(nil, DefaultConsolidateConfig())
	require.NoError(t, err)
	assert.NotNil(t, res.Centroids)
	assert.Empty(t, res.Groups)

	_, err = Consolidate([]Point{{0, 0}}, ConsolidateConfig{Tolerance: 0})
	assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)

	_, err = Consolidate([]Point{{0, 0}}, ConsolidateConfig{Tolerance: 1, BinCount: -1})
	assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)

	_, err = Consolidate([]Point{{0, 0}, {1, 1, 1}}, DefaultConsolidateConfig())
	assert.True(t, errors.Is(err, ErrDimensionMismatch), "%v", err)

	_, err = Consolidate([]Point{{0, 0, 0, 0}}, DefaultConsolidateConfig())
	assert.True(t, errors.Is(err, ErrInvalidDimension), "%v", err)
}
