package spatial

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSCAN_TwoClustersAndNoise(t *testing.T) {
	points := []Point{
		{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1}, // cluster A
		{5, 5}, {5.1, 5}, {5, 5.1}, {5.1, 5.1}, // cluster B
		{10, -10}, // noise
	}
	cfg := DefaultDBSCANConfig()
	cfg.Eps = 0.3
	cfg.MinPoints = 3

	res, err := DBSCAN(points, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NumClusters)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1, Noise}, res.Labels)
}

func TestDBSCAN_BorderPointJoinsCluster(t *testing.T) {
	// (0.45, 0) has only two neighbours itself but is reachable from a core
	// point.
	points := []Point{{0.45, 0}, {0, 0}, {0.1, 0}, {0.2, 0}, {0.3, 0}}
	res, err := DBSCAN(points, DBSCANConfig{Eps: 0.16, MinPoints: 3})
	require.NoError(t, err)

	assert.Equal(t, 1, res.NumClusters)
	for i, l := range res.Labels {
		assert.Equal(t, 0, l, "point %d", i)
	}
}

func TestDBSCAN_AllNoise(t *testing.T) {
	points := []Point{{0, 0}, {10, 10}, {20, 20}}
	res, err := DBSCAN(points, DBSCANConfig{Eps: 1, MinPoints: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NumClusters)
	assert.Equal(t, []int{Noise, Noise, Noise}, res.Labels)
}

func TestDBSCAN_MinPointsOneMakesEveryPointACluster(t *testing.T) {
	points := []Point{{0, 0}, {10, 10}, {20, 20}}
	res, err := DBSCAN(points, DBSCANConfig{Eps: 1, MinPoints: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.NumClusters)
	assert.Equal(t, []int{0, 1, 2}, res.Labels)
}

// bruteRadius answers radius queries by linear scan.
type bruteRadius []Point

func (b bruteRadius) Len() int { return len(b) }

func (b bruteRadius) RangeSearchL2(center Point, radius float64, fn func(int) bool) error {
	for i, p := range b {
		if p.DistanceSquared(center) <= radius*radius && !fn(i) {
			return nil
		}
	}
	return nil
}

func TestDBSCAN_MatchesLinearScanIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	var points []Point
	for _, c := range []Point{{0, 0}, {8, 8}, {-6, 7}} {
		for i := 0; i < 60; i++ {
			points = append(points, Point{c[0] + rng.NormFloat64(), c[1] + rng.NormFloat64()})
		}
	}
	for i := 0; i < 20; i++ {
		points = append(points, Point{rng.Float64()*40 - 20, rng.Float64()*40 - 20})
	}
	cfg := DBSCANConfig{Eps: 0.8, MinPoints: 4}

	viaTree, err := DBSCAN(points, cfg)
	require.NoError(t, err)
	viaScan, err := DBSCANWithIndex(points, bruteRadius(points), cfg)
	require.NoError(t, err)

	// Cluster IDs depend only on point order, and core-point membership does
	// not depend on neighbour order; border points reachable from two
	// clusters could differ, so compare cluster counts and core noise.
	assert.Equal(t, viaScan.NumClusters, viaTree.NumClusters)
	for i := range points {
		assert.Equal(t, viaScan.Labels[i] == Noise, viaTree.Labels[i] == Noise, "point %d", i)
	}
	assert.GreaterOrEqual(t, viaTree.NumClusters, 3)
}

func TestDBSCAN_Errors(t *testing.T) {
	_, err := DBSCAN([]Point{{0, 0}}, DBSCANConfig{Eps: 0, MinPoints: 1})
	assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)

	_, err = DBSCAN([]Point{{0, 0}}, DBSCANConfig{Eps: 1, MinPoints: 0})
	assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)

	_, err = DBSCAN([]Point{{0, 0}}, DBSCANConfig{Eps: 1, MinPoints: 1, Epsilon: -1})
	assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)

	_, err = DBSCAN([]Point{{0, 0}, {1, 1, 1}}, DefaultDBSCANConfig())
	assert.True(t, errors.Is(err, ErrDimensionMismatch), "%v", err)

	_, err = DBSCANWithIndex([]Point{{0, 0}}, bruteRadius(nil), DefaultDBSCANConfig())
	assert.True(t, errors.Is(err, ErrLengthMismatch), "%v", err)

	res, err := DBSCAN(nil, DefaultDBSCANConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Labels)
	assert.Equal(t, 0, res.NumClusters)
}
