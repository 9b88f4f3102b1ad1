package spatial

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_BalancedBuildIsLogged(t *testing.T) {
	var buf bytes.Buffer
	_, err := CreateBalanced(2, 1e-8,
		[]Point{{0, 0}, {1, 1}, {2, 2}}, []int{0, 1, 2},
		WithLogger(bufferLogger(&buf)))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "balanced build completed")
	assert.Contains(t, out, "structure=kdtree")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "depth=2")
}

func TestLogger_GridEvents(t *testing.T) {
	var buf bytes.Buffer
	g, err := NewHashGrid[int](3, 8, 1, WithLogger(bufferLogger(&buf)))
	require.NoError(t, err)

	require.NoError(t, g.Resize(16))
	assert.Contains(t, buf.String(), "old_bins=8")
	assert.Contains(t, buf.String(), "new_bins=16")
	assert.Contains(t, buf.String(), "dimension=3")

	buf.Reset()
	g.version = math.MaxInt32
	g.Clear()
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "tag=version")
}

func TestLogger_NilAndNoop(t *testing.T) {
	// A nil logger disables logging instead of panicking.
	g, err := NewHashGrid[int](2, 4, 1, WithLogger(nil))
	require.NoError(t, err)
	require.NoError(t, g.Resize(8))

	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
