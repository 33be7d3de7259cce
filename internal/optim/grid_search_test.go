package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]float64{0, 0.5, 1, 1.5})
	points, err := g.Search(context.Background(), func(x float64) (float64, error) {
		return (x - 0.5) * (x - 0.5), nil
	})
	require.NoError(t, err)
	require.Len(t, points, 4)

	best, ok := Best(points)
	require.True(t, ok)
	assert.Equal(t, 0.5, best.Param)

	within, ok := LargestWithin(points, 0.25)
	require.True(t, ok)
	assert.Equal(t, 1.0, within.Param)

	_, ok = LargestWithin(points, -1)
	assert.False(t, ok)
	_, ok = Best(nil)
	assert.False(t, ok)
}

func TestGridSearchStops(t *testing.T) {
	g := NewGridSearch([]float64{1, 2, 3})
	boom := errors.New("boom")
	points, err := g.Search(context.Background(), func(x float64) (float64, error) {
		if x == 2 {
			return 0, boom
		}
		return x, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, points, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	points, err = g.Search(ctx, func(x float64) (float64, error) { return x, nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, points)
}
