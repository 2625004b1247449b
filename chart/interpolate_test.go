package chart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curvechart/chart"
)

func TestInterpolateByValuesStaysWithinValues(t *testing.T) {
	t.Parallel()

	values := []float64{7, -3, 12.5, 0, 4}
	for _, r := range []chart.Range{
		chart.BinaryRange,
		{Start: 0, EndInclusive: 0},
		{Start: 0.25, EndInclusive: 0.75},
		{Start: 0.9, EndInclusive: 1},
		{Start: 0.5, EndInclusive: 0.5},
	} {
		got, err := chart.InterpolateByValues(r, values)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Start, -3.0, "range %v", r)
		assert.LessOrEqual(t, got.EndInclusive, 12.5, "range %v", r)
		assert.LessOrEqual(t, got.Start, got.EndInclusive, "range %v", r)
	}

	full, err := chart.InterpolateByValues(chart.BinaryRange, values)
	require.NoError(t, err)
	require.Equal(t, chart.Range{Start: -3, EndInclusive: 12.5}, full)
}

func TestInterpolateByValuesEmpty(t *testing.T) {
	t.Parallel()

	got, err := chart.InterpolateByValues(chart.BinaryRange, nil)
	require.NoError(t, err)
	require.Equal(t, chart.Range{}, got)
}

func TestInterpolateByValuesRejectsMalformedRanges(t *testing.T) {
	t.Parallel()

	for _, r := range []chart.Range{
		{Start: -0.1, EndInclusive: 0.5},
		{Start: 0.2, EndInclusive: 1.5},
		{Start: 0.6, EndInclusive: 0.4},
	} {
		_, err := chart.InterpolateByValues(r, []float64{0, 1})
		require.Error(t, err, "range %v", r)
		assert.True(t, errors.Is(err, chart.ErrInvalidRange))
		var rangeErr *chart.InvalidRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, r, rangeErr.Range)
	}
}

func TestPixelRoundTrip(t *testing.T) {
	t.Parallel()

	r := chart.Range{Start: -40, EndInclusive: 260}
	for _, width := range []float64{1, 73, 1920} {
		for v := r.Start; v <= r.EndInclusive; v += 12.5 {
			px := chart.ValueToPixelX(v, width, r)
			assert.InDelta(t, v, chart.PixelToValueX(px, width, r), 1e-9)
			py := chart.ValueToPixelY(v, width, r)
			assert.InDelta(t, v, chart.PixelToValueY(py, width, r), 1e-9)
		}
	}
}

func TestPixelMappingDegenerateRange(t *testing.T) {
	t.Parallel()

	flat := chart.Range{Start: 3, EndInclusive: 3}
	assert.Equal(t, 50.0, chart.ValueToPixelX(3, 100, flat))
	assert.Equal(t, 50.0, chart.ValueToPixelY(42, 100, flat))
	assert.Equal(t, 3.0, chart.PixelToValueX(10, 100, flat))
}

func TestValueToPixelYIsInverted(t *testing.T) {
	t.Parallel()

	r := chart.Range{Start: 0, EndInclusive: 10}
	assert.Equal(t, 100.0, chart.ValueToPixelY(0, 100, r))
	assert.Equal(t, 0.0, chart.ValueToPixelY(10, 100, r))
}

func TestBoundaries(t *testing.T) {
	t.Parallel()

	points := []chart.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	left, right, hasLeft, hasRight := chart.Boundaries(points, chart.Range{Start: 2, EndInclusive: 8})
	require.True(t, hasLeft)
	require.True(t, hasRight)
	assert.Equal(t, chart.Point{X: 2, Y: 2}, left)
	assert.Equal(t, chart.Point{X: 8, Y: 8}, right)
}

func TestBoundariesOnSamplesAndOutside(t *testing.T) {
	t.Parallel()

	points := []chart.Point{{X: 10, Y: 1}, {X: 0, Y: 0}, {X: 5, Y: 4}}
	_, _, hasLeft, hasRight := chart.Boundaries(points, chart.Range{Start: 5, EndInclusive: 20})
	assert.False(t, hasLeft, "edge on a sample needs no boundary point")
	assert.False(t, hasRight, "edge past the last sample has nothing to interpolate")

	visible := chart.VisiblePoints(points, chart.Range{Start: 2.5, EndInclusive: 7.5})
	assert.Equal(t, []chart.Point{{X: 2.5, Y: 2}, {X: 5, Y: 4}, {X: 7.5, Y: 2.5}}, visible)
}

func TestBoundsYIncludesBoundaryPoints(t *testing.T) {
	t.Parallel()

	points := []chart.Point{{X: 0, Y: 0}, {X: 10, Y: 100}}
	minY, maxY, ok := chart.BoundsY(points, chart.Range{Start: 2, EndInclusive: 8})
	require.True(t, ok)
	assert.InDelta(t, 20, minY, 1e-9)
	assert.InDelta(t, 80, maxY, 1e-9)

	_, _, ok = chart.BoundsY(nil, chart.Range{Start: 2, EndInclusive: 8})
	assert.False(t, ok)
}

func TestRangeHelpers(t *testing.T) {
	t.Parallel()

	r := chart.NewRange(0.8, 0.2)
	assert.Equal(t, chart.Range{Start: 0.2, EndInclusive: 0.8}, r)
	assert.InDelta(t, 0.6, r.Distance(), 1e-12)
	assert.InDelta(t, 0.5, r.Center(), 1e-12)
	assert.True(t, r.Shift(0.1).Equal(chart.Range{Start: 0.3, EndInclusive: 0.9}))
	assert.Equal(t, chart.BinaryRange, chart.Range{Start: -1, EndInclusive: 2}.ClampToPercent())
	assert.True(t, chart.BinaryRange.ContainsRange(r))
	assert.False(t, r.Contains(0.9))
}
