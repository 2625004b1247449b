package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curvechart/chart"
)

func TestFindIntersectionsTie(t *testing.T) {
	t.Parallel()

	a := line("a", chart.Point{X: 0, Y: 0}, chart.Point{X: 10, Y: 10})
	b := line("bb", chart.Point{X: 0, Y: 5}, chart.Point{X: 10, Y: 5})
	xRange := chart.Range{Start: 0, EndInclusive: 10}

	got := chart.FindIntersections([]chart.CurveLine{a, b}, 5, xRange, 1)
	require.Len(t, got, 2)
	// Both samples are equally far away; the lower x wins and both lines
	// share it.
	assert.Equal(t, chart.IntersectionPoint{LineName: "a", LineColor: a.Color, X: 0, Y: 0}, got[0])
	assert.Equal(t, chart.IntersectionPoint{LineName: "bb", LineColor: b.Color, X: 0, Y: 5}, got[1])

	assert.Empty(t, chart.FindIntersections([]chart.CurveLine{a, b}, 5, xRange, 0.1), "outside the tolerance")
}

func TestFindIntersectionsNearestXWins(t *testing.T) {
	t.Parallel()

	a := line("a", chart.Point{X: 0, Y: 1}, chart.Point{X: 4, Y: 2})
	b := line("bb", chart.Point{X: 0, Y: 3}, chart.Point{X: 5.5, Y: 4})
	xRange := chart.Range{Start: 0, EndInclusive: 10}

	got := chart.FindIntersections([]chart.CurveLine{a, b}, 5, xRange, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "bb", got[0].LineName)
	assert.Equal(t, 5.5, got[0].X)

	assert.Empty(t, chart.FindIntersections(nil, 5, xRange, 1))
}

func TestTrackerSnapsToSamples(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DeltaTrackingTouchPercent = 0.05
	e := chart.NewLineEngine(cfg)
	e.Measure(100, 100)
	var points []chart.Point
	for x := 0.0; x <= 10; x++ {
		points = append(points, chart.Point{X: x, Y: x * x})
	}
	e.SetLines([]chart.CurveLine{line("a", points...)})
	e.Settle()

	tr := chart.NewTracker(e, cfg)
	var events []chart.IntersectionsChanged
	tr.Changed.Subscribe(func(ev chart.IntersectionsChanged) { events = append(events, ev) })

	tr.TouchMove(30)
	assert.Empty(t, events, "moves without a touch are ignored")

	tr.TouchDown(52)
	require.Len(t, events, 1)
	assert.InDelta(t, 50, events[0].X, 1e-9)
	require.Len(t, events[0].Points, 1)
	assert.Equal(t, 25.0, events[0].Points[0].Y)

	tr.TouchMove(53)
	assert.Len(t, events, 1, "same sample, no event")

	tr.TouchMove(71)
	require.Len(t, events, 2)
	assert.Equal(t, 49.0, events[1].Points[0].Y)

	tr.TouchUp()
	require.Len(t, events, 3)
	assert.Empty(t, events[2].Points)
	assert.False(t, tr.Active())
}
