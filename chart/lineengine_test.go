package chart_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curvechart/chart"
)

const frame = 16 * time.Millisecond

func testConfig() chart.Config {
	cfg := chart.DefaultConfig()
	cfg.Logger = quietLogger()
	return cfg
}

func line(name string, points ...chart.Point) chart.CurveLine {
	return chart.CurveLine{
		Name:   name,
		Color:  color.NRGBA{R: uint8(len(name) * 40), A: 0xff},
		Points: points,
	}
}

// runFrames ticks the engine until it settles, failing after a sane bound.
func runFrames(t *testing.T, tick func(time.Duration) bool) {
	t.Helper()
	for i := 0; tick(frame); i++ {
		require.Less(t, i, 1000, "animation never settled")
	}
}

func TestSetLinesIdenticalSetIsNoop(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	a := line("a", chart.Point{X: 0, Y: 1}, chart.Point{X: 1, Y: 2})
	b := line("bb", chart.Point{X: 0, Y: 3}, chart.Point{X: 1, Y: 0})
	e.SetLines([]chart.CurveLine{a, b})
	runFrames(t, e.Tick)

	var changed, updated int
	e.LinesChanged.Subscribe(func(chart.LinesChanged) { changed++ })
	e.Updated.Subscribe(func(chart.Redraw) { updated++ })

	// Equal by value, not by identity, and in another order.
	e.SetLines([]chart.CurveLine{
		line("bb", chart.Point{X: 0, Y: 3}, chart.Point{X: 1, Y: 0}),
		line("a", chart.Point{X: 0, Y: 1}, chart.Point{X: 1, Y: 2}),
	})
	assert.Zero(t, changed)
	assert.Zero(t, updated)
	assert.False(t, e.Animating())
}

func TestSetLinesRepeatedLineIsNoop(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	a := line("a", chart.Point{X: 0, Y: 1}, chart.Point{X: 1, Y: 2})
	e.SetLines([]chart.CurveLine{a, a})
	runFrames(t, e.Tick)
	require.Len(t, e.Lines(), 1)

	var changed, updated int
	e.LinesChanged.Subscribe(func(chart.LinesChanged) { changed++ })
	e.Updated.Subscribe(func(chart.Redraw) { updated++ })

	e.SetLines([]chart.CurveLine{a, a})
	e.SetLines([]chart.CurveLine{a})
	assert.Zero(t, changed)
	assert.Zero(t, updated)
	assert.False(t, e.Animating())
	assert.Len(t, e.Lines(), 1)
}

func TestAddRemoveLifecycle(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	l := line("a", chart.Point{X: 0, Y: 0}, chart.Point{X: 10, Y: 5})

	var changes [][]chart.CurveLine
	e.LinesChanged.Subscribe(func(ev chart.LinesChanged) { changes = append(changes, ev.Lines) })

	e.AddLine(l)
	animating := e.AnimatingLines()
	require.Len(t, animating, 1)
	assert.True(t, animating[0].IsAppearing)
	assert.Equal(t, 0.0, animating[0].AnimationValue)
	require.Len(t, changes, 1)
	assert.Equal(t, []chart.CurveLine{l}, changes[0])

	runFrames(t, e.Tick)
	assert.Equal(t, []chart.CurveLine{l}, e.Lines())
	animating = e.AnimatingLines()
	require.Len(t, animating, 1)
	assert.False(t, animating[0].Animating())
	assert.Equal(t, 1.0, animating[0].Opacity())

	e.AddLine(l)
	assert.Len(t, changes, 1, "adding a present line is a no-op")

	e.RemoveLine(l)
	assert.Equal(t, []chart.CurveLine{l}, e.Lines(), "the line stays live while it fades out")
	assert.Empty(t, e.TargetLines())
	require.Len(t, changes, 2)
	assert.Empty(t, changes[1])

	runFrames(t, e.Tick)
	assert.Empty(t, e.Lines())
	assert.Empty(t, e.AnimatingLines())

	e.RemoveLine(l)
	assert.Len(t, changes, 2, "removing an absent line is a no-op")
}

func TestRemoveDuringAppearanceReversesInPlace(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AppearanceEasing = nil
	e := chart.NewLineEngine(cfg)
	l := line("a", chart.Point{X: 0, Y: 0}, chart.Point{X: 1, Y: 1})

	e.AddLine(l)
	e.Tick(cfg.LineDuration / 2)
	before := e.AnimatingLines()[0].Opacity()
	require.InDelta(t, 0.5, before, 1e-9)

	e.RemoveLine(l)
	after := e.AnimatingLines()[0]
	assert.False(t, after.IsAppearing)
	assert.InDelta(t, before, after.Opacity(), 1e-9, "reversing keeps the opacity continuous")

	e.Settle()
	assert.Empty(t, e.Lines())
}

func TestSetLinesDiff(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	a := line("a", chart.Point{X: 0, Y: 0}, chart.Point{X: 1, Y: 1})
	b := line("bb", chart.Point{X: 0, Y: 2}, chart.Point{X: 1, Y: 2})
	c := line("ccc", chart.Point{X: 0, Y: 3}, chart.Point{X: 1, Y: 4})

	e.SetLines([]chart.CurveLine{a, b})
	e.Settle()
	e.SetLines([]chart.CurveLine{b, c})

	states := map[string]bool{}
	for _, l := range e.AnimatingLines() {
		states[l.Name] = l.IsAppearing
	}
	assert.Equal(t, map[string]bool{"a": false, "bb": true, "ccc": true}, states)

	e.Settle()
	assert.ElementsMatch(t, []chart.CurveLine{b, c}, e.Lines())
}

func TestYBoundsFollowRange(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	// y = 50 - x/2 sampled every 20 units across x in [0,100].
	var points []chart.Point
	for x := 0.0; x <= 100; x += 20 {
		points = append(points, chart.Point{X: x, Y: 50 - x/2})
	}
	e.SetLines([]chart.CurveLine{line("a", points...)})
	e.Settle()

	minY, maxY := e.YBounds()
	assert.Equal(t, 0.0, minY)
	assert.Equal(t, 50.0, maxY)

	var axis []chart.YAxisChanged
	e.YAxisChanged.Subscribe(func(ev chart.YAxisChanged) { axis = append(axis, ev) })

	e.SetRange(chart.Range{Start: 0.25, EndInclusive: 0.75}, false)
	assert.Equal(t, chart.Range{Start: 25, EndInclusive: 75}, e.ValueRange())
	require.Len(t, axis, 1)
	assert.InDelta(t, 12.5, axis[0].Min, 1e-9)
	assert.InDelta(t, 37.5, axis[0].Max, 1e-9)

	runFrames(t, e.Tick)
	minY, maxY = e.YBounds()
	assert.InDelta(t, 12.5, minY, 1e-9)
	assert.InDelta(t, 37.5, maxY, 1e-9)
	assert.Equal(t, 1.0, e.Tension())
}

func TestComputeBoundsEmpty(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	minY, maxY := e.ComputeBounds(chart.BinaryRange)
	assert.Zero(t, minY)
	assert.Zero(t, maxY)
	assert.Equal(t, chart.Range{}, e.Domain())
}

func TestSetRangeEvents(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	e.SetLines([]chart.CurveLine{line("a", chart.Point{X: 0, Y: 0}, chart.Point{X: 10, Y: 10})})
	e.Settle()

	var got []chart.RangeChanged
	e.RangeChanged.Subscribe(func(ev chart.RangeChanged) { got = append(got, ev) })

	target := chart.Range{Start: 0.5, EndInclusive: 1}
	e.SetRange(target, true)
	e.SetRange(target, true)
	require.Len(t, got, 1, "an unchanged range is a no-op")
	assert.True(t, got[0].Smooth)
	assert.Equal(t, chart.BinaryRange, e.Range(), "smooth changes start from the old range")
	assert.Equal(t, target, e.TargetRange())

	e.Tick(testConfig().AxisDuration / 2)
	mid := e.Range()
	assert.Greater(t, mid.Start, 0.0)
	assert.Less(t, mid.Start, 0.5)

	runFrames(t, e.Tick)
	assert.True(t, e.Range().Equal(target))

	e.SetRange(chart.BinaryRange, false)
	assert.Equal(t, chart.BinaryRange, e.Range(), "non-smooth changes snap")
	require.Len(t, got, 2)
	assert.False(t, got[1].Smooth)
}

func TestDrawnProjectsIntoPixels(t *testing.T) {
	t.Parallel()

	e := chart.NewLineEngine(testConfig())
	e.Measure(100, 50)
	e.SetLines([]chart.CurveLine{line("a", chart.Point{X: 0, Y: 0}, chart.Point{X: 10, Y: 10})})
	e.Settle()

	drawn := e.Drawn()
	require.Len(t, drawn, 1)
	assert.Equal(t, uint8(255), drawn[0].Alpha)
	assert.Equal(t, []chart.Point{{X: 0, Y: 50}, {X: 100, Y: 0}}, drawn[0].Points)

	e.SetRange(chart.Range{Start: 0.2, EndInclusive: 0.8}, false)
	e.Settle()
	drawn = e.Drawn()
	require.Len(t, drawn[0].Points, 2)
	assert.InDelta(t, 0, drawn[0].Points[0].X, 1e-9)
	assert.InDelta(t, 50, drawn[0].Points[0].Y, 1e-9)
	assert.InDelta(t, 100, drawn[0].Points[1].X, 1e-9)
	assert.InDelta(t, 0, drawn[0].Points[1].Y, 1e-9)
}
