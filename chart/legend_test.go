package chart_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curvechart/chart"
	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

func TestXLegendFullDomain(t *testing.T) {
	t.Parallel()

	l := &chart.XLegend{Count: 5, Formatter: format.Short{}}
	domain := chart.Range{Start: 0, EndInclusive: 100}
	labels := l.Labels(domain, domain, 200)
	require.Len(t, labels, 11)
	for i, label := range labels {
		assert.InDelta(t, float64(i*10), label.Value, 1e-9)
		assert.InDelta(t, float64(i*20), label.Position, 1e-9)
		if i%2 == 0 {
			assert.Equal(t, uint8(255), label.Alpha, "label %v", label.Value)
		} else {
			assert.Equal(t, uint8(0), label.Alpha, "label %v", label.Value)
		}
	}
	assert.Equal(t, "0", labels[0].Text)
	assert.Equal(t, "20.000", labels[2].Text)
}

func TestXLegendDoublesDensityWhenZoomed(t *testing.T) {
	t.Parallel()

	l := &chart.XLegend{Count: 5, Formatter: format.Short{}}
	domain := chart.Range{Start: 0, EndInclusive: 100}

	half := l.Labels(domain, chart.Range{Start: 0, EndInclusive: 50}, 100)
	require.Len(t, half, 11)
	assert.InDelta(t, 5, half[1].Value, 1e-9)
	assert.Equal(t, uint8(255), half[2].Alpha)
	assert.Equal(t, uint8(0), half[1].Alpha)

	between := l.Labels(domain, chart.Range{Start: 0, EndInclusive: 100 / 1.5}, 100)
	want := uint8(math.Round(255 * math.Log2(1.5)))
	require.Greater(t, len(between), 2)
	assert.Equal(t, uint8(255), between[0].Alpha)
	assert.Equal(t, want, between[1].Alpha, "alternate labels fade with the zoom exponent")
}

func TestXLegendScrolledWindow(t *testing.T) {
	t.Parallel()

	l := &chart.XLegend{Count: 5, Formatter: format.Short{}}
	labels := l.Labels(chart.Range{Start: 0, EndInclusive: 100}, chart.Range{Start: 33, EndInclusive: 83}, 100)
	require.NotEmpty(t, labels)
	for _, label := range labels {
		assert.GreaterOrEqual(t, label.Value, 33.0)
		assert.LessOrEqual(t, label.Value, 83.0)
	}
	assert.InDelta(t, 35, labels[0].Value, 1e-9)
	assert.Empty(t, l.Labels(chart.Range{}, chart.Range{}, 100))
}

func TestYLegendCrossfade(t *testing.T) {
	t.Parallel()

	l := &chart.YLegend{Count: 5, Formatter: format.Short{}}
	l.Rescale(0, 100)
	assert.Empty(t, l.Labels(chart.Range{Start: 0, EndInclusive: 100}, 100), "new labels start transparent")

	l.Update(1)
	labels := l.Labels(chart.Range{Start: 0, EndInclusive: 100}, 100)
	require.Len(t, labels, 5)
	assert.Equal(t, 20.0, labels[1].Value)
	assert.Equal(t, 80.0, labels[1].Position)
	assert.Equal(t, uint8(255), labels[1].Alpha)

	l.Rescale(0, 50)
	l.Update(0.5)
	labels = l.Labels(chart.Range{Start: 0, EndInclusive: 75}, 100)
	require.Len(t, labels, 10)
	for _, label := range labels {
		assert.Equal(t, uint8(128), label.Alpha)
	}

	l.Update(1)
	assert.Len(t, l.Labels(chart.Range{Start: 0, EndInclusive: 50}, 100), 5)
}
