package chart

import (
	"math"

	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

// AxisLabel is one positioned, formatted label along an axis.
type AxisLabel struct {
	Value    float64
	Position float64
	Text     string
	Alpha    uint8
}

// XLegend places labels along the X axis. Label density doubles each time
// the zoom level crosses a power of two, with the labels that are about to
// join fading in between the two densities.
type XLegend struct {
	Count     int
	Formatter format.Formatter
}

// NewXLegend builds an X legend from cfg.
func NewXLegend(cfg Config) *XLegend {
	return &XLegend{Count: max(cfg.LegendCount, 1), Formatter: cfg.formatter()}
}

// Labels computes the labels for the visible value range within domain,
// laid out across width pixels.
func (l *XLegend) Labels(domain, visible Range, width float64) []AxisLabel {
	total := domain.Distance()
	span := visible.Distance()
	if total <= 0 || span <= 0 || width <= 0 {
		return nil
	}
	count := max(l.Count, 1)
	zoom := total / span
	exponent := max(math.Log2(zoom), 0)
	level := floor(exponent)
	maxStep := total / float64(2*count)
	step := maxStep / math.Exp2(level)
	fade := uint8(math.Round(255 * math.Abs(level-exponent)))

	// Candidates sit on the lattice domain.Start - maxStep + k*step; only the
	// visible slice of it is walked. Parity is counted from domain.Start so
	// the first sample always carries a label.
	origin := domain.Start - maxStep
	shift := int64(math.Exp2(level))
	first := max(floor((visible.Start-origin)/step), 0)
	var labels []AxisLabel
	last := math.Inf(-1)
	for k := first; ; k++ {
		v := origin + k*step
		if v > visible.EndInclusive+step*epsilon {
			break
		}
		if v < visible.Start-step*epsilon || v-last < step/2 {
			continue
		}
		last = v
		alpha := uint8(255)
		if (int64(k)-shift)%2 != 0 {
			alpha = fade
		}
		labels = append(labels, AxisLabel{
			Value:    v,
			Position: ValueToPixelX(v, width, visible),
			Text:     l.Formatter.Format(v, zoom),
			Alpha:    alpha,
		})
	}
	return labels
}

// YLegend places evenly spaced labels along the Y axis. A rescale
// crossfades from the previous series to the new one while both slide with
// the animated bounds.
type YLegend struct {
	Count     int
	Formatter format.Formatter

	previous []float64
	current  []float64
	fade     float64
}

// NewYLegend builds a Y legend from cfg.
func NewYLegend(cfg Config) *YLegend {
	return &YLegend{Count: max(cfg.LegendCount, 1), Formatter: cfg.formatter(), fade: 1}
}

// Rescale starts a crossfade towards labels for the bounds [minY, maxY].
func (l *YLegend) Rescale(minY, maxY float64) {
	next := l.series(minY, maxY)
	if equalSeries(next, l.current) {
		return
	}
	l.previous = l.current
	l.current = next
	l.fade = 0
}

// Update sets the crossfade progress, usually the Y axis tension.
func (l *YLegend) Update(fade float64) {
	l.fade = clamp(fade, 0, 1)
	if l.fade == 1 {
		l.previous = nil
	}
}

// Labels positions the label series for a drawing area of height pixels
// showing bounds y.
func (l *YLegend) Labels(y Range, height float64) []AxisLabel {
	var labels []AxisLabel
	add := func(values []float64, alpha float64) {
		a := uint8(math.Round(255 * alpha))
		if a == 0 {
			return
		}
		for _, v := range values {
			labels = append(labels, AxisLabel{
				Value:    v,
				Position: ValueToPixelY(v, height, y),
				Text:     l.Formatter.Format(v, 1),
				Alpha:    a,
			})
		}
	}
	add(l.previous, 1-l.fade)
	add(l.current, l.fade)
	return labels
}

func (l *YLegend) series(minY, maxY float64) []float64 {
	count := max(l.Count, 1)
	if maxY <= minY || count == 1 {
		return []float64{minY}
	}
	step := (maxY - minY) / float64(count)
	out := make([]float64, count)
	for i := range out {
		out[i] = minY + step*float64(i)
	}
	return out
}

func equalSeries(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nearlyEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
