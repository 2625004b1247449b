package chart

// InterpolateByValues maps the percent range onto the span of values. An
// empty value list spans [0,0]. A malformed percent range is a programming
// error and is reported with an *InvalidRangeError.
func InterpolateByValues(percent Range, values []float64) (Range, error) {
	if !percent.IsPercent() {
		return Range{}, &InvalidRangeError{Range: percent}
	}
	var minV, maxV float64
	for i, v := range values {
		if i == 0 {
			minV, maxV = v, v
			continue
		}
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	length := maxV - minV
	return Range{
		Start:        minV + percent.Start*length,
		EndInclusive: minV + percent.EndInclusive*length,
	}, nil
}

// ValueToPixelX maps a value onto a horizontal window of the given size.
// A degenerate range maps every value onto the middle of the window.
func ValueToPixelX(value, windowSize float64, r Range) float64 {
	if r.Distance() == 0 {
		return windowSize / 2
	}
	weight := windowSize / r.Distance()
	return (value - r.Start) * weight
}

// PixelToValueX is the inverse of ValueToPixelX. A degenerate range yields
// its only value.
func PixelToValueX(pixel, windowSize float64, r Range) float64 {
	if r.Distance() == 0 || windowSize == 0 {
		return r.Start
	}
	weight := windowSize / r.Distance()
	return r.Start + pixel/weight
}

// ValueToPixelY maps a value onto a vertical window whose origin is at the
// top, so larger values land closer to zero.
func ValueToPixelY(value, windowSize float64, r Range) float64 {
	if r.Distance() == 0 {
		return windowSize / 2
	}
	weight := windowSize / r.Distance()
	return windowSize - (value-r.Start)*weight
}

// PixelToValueY is the inverse of ValueToPixelY.
func PixelToValueY(pixel, windowSize float64, r Range) float64 {
	if r.Distance() == 0 || windowSize == 0 {
		return r.Start
	}
	weight := windowSize / r.Distance()
	return r.Start + (windowSize-pixel)/weight
}

// Viewport couples a pixel window with the value ranges shown on each axis.
type Viewport struct {
	Width, Height float64
	X, Y          Range
}

// ToPixel maps a value-space point into the viewport.
func (v Viewport) ToPixel(p Point) Point {
	return Point{
		X: ValueToPixelX(p.X, v.Width, v.X),
		Y: ValueToPixelY(p.Y, v.Height, v.Y),
	}
}

// ToValue maps a pixel-space point back into value space.
func (v Viewport) ToValue(p Point) Point {
	return Point{
		X: PixelToValueX(p.X, v.Width, v.X),
		Y: PixelToValueY(p.Y, v.Height, v.Y),
	}
}

// Polyline maps every point into the viewport.
func (v Viewport) Polyline(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = v.ToPixel(p)
	}
	return out
}
