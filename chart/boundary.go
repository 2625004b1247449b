package chart

import "sort"

// Boundaries synthesizes the points where the polyline through points
// crosses the left and right edge of r. An edge that coincides with a
// sample, or that lies outside the sampled span, yields no point.
func Boundaries(points []Point, r Range) (left, right Point, hasLeft, hasRight bool) {
	sorted := sortedByX(points)
	left, hasLeft = crossing(sorted, r.Start)
	right, hasRight = crossing(sorted, r.EndInclusive)
	return left, right, hasLeft, hasRight
}

// crossing interpolates the polyline at x if x falls strictly between two
// samples.
func crossing(sorted []Point, x float64) (Point, bool) {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].X >= x })
	if i == 0 || i == len(sorted) || sorted[i].X == x {
		return Point{}, false
	}
	p0, p1 := sorted[i-1], sorted[i]
	y := p0.Y + (x-p0.X)*(p1.Y-p0.Y)/(p1.X-p0.X)
	return Point{X: x, Y: y}, true
}

// VisiblePoints returns the samples inside r, in x order, bracketed by the
// synthesized boundary points.
func VisiblePoints(points []Point, r Range) []Point {
	sorted := sortedByX(points)
	lo := sort.Search(len(sorted), func(i int) bool { return sorted[i].X >= r.Start })
	hi := sort.Search(len(sorted), func(i int) bool { return sorted[i].X > r.EndInclusive })
	out := make([]Point, 0, hi-lo+2)
	if p, ok := crossing(sorted, r.Start); ok {
		out = append(out, p)
	}
	out = append(out, sorted[lo:hi]...)
	if p, ok := crossing(sorted, r.EndInclusive); ok && r.EndInclusive != r.Start {
		out = append(out, p)
	}
	return out
}

// BoundsY reports the y extent of the points visible within r, including
// boundary points. ok is false when nothing is visible.
func BoundsY(points []Point, r Range) (minY, maxY float64, ok bool) {
	visible := VisiblePoints(points, r)
	if len(visible) == 0 {
		return 0, 0, false
	}
	minY, maxY = visible[0].Y, visible[0].Y
	for _, p := range visible[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return minY, maxY, true
}
