package chart

import (
	"image/color"
	"math"
	"slices"

	"github.com/charmbracelet/log"
)

// IntersectionPoint is the sample of one line under the popup line.
type IntersectionPoint struct {
	LineName  string
	LineColor color.NRGBA
	X, Y      float64
}

// FindIntersections returns the samples nearest to valueX. Only samples at
// the single nearest x across all lines are kept, and only if that x lies
// within deltaPercent of the width of xRange. Within a line, equally distant
// samples resolve to the lower x.
func FindIntersections(lines []CurveLine, valueX float64, xRange Range, deltaPercent float64) []IntersectionPoint {
	type candidate struct {
		line  int
		point Point
		dist  float64
	}
	var candidates []candidate
	for i, l := range lines {
		p, ok := nearestSample(l.Points, valueX)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{line: i, point: p, dist: math.Abs(p.X - valueX)})
	}
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.dist < best.dist || (c.dist == best.dist && c.point.X < best.point.X) {
			best = c
		}
	}
	if best.dist > xRange.Distance()*deltaPercent {
		return nil
	}
	var out []IntersectionPoint
	for _, c := range candidates {
		if c.point.X != best.point.X {
			continue
		}
		l := lines[c.line]
		out = append(out, IntersectionPoint{
			LineName:  l.Name,
			LineColor: l.Color,
			X:         c.point.X,
			Y:         c.point.Y,
		})
	}
	return out
}

func nearestSample(points []Point, x float64) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	bestDist := math.Abs(best.X - x)
	for _, p := range points[1:] {
		d := math.Abs(p.X - x)
		if d < bestDist || (d == bestDist && p.X < best.X) {
			best, bestDist = p, d
		}
	}
	return best, true
}

// Tracker follows a touch over a LineEngine's drawing area and reports the
// samples under it.
type Tracker struct {
	Changed Emitter[IntersectionsChanged]

	engine       *LineEngine
	deltaPercent float64
	log          *log.Logger

	active bool
	touchX float64

	x      float64
	points []IntersectionPoint
}

// NewTracker builds a tracker over engine.
func NewTracker(engine *LineEngine, cfg Config) *Tracker {
	return &Tracker{
		engine:       engine,
		deltaPercent: cfg.DeltaTrackingTouchPercent,
		log:          cfg.logger().With("engine", "tracker"),
	}
}

// TouchDown starts tracking at pixel x.
func (t *Tracker) TouchDown(x float64) {
	t.active = true
	t.touchX = x
	t.update()
}

// TouchMove moves the tracked position. It is ignored when no touch is
// active.
func (t *Tracker) TouchMove(x float64) {
	if !t.active {
		return
	}
	t.touchX = x
	t.update()
}

// TouchUp stops tracking and clears the intersections.
func (t *Tracker) TouchUp() {
	if !t.active {
		return
	}
	t.active = false
	t.x = t.touchX
	t.points = nil
	t.Changed.Emit(IntersectionsChanged{X: t.x})
}

// Refresh recomputes the intersections for the current touch, for instance
// after the visible range moved underneath it.
func (t *Tracker) Refresh() {
	if t.active {
		t.update()
	}
}

// Active reports whether a touch is being tracked.
func (t *Tracker) Active() bool {
	return t.active
}

// Intersections returns the pixel x of the popup line and the samples under
// it.
func (t *Tracker) Intersections() (x float64, points []IntersectionPoint) {
	return t.x, slices.Clone(t.points)
}

func (t *Tracker) update() {
	vp := t.engine.Viewport()
	if vp.Width <= 0 {
		return
	}
	valueX := PixelToValueX(t.touchX, vp.Width, vp.X)
	points := FindIntersections(t.engine.TargetLines(), valueX, vp.X, t.deltaPercent)
	x := t.touchX
	if len(points) > 0 {
		x = ValueToPixelX(points[0].X, vp.Width, vp.X)
	}
	if x == t.x && slices.Equal(points, t.points) {
		return
	}
	t.x, t.points = x, points
	t.log.Debug("intersections", "x", x, "count", len(points))
	t.Changed.Emit(IntersectionsChanged{X: x, Points: slices.Clone(points)})
}
