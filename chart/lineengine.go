package chart

import (
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"git.sr.ht/~whereswaldon/curvechart/anim"
)

// DrawnLine is a line projected into pixel space for one frame.
type DrawnLine struct {
	Line   CurveLine
	Alpha  uint8
	Points []Point
}

// LineEngine owns a set of curve lines together with their fade state, the
// visible percent range and the animated Y bounds. It is driven by Tick
// and never touches a clock itself.
type LineEngine struct {
	Updated      Emitter[Redraw]
	LinesChanged Emitter[LinesChanged]
	RangeChanged Emitter[RangeChanged]
	YAxisChanged Emitter[YAxisChanged]

	log *log.Logger

	lines []*AnimatingLine

	percent       Range
	targetPercent Range

	minY, maxY             float64
	targetMinY, targetMaxY float64

	width, height float64
	drawn         []DrawnLine

	appear  *anim.Appearance
	tension *anim.Tension
	axis    *anim.Tension
}

// NewLineEngine builds an engine from cfg.
func NewLineEngine(cfg Config) *LineEngine {
	initial := cfg.InitialRange
	if !initial.IsPercent() || initial.Distance() == 0 {
		initial = BinaryRange
	}
	e := &LineEngine{
		log:           cfg.logger().With("engine", "lines"),
		percent:       initial,
		targetPercent: initial,
		appear:        anim.NewAppearance(cfg.LineDuration, cfg.AppearanceEasing),
		tension:       anim.NewTension(cfg.AxisDuration, cfg.TensionEasing),
		axis:          anim.NewTension(cfg.AxisDuration, cfg.TensionEasing),
	}
	e.appear.OnUpdate = e.onAppearanceUpdate
	e.appear.OnEnd = e.onAppearanceEnd
	e.tension.OnUpdate = e.onTensionUpdate
	e.axis.OnUpdate = e.onAxisUpdate
	return e
}

// SetLines replaces the line set. Lines missing from the current set fade
// in, lines absent from the new set fade out. Setting an identical set is a
// no-op.
func (e *LineEngine) SetLines(lines []CurveLine) {
	lines = uniqueLines(lines)
	if sameLineSet(e.TargetLines(), lines) {
		return
	}
	for _, l := range e.lines {
		if l.IsAppearing && !containsLine(lines, l.CurveLine) {
			l.reverse()
		}
	}
	for _, nl := range lines {
		if existing := e.find(nl); existing != nil {
			if !existing.IsAppearing {
				existing.reverse()
			}
			continue
		}
		e.lines = append(e.lines, &AnimatingLine{CurveLine: nl, IsAppearing: true})
	}
	e.linesMutated()
}

// AddLine fades a single line in. Adding a line that is already present is a
// no-op.
func (e *LineEngine) AddLine(line CurveLine) {
	if existing := e.find(line); existing != nil {
		if existing.IsAppearing {
			return
		}
		existing.reverse()
	} else {
		e.lines = append(e.lines, &AnimatingLine{CurveLine: line, IsAppearing: true})
	}
	e.linesMutated()
}

// RemoveLine fades a single line out. Removing an absent line is a no-op.
func (e *LineEngine) RemoveLine(line CurveLine) {
	existing := e.find(line)
	if existing == nil || !existing.IsAppearing {
		return
	}
	existing.reverse()
	e.linesMutated()
}

func (e *LineEngine) find(line CurveLine) *AnimatingLine {
	for _, l := range e.lines {
		if l.CurveLine.Equal(line) {
			return l
		}
	}
	return nil
}

func (e *LineEngine) linesMutated() {
	e.appear.Start()
	e.LinesChanged.Emit(LinesChanged{Lines: e.TargetLines()})
	e.updateBounds(true)
	e.relayout()
	e.Updated.Emit(Redraw{})
}

// Lines returns every live line, including lines that are still fading out.
func (e *LineEngine) Lines() []CurveLine {
	out := make([]CurveLine, len(e.lines))
	for i, l := range e.lines {
		out[i] = l.CurveLine
	}
	return out
}

// TargetLines returns the lines the engine is converging on.
func (e *LineEngine) TargetLines() []CurveLine {
	out := make([]CurveLine, 0, len(e.lines))
	for _, l := range e.lines {
		if l.IsAppearing {
			out = append(out, l.CurveLine)
		}
	}
	return out
}

// AnimatingLines returns a copy of every live line with its fade state.
func (e *LineEngine) AnimatingLines() []AnimatingLine {
	out := make([]AnimatingLine, len(e.lines))
	for i, l := range e.lines {
		out[i] = *l
	}
	return out
}

func (e *LineEngine) onAppearanceUpdate(value float64) {
	for _, l := range e.lines {
		if l.AnimationValue < value {
			l.AnimationValue = value
		}
	}
	e.relayout()
	e.Updated.Emit(Redraw{})
}

func (e *LineEngine) onAppearanceEnd() {
	removed := 0
	e.lines = slices.DeleteFunc(e.lines, func(l *AnimatingLine) bool {
		l.AnimationValue = 1
		if !l.IsAppearing {
			removed++
			return true
		}
		return false
	})
	if removed > 0 {
		e.log.Debug("removed faded lines", "count", removed)
		e.updateBounds(true)
	}
	e.relayout()
	e.Updated.Emit(Redraw{})
}

// SetRange moves the visible percent range. An unchanged range is a no-op.
// With smooth set the range is tweened, otherwise it snaps.
func (e *LineEngine) SetRange(r Range, smooth bool) {
	r = r.ClampToPercent()
	if r.Start > r.EndInclusive {
		e.log.Debug("ignoring inverted range", "range", r)
		return
	}
	if r.Equal(e.targetPercent) {
		return
	}
	e.targetPercent = r
	if smooth {
		e.axis.Start(e.percent.Start, e.percent.EndInclusive, r.Start, r.EndInclusive)
	} else {
		e.axis.Cancel()
		e.percent = r
	}
	e.RangeChanged.Emit(RangeChanged{Range: r, Smooth: smooth})
	e.updateBounds(smooth)
	e.relayout()
	e.Updated.Emit(Redraw{})
}

func (e *LineEngine) onAxisUpdate(_, start, end float64) {
	e.percent = Range{Start: start, EndInclusive: end}
	e.relayout()
	e.Updated.Emit(Redraw{})
}

// Range is the percent range currently on screen.
func (e *LineEngine) Range() Range {
	return e.percent
}

// TargetRange is the percent range the engine is scrolling towards.
func (e *LineEngine) TargetRange() Range {
	return e.targetPercent
}

// YBounds are the Y bounds currently on screen.
func (e *LineEngine) YBounds() (minY, maxY float64) {
	return e.minY, e.maxY
}

// TargetYBounds are the Y bounds the axis is animating towards.
func (e *LineEngine) TargetYBounds() (minY, maxY float64) {
	return e.targetMinY, e.targetMaxY
}

// Domain is the full x extent of the lines defining the domain.
func (e *LineEngine) Domain() Range {
	r, _ := InterpolateByValues(BinaryRange, e.domainXs())
	return r
}

// ValueRange is the x value range currently on screen.
func (e *LineEngine) ValueRange() Range {
	return e.valueRange(e.percent)
}

func (e *LineEngine) valueRange(percent Range) Range {
	r, err := InterpolateByValues(percent, e.domainXs())
	if err != nil {
		e.log.Error("interpolating x range", "err", err)
		return Range{}
	}
	return r
}

// domainXs collects the x values of the lines the engine converges on, or
// of every live line while all of them are fading out.
func (e *LineEngine) domainXs() []float64 {
	var xs []float64
	for _, l := range e.lines {
		if l.IsAppearing {
			xs = append(xs, l.Xs()...)
		}
	}
	if xs == nil {
		for _, l := range e.lines {
			xs = append(xs, l.Xs()...)
		}
	}
	return xs
}

// ComputeBounds reports the Y extent of every live line within the x value
// range mapped from percent, including boundary points. Empty input yields
// (0, 0).
func (e *LineEngine) ComputeBounds(percent Range) (minY, maxY float64) {
	xr := e.valueRange(percent)
	first := true
	for _, l := range e.lines {
		lo, hi, ok := BoundsY(l.Points, xr)
		if !ok {
			continue
		}
		if first {
			minY, maxY = lo, hi
			first = false
			continue
		}
		minY = min(minY, lo)
		maxY = max(maxY, hi)
	}
	return minY, maxY
}

func (e *LineEngine) updateBounds(smooth bool) {
	newMin, newMax := e.ComputeBounds(e.targetPercent)
	if newMin == e.targetMinY && newMax == e.targetMaxY {
		e.log.Debug("y bounds unchanged", "min", newMin, "max", newMax)
		return
	}
	e.targetMinY, e.targetMaxY = newMin, newMax
	e.YAxisChanged.Emit(YAxisChanged{Min: newMin, Max: newMax, Smooth: smooth})
	e.tension.Start(e.minY, e.maxY, newMin, newMax)
}

func (e *LineEngine) onTensionUpdate(_, minY, maxY float64) {
	e.minY, e.maxY = minY, maxY
	e.relayout()
	e.Updated.Emit(Redraw{})
}

// Tension reports the blend factor of the Y axis tween, 1 when settled.
func (e *LineEngine) Tension() float64 {
	if !e.tension.Running() {
		return 1
	}
	t, _, _ := e.tension.Values()
	return t
}

// Measure sets the pixel size of the drawing area.
func (e *LineEngine) Measure(width, height float64) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	e.relayout()
	e.Updated.Emit(Redraw{})
}

// Size reports the measured pixel size.
func (e *LineEngine) Size() (width, height float64) {
	return e.width, e.height
}

// Viewport describes the current mapping between values and pixels.
func (e *LineEngine) Viewport() Viewport {
	return Viewport{
		Width:  e.width,
		Height: e.height,
		X:      e.ValueRange(),
		Y:      Range{Start: e.minY, EndInclusive: max(e.minY, e.maxY)},
	}
}

func (e *LineEngine) relayout() {
	vp := e.Viewport()
	e.drawn = e.drawn[:0]
	for _, l := range e.lines {
		e.drawn = append(e.drawn, DrawnLine{
			Line:   l.CurveLine,
			Alpha:  uint8(math.Round(clamp(l.Opacity(), 0, 1) * 255)),
			Points: vp.Polyline(VisiblePoints(l.Points, vp.X)),
		})
	}
}

// Drawn returns the pixel-space polylines of the current frame.
func (e *LineEngine) Drawn() []DrawnLine {
	return slices.Clone(e.drawn)
}

// Animating reports whether any tween is in flight.
func (e *LineEngine) Animating() bool {
	return e.appear.Running() || e.tension.Running() || e.axis.Running()
}

// Tick advances every tween by dt and reports whether more frames are
// needed.
func (e *LineEngine) Tick(dt time.Duration) bool {
	e.appear.Tick(dt)
	e.axis.Tick(dt)
	e.tension.Tick(dt)
	return e.Animating()
}

// Settle runs every tween to completion.
func (e *LineEngine) Settle() {
	for e.Animating() {
		e.appear.Finish()
		e.axis.Finish()
		e.tension.Finish()
	}
}
