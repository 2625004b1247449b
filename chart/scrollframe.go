package chart

import (
	"time"

	"github.com/charmbracelet/log"

	"git.sr.ht/~whereswaldon/curvechart/anim"
)

// DragState is the gesture a ScrollFrame is tracking.
type DragState uint8

const (
	Idle DragState = iota
	DraggingFrame
	DraggingLeftCurtain
	DraggingRightCurtain
)

func (d DragState) String() string {
	switch d {
	case Idle:
		return "idle"
	case DraggingFrame:
		return "dragging frame"
	case DraggingLeftCurtain:
		return "dragging left curtain"
	case DraggingRightCurtain:
		return "dragging right curtain"
	default:
		return "unknown"
	}
}

// ScrollFrame owns the selectable window of the selector strip and turns
// single pointer drags into percent range changes.
type ScrollFrame struct {
	RangeChanged Emitter[RangeChanged]
	Updated      Emitter[Redraw]

	log *log.Logger

	minWidth, maxWidth float64
	touchWidth         float64
	recenter           bool
	smooth             bool

	rng   Range
	width float64

	state DragState
	// grabOffset is the distance in percent between the touch and the edge
	// or frame start being dragged.
	grabOffset float64

	snap *anim.Tension
}

// NewScrollFrame builds a frame from cfg.
func NewScrollFrame(cfg Config) *ScrollFrame {
	f := &ScrollFrame{
		log:        cfg.logger().With("engine", "frame"),
		minWidth:   cfg.FrameMinWidthPercent,
		maxWidth:   cfg.FrameMaxWidthPercent,
		touchWidth: cfg.CurtainTouchWidth,
		recenter:   cfg.RecenterOnTouch,
		smooth:     cfg.SmoothScroll,
		rng:        BinaryRange,
		snap:       anim.NewTension(cfg.SnapDuration, cfg.TensionEasing),
	}
	if initial := cfg.InitialRange; f.acceptable(initial) {
		f.rng = initial
	} else {
		f.rng = Range{Start: 1 - f.maxWidth, EndInclusive: 1}
	}
	f.snap.OnUpdate = func(_, start, end float64) {
		f.rng = Range{Start: start, EndInclusive: end}
		f.Updated.Emit(Redraw{})
	}
	return f
}

func (f *ScrollFrame) acceptable(r Range) bool {
	if !r.IsPercent() {
		return false
	}
	d := r.Distance()
	return d >= f.minWidth-epsilon && d <= f.maxWidth+epsilon
}

// SetRange moves the frame. Ranges whose width falls outside the configured
// limits are rejected without an event. It reports whether the range was
// accepted.
func (f *ScrollFrame) SetRange(r Range, smooth bool) bool {
	r = r.ClampToPercent()
	if !f.acceptable(r) {
		f.log.Debug("rejecting frame range", "range", r, "min", f.minWidth, "max", f.maxWidth)
		return false
	}
	if r.Equal(f.target()) {
		return true
	}
	if smooth {
		f.snap.Start(f.rng.Start, f.rng.EndInclusive, r.Start, r.EndInclusive)
	} else {
		f.snap.Cancel()
		f.rng = r
	}
	f.RangeChanged.Emit(RangeChanged{Range: r, Smooth: smooth})
	f.Updated.Emit(Redraw{})
	return true
}

func (f *ScrollFrame) target() Range {
	if f.snap.Running() {
		lo, hi := f.snap.Target()
		return Range{Start: lo, EndInclusive: hi}
	}
	return f.rng
}

// Range is the frame's current percent range.
func (f *ScrollFrame) Range() Range {
	return f.rng
}

// Measure sets the pixel width of the selector strip.
func (f *ScrollFrame) Measure(width float64) {
	f.width = width
}

// State reports the gesture being tracked.
func (f *ScrollFrame) State() DragState {
	return f.state
}

// FrameEdges returns the pixel positions of the frame edges.
func (f *ScrollFrame) FrameEdges() (left, right float64) {
	return f.rng.Start * f.width, f.rng.EndInclusive * f.width
}

func (f *ScrollFrame) toPercent(x float64) float64 {
	return PixelToValueX(x, f.width, BinaryRange)
}

// TouchDown classifies a press at pixel x and starts the matching drag.
func (f *ScrollFrame) TouchDown(x float64) {
	if f.width <= 0 {
		return
	}
	f.snap.Finish()
	left, right := f.FrameEdges()
	nearLeft := abs(x-left) <= f.touchWidth
	nearRight := abs(x-right) <= f.touchWidth
	p := f.toPercent(x)
	switch {
	case nearLeft && nearRight:
		// Narrow frames make the zones overlap; the closer edge wins.
		if abs(x-left) <= abs(x-right) {
			f.state = DraggingLeftCurtain
			f.grabOffset = p - f.rng.Start
		} else {
			f.state = DraggingRightCurtain
			f.grabOffset = p - f.rng.EndInclusive
		}
	case nearLeft:
		f.state = DraggingLeftCurtain
		f.grabOffset = p - f.rng.Start
	case nearRight:
		f.state = DraggingRightCurtain
		f.grabOffset = p - f.rng.EndInclusive
	case x > left && x < right:
		f.state = DraggingFrame
		f.grabOffset = p - f.rng.Start
	case f.recenter:
		width := f.rng.Distance()
		start := clamp(p-width/2, 0, 1-width)
		f.SetRange(Range{Start: start, EndInclusive: start + width}, f.smooth)
		f.state = DraggingFrame
		f.grabOffset = p - start
	default:
		f.state = Idle
	}
	f.log.Debug("touch down", "x", x, "state", f.state)
}

// TouchMove updates the active drag with the pointer at pixel x.
func (f *ScrollFrame) TouchMove(x float64) {
	if f.width <= 0 {
		return
	}
	p := f.toPercent(x)
	current := f.target()
	switch f.state {
	case DraggingLeftCurtain:
		start := max(p-f.grabOffset, 0)
		f.SetRange(Range{Start: min(start, current.EndInclusive), EndInclusive: current.EndInclusive}, false)
	case DraggingRightCurtain:
		end := min(p-f.grabOffset, 1)
		f.SetRange(Range{Start: current.Start, EndInclusive: max(end, current.Start)}, false)
	case DraggingFrame:
		width := current.Distance()
		start := clamp(p-f.grabOffset, 0, 1-width)
		f.SetRange(Range{Start: start, EndInclusive: start + width}, false)
	}
}

// TouchUp ends the active drag.
func (f *ScrollFrame) TouchUp() {
	f.state = Idle
}

// Animating reports whether the frame is still snapping.
func (f *ScrollFrame) Animating() bool {
	return f.snap.Running()
}

// Tick advances the snap tween by dt.
func (f *ScrollFrame) Tick(dt time.Duration) bool {
	return f.snap.Tick(dt)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
