// Package chart implements the windowing, scaling and interpolation engines
// behind an animated line chart with a range selector. Engines are driven by
// explicit calls and Tick; they never start goroutines or read a clock.
package chart

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

// Popup displays the samples under the popup line.
type Popup interface {
	Show(x float64, points []IntersectionPoint)
	Hide()
}

// PopupFactory builds the popup shown while the plot is touched.
type PopupFactory interface {
	NewPopup(theme Theme, formatter format.Formatter) Popup
}

// PopupFactoryFunc adapts a function to PopupFactory.
type PopupFactoryFunc func(theme Theme, formatter format.Formatter) Popup

func (f PopupFactoryFunc) NewPopup(theme Theme, formatter format.Formatter) Popup {
	return f(theme, formatter)
}

// Chart composes the main plot, the selector preview, the scroll frame, the
// popup tracker and the axis legends, keeping the plot range and the frame
// in sync.
type Chart struct {
	Updated Emitter[Redraw]

	Main    *LineEngine
	Preview *LineEngine
	Frame   *ScrollFrame
	Tracker *Tracker
	XLegend *XLegend
	YLegend *YLegend

	log       *log.Logger
	formatter format.Formatter
	popups    PopupFactory
	popup     Popup

	theme         Theme
	lineWidth     float64
	legendVisible bool

	// linking is set while a range change is forwarded between the frame and
	// the main engine.
	linking bool
	unsubs  []func()
}

// New validates cfg and wires a Chart. popups may be nil.
func New(cfg Config, popups PopupFactory) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	previewCfg := cfg
	previewCfg.InitialRange = BinaryRange

	c := &Chart{
		Preview:       NewLineEngine(previewCfg),
		Frame:         NewScrollFrame(cfg),
		XLegend:       NewXLegend(cfg),
		YLegend:       NewYLegend(cfg),
		log:           cfg.logger().With("engine", "chart"),
		formatter:     cfg.formatter(),
		popups:        popups,
		theme:         cfg.Theme,
		lineWidth:     cfg.LineWidth,
		legendVisible: cfg.LegendVisible,
	}
	mainCfg := cfg
	mainCfg.InitialRange = c.Frame.Range()
	c.Main = NewLineEngine(mainCfg)
	c.Tracker = NewTracker(c.Main, cfg)

	c.unsubs = append(c.unsubs,
		c.Frame.RangeChanged.Subscribe(func(ev RangeChanged) {
			c.link(func() { c.Main.SetRange(ev.Range, ev.Smooth) })
		}),
		c.Main.RangeChanged.Subscribe(func(ev RangeChanged) {
			c.link(func() {
				if !c.Frame.SetRange(ev.Range, false) {
					c.log.Debug("frame rejected plot range", "range", ev.Range)
					c.Main.SetRange(c.Frame.Range(), false)
				}
			})
		}),
		c.Main.YAxisChanged.Subscribe(func(ev YAxisChanged) {
			c.YLegend.Rescale(ev.Min, ev.Max)
		}),
		c.Main.Updated.Subscribe(func(Redraw) {
			c.YLegend.Update(c.Main.Tension())
			c.Tracker.Refresh()
			c.Updated.Emit(Redraw{})
		}),
		c.Preview.Updated.Subscribe(c.redraw),
		c.Frame.Updated.Subscribe(c.redraw),
		c.Tracker.Changed.Subscribe(c.onIntersections),
	)
	return c, nil
}

func (c *Chart) link(forward func()) {
	if c.linking {
		return
	}
	c.linking = true
	defer func() { c.linking = false }()
	forward()
}

func (c *Chart) redraw(Redraw) {
	c.Updated.Emit(Redraw{})
}

func (c *Chart) onIntersections(ev IntersectionsChanged) {
	if c.popup == nil && c.popups != nil && len(ev.Points) > 0 {
		c.popup = c.popups.NewPopup(c.theme, c.formatter)
	}
	if c.popup != nil {
		if len(ev.Points) == 0 {
			c.popup.Hide()
		} else {
			c.popup.Show(ev.X, ev.Points)
		}
	}
	c.Updated.Emit(Redraw{})
}

// Close detaches every internal subscription.
func (c *Chart) Close() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}

// SetLines replaces the lines of both the plot and the preview.
func (c *Chart) SetLines(lines []CurveLine) {
	c.Main.SetLines(lines)
	c.Preview.SetLines(lines)
}

// AddLine fades a line into both the plot and the preview.
func (c *Chart) AddLine(line CurveLine) {
	c.Main.AddLine(line)
	c.Preview.AddLine(line)
}

// RemoveLine fades a line out of both the plot and the preview.
func (c *Chart) RemoveLine(line CurveLine) {
	c.Main.RemoveLine(line)
	c.Preview.RemoveLine(line)
}

// SetRange moves the selected window. It reports false when the frame
// rejected the range.
func (c *Chart) SetRange(r Range, smooth bool) bool {
	return c.Frame.SetRange(r, smooth)
}

// Range is the selected percent range.
func (c *Chart) Range() Range {
	return c.Frame.Range()
}

// Measure sets the pixel sizes of the plot and the selector strip.
func (c *Chart) Measure(plotWidth, plotHeight, selectorWidth, selectorHeight float64) {
	c.Main.Measure(plotWidth, plotHeight)
	c.Preview.Measure(selectorWidth, selectorHeight)
	c.Frame.Measure(selectorWidth)
}

// XLabels lays out the X axis labels of the plot.
func (c *Chart) XLabels() []AxisLabel {
	if !c.legendVisible {
		return nil
	}
	w, _ := c.Main.Size()
	return c.XLegend.Labels(c.Main.Domain(), c.Main.ValueRange(), w)
}

// YLabels lays out the Y axis labels of the plot.
func (c *Chart) YLabels() []AxisLabel {
	if !c.legendVisible {
		return nil
	}
	vp := c.Main.Viewport()
	return c.YLegend.Labels(vp.Y, vp.Height)
}

// ApplyTheme replaces every color at once.
func (c *Chart) ApplyTheme(t Theme) {
	c.theme = t
	if c.popup != nil {
		// Popups capture the theme when built.
		c.popup.Hide()
		c.popup = nil
		if x, points := c.Tracker.Intersections(); len(points) > 0 {
			c.onIntersections(IntersectionsChanged{X: x, Points: points})
		}
	}
	c.Updated.Emit(Redraw{})
}

// Theme returns the colors in use.
func (c *Chart) Theme() Theme {
	return c.theme
}

// SetLineWidth sets the stroke width of plotted lines.
func (c *Chart) SetLineWidth(width float64) {
	if width <= 0 || width == c.lineWidth {
		return
	}
	c.lineWidth = width
	c.Updated.Emit(Redraw{})
}

// LineWidth returns the stroke width of plotted lines.
func (c *Chart) LineWidth() float64 {
	return c.lineWidth
}

// SetLegend sets the label count and visibility of both axes.
func (c *Chart) SetLegend(count int, visible bool) {
	count = max(count, 1)
	c.XLegend.Count = count
	if c.YLegend.Count != count {
		c.YLegend.Count = count
		c.YLegend.Rescale(c.Main.TargetYBounds())
		c.YLegend.Update(c.Main.Tension())
	}
	c.legendVisible = visible
	c.Updated.Emit(Redraw{})
}

// LegendVisible reports whether axis labels are drawn.
func (c *Chart) LegendVisible() bool {
	return c.legendVisible
}

// Formatter returns the formatter used for labels and popups.
func (c *Chart) Formatter() format.Formatter {
	return c.formatter
}

// Animating reports whether any engine still needs frames.
func (c *Chart) Animating() bool {
	return c.Main.Animating() || c.Preview.Animating() || c.Frame.Animating()
}

// Tick advances every engine by dt and reports whether more frames are
// needed.
func (c *Chart) Tick(dt time.Duration) bool {
	c.Frame.Tick(dt)
	c.Main.Tick(dt)
	c.Preview.Tick(dt)
	return c.Animating()
}

// Snapshot captures the restorable view state.
func (c *Chart) Snapshot() Snapshot {
	s := Snapshot{
		Range:         c.Frame.target(),
		LineWidth:     c.lineWidth,
		LegendCount:   c.XLegend.Count,
		LegendVisible: c.legendVisible,
		Theme:         snapshotTheme(c.theme),
	}
	if c.Tracker.Active() {
		x := c.Tracker.touchX
		s.Touch = &x
	}
	return s
}

// Restore applies a snapshot taken with Snapshot.
func (c *Chart) Restore(s Snapshot) error {
	if !s.Range.IsPercent() {
		return fmt.Errorf("restoring snapshot: %w", &InvalidRangeError{Range: s.Range})
	}
	c.ApplyTheme(s.Theme.Theme())
	c.SetLineWidth(s.LineWidth)
	c.SetLegend(s.LegendCount, s.LegendVisible)
	if !c.SetRange(s.Range, false) {
		return fmt.Errorf("restoring snapshot: range %v is outside the frame width limits", s.Range)
	}
	if s.Touch != nil {
		c.Tracker.TouchDown(*s.Touch)
	}
	return nil
}
