package main

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/curvechart/chart"
	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

// ChartView draws a chart.Chart and feeds pointer input back into it.
type ChartView struct {
	chart *chart.Chart
	th    *material.Theme
	// popup is the most recent popup built by the chart.
	popup *popupView

	// selectorTag is the event target of the selector strip; the view itself
	// is the target of the plot.
	selectorTag bool

	plotOrigin, selectorOrigin image.Point
}

// NewChartView builds a view and the chart it draws.
func NewChartView(th *material.Theme, cfg chart.Config) (*ChartView, error) {
	v := &ChartView{th: th}
	c, err := chart.New(cfg, chart.PopupFactoryFunc(func(theme chart.Theme, formatter format.Formatter) chart.Popup {
		v.popup = newPopupView(th, theme, formatter)
		return v.popup
	}))
	if err != nil {
		return nil, err
	}
	v.chart = c
	return v, nil
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// Update routes pointer events to the popup tracker and the scroll frame.
func (v *ChartView) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x := float64(e.Position.X)
		switch e.Kind {
		case pointer.Enter, pointer.Press:
			v.chart.Tracker.TouchDown(x)
		case pointer.Move, pointer.Drag:
			v.chart.Tracker.TouchMove(x)
		case pointer.Release:
			// Mice keep hovering after a click.
			if e.Source == pointer.Touch {
				v.chart.Tracker.TouchUp()
			}
		case pointer.Leave, pointer.Cancel:
			v.chart.Tracker.TouchUp()
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &v.selectorTag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x := float64(e.Position.X)
		switch e.Kind {
		case pointer.Press:
			v.chart.Frame.TouchDown(x)
		case pointer.Drag:
			v.chart.Frame.TouchMove(x)
		case pointer.Release, pointer.Cancel:
			v.chart.Frame.TouchUp()
		}
	}
}

// Layout draws the plot with its axes above the selector strip.
func (v *ChartView) Layout(gtx C) D {
	v.Update(gtx)
	theme := v.chart.Theme()
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, theme.Background, clip.Rect{Max: size}.Op())

	probe := material.Body2(v.th, "0")
	labelDims, _ := rec(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		return probe.Layout(gtx)
	})
	gutter := gtx.Dp(56)
	gap := gtx.Dp(8)
	selectorHeight := gtx.Dp(64)
	labelHeight := 0
	if v.chart.LegendVisible() {
		labelHeight = labelDims.Size.Y
	}
	plotSize := image.Point{
		X: max(size.X-gutter-gap, 0),
		Y: max(size.Y-labelHeight-selectorHeight-2*gap, 0),
	}
	selectorSize := image.Point{X: plotSize.X, Y: selectorHeight}
	v.plotOrigin = image.Pt(gutter, 0)
	v.selectorOrigin = image.Pt(gutter, plotSize.Y+labelHeight+2*gap)
	v.chart.Measure(float64(plotSize.X), float64(plotSize.Y), float64(selectorSize.X), float64(selectorSize.Y))

	v.layoutYLabels(gtx, gutter, gap)
	stack := op.Offset(v.plotOrigin).Push(gtx.Ops)
	v.layoutPlot(gtx, plotSize)
	stack.Pop()
	stack = op.Offset(image.Pt(gutter, plotSize.Y+gap)).Push(gtx.Ops)
	v.layoutXLabels(gtx, plotSize.X)
	stack.Pop()
	stack = op.Offset(v.selectorOrigin).Push(gtx.Ops)
	v.layoutSelector(gtx, selectorSize)
	stack.Pop()
	return D{Size: size}
}

// zoom is the ratio between the full domain and the visible values.
func (v *ChartView) zoom() float64 {
	visible := v.chart.Main.ValueRange().Distance()
	if visible <= 0 {
		return 1
	}
	return max(v.chart.Main.Domain().Distance()/visible, 1)
}

func scaleAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = uint8(uint16(c.A) * uint16(alpha) / 255)
	return c
}

func (v *ChartView) layoutYLabels(gtx C, gutter, gap int) {
	theme := v.chart.Theme()
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max.X = gutter - gap
	for _, l := range v.chart.YLabels() {
		label := material.Body2(v.th, l.Text)
		label.Color = scaleAlpha(theme.Label, l.Alpha)
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		stack := op.Offset(image.Point{
			X: gutter - gap - dims.Size.X,
			Y: int(l.Position) - dims.Size.Y/2,
		}).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

func (v *ChartView) layoutXLabels(gtx C, width int) {
	theme := v.chart.Theme()
	gtx.Constraints.Min = image.Point{}
	for _, l := range v.chart.XLabels() {
		if l.Alpha == 0 {
			continue
		}
		label := material.Body2(v.th, l.Text)
		label.Color = scaleAlpha(theme.Label, l.Alpha)
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		x := min(max(int(l.Position)-dims.Size.X/2, 0), width-dims.Size.X)
		stack := op.Offset(image.Pt(x, 0)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

func (v *ChartView) layoutPlot(gtx C, size image.Point) {
	theme := v.chart.Theme()
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, v)

	oneDp := gtx.Dp(1)
	for _, l := range v.chart.YLabels() {
		y := int(l.Position)
		paint.FillShape(gtx.Ops, scaleAlpha(theme.Grid, l.Alpha), clip.Rect{
			Min: image.Pt(0, y),
			Max: image.Pt(size.X, y+oneDp),
		}.Op())
	}
	width := gtx.Metric.PxPerDp * float32(v.chart.LineWidth())
	for _, l := range v.chart.Main.Drawn() {
		strokePolyline(gtx.Ops, l.Points, width, scaleAlpha(l.Line.Color, l.Alpha))
	}
	if v.popup != nil {
		v.popup.Layout(gtx, size, v.chart.Main.Viewport(), v.zoom())
	}
}

func (v *ChartView) layoutSelector(gtx C, size image.Point) {
	theme := v.chart.Theme()
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, &v.selectorTag)
	paint.FillShape(gtx.Ops, theme.SelectorBg, clip.Rect{Max: size}.Op())

	width := float32(gtx.Dp(1))
	for _, l := range v.chart.Preview.Drawn() {
		strokePolyline(gtx.Ops, l.Points, width, scaleAlpha(l.Line.Color, l.Alpha))
	}

	left, right := v.chart.Frame.FrameEdges()
	xL, xR := int(left), int(right)
	paint.FillShape(gtx.Ops, theme.Curtain, clip.Rect{Max: image.Pt(xL, size.Y)}.Op())
	paint.FillShape(gtx.Ops, theme.Curtain, clip.Rect{Min: image.Pt(xR, 0), Max: size}.Op())

	edge := gtx.Dp(3)
	border := gtx.Dp(1)
	for _, r := range []image.Rectangle{
		{Min: image.Pt(xL, 0), Max: image.Pt(xL+edge, size.Y)},
		{Min: image.Pt(xR-edge, 0), Max: image.Pt(xR, size.Y)},
		{Min: image.Pt(xL, 0), Max: image.Pt(xR, border)},
		{Min: image.Pt(xL, size.Y-border), Max: image.Pt(xR, size.Y)},
	} {
		paint.FillShape(gtx.Ops, theme.Frame, clip.Rect(r).Op())
	}
}

// strokePolyline draws the pixel polyline pts, or a dot for a single point.
func strokePolyline(ops *op.Ops, pts []chart.Point, width float32, c color.NRGBA) {
	if len(pts) == 0 || c.A == 0 {
		return
	}
	if len(pts) == 1 {
		r := width
		center := f32.Pt(float32(pts[0].X), float32(pts[0].Y))
		paint.FillShape(ops, c, clip.Ellipse{
			Min: image.Pt(int(center.X-r), int(center.Y-r)),
			Max: image.Pt(int(center.X+r), int(center.Y+r)),
		}.Op(ops))
		return
	}
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(f32.Pt(float32(pts[0].X), float32(pts[0].Y)))
	for _, pt := range pts[1:] {
		p.LineTo(f32.Pt(float32(pt.X), float32(pt.Y)))
	}
	paint.FillShape(ops, c, clip.Stroke{
		Path:  p.End(),
		Width: width,
	}.Op())
}
