package main

import (
	"image"
	"slices"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"git.sr.ht/~whereswaldon/curvechart/chart"
	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

// popupView draws the popup line with the value of every line under it.
// The chart replaces it whenever the theme changes.
type popupView struct {
	th        *material.Theme
	theme     chart.Theme
	formatter format.Formatter

	visible bool
	x       float64
	points  []chart.IntersectionPoint
}

var _ chart.Popup = (*popupView)(nil)

func newPopupView(th *material.Theme, theme chart.Theme, formatter format.Formatter) *popupView {
	return &popupView{th: th, theme: theme, formatter: formatter}
}

func (p *popupView) Show(x float64, points []chart.IntersectionPoint) {
	p.visible = true
	p.x = x
	p.points = slices.Clone(points)
	// Highest value on top.
	slices.SortStableFunc(p.points, func(a, b chart.IntersectionPoint) int {
		switch {
		case a.Y > b.Y:
			return -1
		case a.Y < b.Y:
			return 1
		}
		return 0
	})
}

func (p *popupView) Hide() {
	p.visible = false
	p.points = nil
}

// Layout draws the popup within a plot of the given size. zoom is passed on
// to the formatter.
func (p *popupView) Layout(gtx C, size image.Point, vp chart.Viewport, zoom float64) {
	if !p.visible || len(p.points) == 0 {
		return
	}
	xL := int(p.x) - gtx.Dp(1)/2
	xR := xL + max(gtx.Dp(1), 1)
	paint.FillShape(gtx.Ops, p.theme.PopupLine, clip.Rect{
		Min: image.Pt(xL, 0),
		Max: image.Pt(xR, size.Y),
	}.Op())

	dot := gtx.Dp(8)
	children := make([]layout.FlexChild, 0, len(p.points)+1)
	children = append(children, layout.Rigid(func(gtx C) D {
		l := material.Body2(p.th, p.formatter.Format(p.points[0].X, zoom))
		l.Color = p.theme.PopupText
		return l.Layout(gtx)
	}))
	for _, pt := range p.points {
		pt := pt
		center := vp.ToPixel(chart.Point{X: pt.X, Y: pt.Y})
		paint.FillShape(gtx.Ops, pt.LineColor, clip.Ellipse{
			Min: image.Pt(int(center.X)-dot/2, int(center.Y)-dot/2),
			Max: image.Pt(int(center.X)+dot/2, int(center.Y)+dot/2),
		}.Op(gtx.Ops))
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					sz := image.Pt(dot, dot)
					paint.FillShape(gtx.Ops, pt.LineColor, clip.Ellipse{Max: sz}.Op(gtx.Ops))
					return D{Size: sz}
				}),
				layout.Rigid(layout.Spacer{Width: 8}.Layout),
				layout.Rigid(func(gtx C) D {
					l := material.Body2(p.th, pt.LineName+": "+p.formatter.Format(pt.Y, zoom))
					l.Color = p.theme.PopupText
					l.MaxLines = 1
					return l.Layout(gtx)
				}),
			)
		}))
	}

	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	infoDims, infoCall := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, p.theme.PopupBackground, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
				})
			},
		)
	})
	gtx.Constraints = origConstraints

	// Keep the box beside the line on whichever side has more room.
	pos := image.Point{Y: gtx.Dp(8)}
	if xL > size.X-xR {
		pos.X = max(xL-gtx.Dp(8)-infoDims.Size.X, 0)
	} else {
		pos.X = min(xR+gtx.Dp(8), max(size.X-infoDims.Size.X, 0))
	}
	stack := op.Offset(pos).Push(gtx.Ops)
	infoCall.Add(gtx.Ops)
	stack.Pop()
}
