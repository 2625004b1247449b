package main

import (
	"image"
	"image/color"
	"slices"
	"strconv"
	"time"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/curvechart/backend"
	"git.sr.ht/~whereswaldon/curvechart/chart"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws         backend.WindowState
	expl       *explorer.Explorer
	log        *log.Logger
	invalidate func()

	th   *material.Theme
	view *ChartView

	sessions *stream.Stream[backend.Session]
	session  backend.Session
	// stale is set while the session holds lines not yet handed to the chart.
	stale bool
	// applied is every line of the last session handed to the chart,
	// including the ones switched off.
	applied []chart.CurveLine
	enabled map[string]*widget.Bool
	order   []string

	paused      bool
	pauseBtn    widget.Clickable
	explorerBtn widget.Clickable
	labels      widget.Bool
	keyTable    component.GridState
	loadErr     string

	lastFrame time.Time
	ticking   bool
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg chart.Config, logger *log.Logger, invalidate func()) (*UI, error) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	view, err := NewChartView(th, cfg)
	if err != nil {
		return nil, err
	}
	ui := &UI{
		ws:         ws,
		expl:       expl,
		log:        logger.With("component", "ui"),
		invalidate: invalidate,
		th:         th,
		view:       view,
		sessions:   stream.New(ws.Controller, ws.Bundle.Datasource.Stream),
		enabled:    make(map[string]*widget.Bool),
		labels:     widget.Bool{Value: cfg.LegendVisible},
	}
	view.chart.Updated.Subscribe(func(chart.Redraw) {
		ui.invalidate()
	})
	return ui, nil
}

// Close releases the chart.
func (ui *UI) Close() {
	ui.view.chart.Close()
}

// toggle returns the enable switch of the named line, creating an enabled
// one on first use.
func (ui *UI) toggle(name string) *widget.Bool {
	b, ok := ui.enabled[name]
	if !ok {
		b = &widget.Bool{Value: true}
		ui.enabled[name] = b
	}
	return b
}

// applyLines hands the latest session to the chart.
func (ui *UI) applyLines() {
	ui.applied = ui.session.Lines
	ui.order = ui.order[:0]
	visible := make([]chart.CurveLine, 0, len(ui.applied))
	for _, l := range ui.applied {
		ui.order = append(ui.order, l.Name)
		if ui.toggle(l.Name).Value {
			visible = append(visible, l)
		}
	}
	ui.view.chart.SetLines(visible)
	ui.stale = false
}

func (ui *UI) appliedLine(name string) (chart.CurveLine, bool) {
	i := slices.IndexFunc(ui.applied, func(l chart.CurveLine) bool { return l.Name == name })
	if i < 0 {
		return chart.CurveLine{}, false
	}
	return ui.applied[i], true
}

// Update the state of the UI and the chart's animations.
func (ui *UI) Update(gtx C) {
	if session, isNew := ui.sessions.ReadNew(gtx); isNew {
		if session.ID != ui.session.ID {
			ui.log.Info("loading trace", "source", session.Source, "session", session.ID)
		}
		ui.session = session
		ui.stale = true
		ui.loadErr = ""
		if session.Err != nil {
			ui.loadErr = session.Err.Error()
		}
	}
	if ui.pauseBtn.Clicked(gtx) {
		ui.paused = !ui.paused
	}
	if ui.explorerBtn.Clicked(gtx) {
		go func() {
			if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
				ui.log.Warn("failed opening trace", "err", err)
			}
		}()
	}
	if ui.labels.Update(gtx) {
		c := ui.view.chart
		c.SetLegend(c.XLegend.Count, ui.labels.Value)
	}
	for _, name := range ui.order {
		b := ui.toggle(name)
		if !b.Update(gtx) {
			continue
		}
		line, ok := ui.appliedLine(name)
		if !ok {
			continue
		}
		if b.Value {
			ui.view.chart.AddLine(line)
		} else {
			ui.view.chart.RemoveLine(line)
		}
	}
	// One line transition at a time: newer snapshots wait for the current
	// fade to finish.
	if ui.stale && !ui.paused && !ui.view.chart.Main.Animating() {
		ui.applyLines()
	}

	var dt time.Duration
	if ui.ticking {
		dt = gtx.Now.Sub(ui.lastFrame)
	}
	ui.lastFrame = gtx.Now
	ui.ticking = ui.view.chart.Tick(dt)
	if ui.ticking || (ui.stale && !ui.paused) {
		ui.invalidate()
	}
}

// Snapshot captures the chart's view state with the lines switched off.
func (ui *UI) Snapshot() chart.Snapshot {
	s := ui.view.chart.Snapshot()
	for name, b := range ui.enabled {
		if !b.Value {
			s.Hidden = append(s.Hidden, name)
		}
	}
	slices.Sort(s.Hidden)
	return s
}

// Restore applies a snapshot taken with Snapshot.
func (ui *UI) Restore(s chart.Snapshot) error {
	for _, name := range s.Hidden {
		ui.enabled[name] = &widget.Bool{}
	}
	if err := ui.view.chart.Restore(s); err != nil {
		return err
	}
	ui.labels.Value = s.LegendVisible
	return nil
}

func (ui *UI) layoutToolbar(gtx C) D {
	iconButton := func(btn *widget.Clickable, icon *widget.Icon) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			size := gtx.Dp(36)
			gtx.Constraints = layout.Exact(image.Pt(size, size))
			return material.Clickable(gtx, btn, func(gtx C) D {
				return layout.UniformInset(6).Layout(gtx, func(gtx C) D {
					return icon.Layout(gtx, ui.th.Fg)
				})
			})
		})
	}
	icon := pauseIcon
	if ui.paused {
		icon = playIcon
	}
	status := ui.session.Source
	if !ui.session.Done {
		status += " (live)"
	}
	if ui.paused {
		status += " (paused)"
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		iconButton(&ui.pauseBtn, icon),
		iconButton(&ui.explorerBtn, openIcon),
		layout.Flexed(1, func(gtx C) D {
			return layout.Inset{Left: 8}.Layout(gtx, material.Body1(ui.th, status).Layout)
		}),
		layout.Rigid(material.CheckBox(ui.th, &ui.labels, "Axis labels").Layout),
	)
}

func (ui *UI) layoutKey(gtx C) D {
	table := component.Table(ui.th, &ui.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - 2*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	formatter := ui.view.chart.Formatter()
	const (
		colorCol = iota
		nameCol
		pointsCol
		lastCol
		numCols
	)
	return table.Layout(gtx, len(ui.order), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = nameColWidth
			case pointsCol, lastCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(ui.th, "Show")
			case nameCol:
				l = material.Body1(ui.th, "Line")
				l.Alignment = text.Middle
			case pointsCol:
				l = material.Body1(ui.th, "Points")
				l.Alignment = text.End
			case lastCol:
				l = material.Body1(ui.th, "Last value")
				l.Alignment = text.End
			default:
				l = material.Body1(ui.th, "???")
			}
			l.Color = ui.th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, ui.th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			name := ui.order[row]
			line, _ := ui.appliedLine(name)
			toggle := ui.toggle(name)
			enabled := toggle.Value
			disabledAlpha := uint8(100)
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return toggle.Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							fullColor := line.Color
							if !enabled {
								fullColor.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fullColor, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case nameCol:
					l := material.Body2(ui.th, name)
					if !enabled {
						l.Color.A = disabledAlpha
					}
					return l.Layout(gtx)
				case pointsCol:
					l := material.Body2(ui.th, strconv.Itoa(len(line.Points)))
					if !enabled {
						l.Color.A = disabledAlpha
					}
					l.Alignment = text.End
					return l.Layout(gtx)
				case lastCol:
					last := "-"
					if n := len(line.Points); n > 0 {
						last = formatter.Format(line.Points[n-1].Y, 1)
					}
					l := material.Body2(ui.th, last)
					if !enabled {
						l.Color.A = disabledAlpha
					}
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				stripe := line.Color
				stripe.A = 50
				paint.FillShape(gtx.Ops, stripe, clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, ui.view.Layout),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Constraints.Max.Y/3+gtx.Sp(20))
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return ui.layoutKey(gtx)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Trace").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if len(ui.applied) > 0 {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
