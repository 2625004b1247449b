package backend

import (
	"git.sr.ht/~whereswaldon/curvechart/chart"
)

// Sample is one cell of a trace: the x of its row and the cell's value.
type Sample struct {
	Series int
	chart.Point
}

type Dataset struct {
	Series []*Series
	// seriesMapping maps from series identifiers used by the backend to
	// the index of a series in this structure.
	seriesMapping map[int]int
}

func (d *Dataset) Initialized() bool {
	if len(d.Series) == 0 {
		return false
	}
	for _, s := range d.Series {
		if s.Initialized() {
			return true
		}
	}
	return false
}

// Domain reports the x extent across every initialized series.
func (d *Dataset) Domain() (dMin, dMax float64) {
	first := true
	for _, s := range d.Series {
		if !s.Initialized() {
			continue
		}
		sMin, sMax := s.Domain()
		if first {
			dMin, dMax = sMin, sMax
			first = false
			continue
		}
		dMin = min(sMin, dMin)
		dMax = max(sMax, dMax)
	}
	return dMin, dMax
}

// SetHeadings populates the headings for a dataset. It must be invoked at least once
// prior to the first call to [Insert]. It may be invoked additional times to register
// new data series with their headings.
//
// The series slice provides the backend's ID for each dataset, which is likely to differ
// from the index used to store the data in this type.
func (d *Dataset) SetHeadings(headings []Heading, series []int) {
	if d.seriesMapping == nil {
		d.seriesMapping = make(map[int]int)
	}
	for i, identifier := range series {
		d.seriesMapping[identifier] = len(d.Series)
		d.Series = append(d.Series, NewSeries(headings[i]))
	}
}

// Insert the sample. It reports false for samples of unknown series and for
// samples duplicating an existing x.
func (d *Dataset) Insert(sample Sample) bool {
	localIdx, ok := d.seriesMapping[sample.Series]
	if !ok {
		return false
	}
	return d.Series[localIdx].Insert(sample.Point)
}

// Lines converts every initialized series into a curve line. Series without
// a color in their heading take one from the palette based on their column.
func (d *Dataset) Lines() []chart.CurveLine {
	lines := make([]chart.CurveLine, 0, len(d.Series))
	for i, s := range d.Series {
		if !s.Initialized() {
			continue
		}
		h := s.Heading()
		c := h.Color
		if !h.HasColor {
			c = PaletteColor(i)
		}
		lines = append(lines, chart.CurveLine{
			Name:   h.Name,
			Color:  c,
			Points: s.Points(),
		})
	}
	return lines
}
