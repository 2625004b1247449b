package chart

import (
	"image/color"
	"slices"
	"sort"
)

// Point is one sample of a curve line.
type Point struct {
	X, Y float64
}

// CurveLine is a named, colored series of points. Two lines are the same
// line only when every field matches.
type CurveLine struct {
	Name   string
	Color  color.NRGBA
	Points []Point
}

// Equal reports value equality.
func (l CurveLine) Equal(o CurveLine) bool {
	return l.Name == o.Name && l.Color == o.Color && slices.Equal(l.Points, o.Points)
}

// Xs returns the x value of every point.
func (l CurveLine) Xs() []float64 {
	xs := make([]float64, len(l.Points))
	for i, p := range l.Points {
		xs[i] = p.X
	}
	return xs
}

// SortedPoints returns a copy of the points ordered by x.
func (l CurveLine) SortedPoints() []Point {
	return sortedByX(l.Points)
}

func sortedByX(points []Point) []Point {
	out := slices.Clone(points)
	if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i].X < out[j].X }) {
		sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	}
	return out
}

func indexOfLine(lines []CurveLine, l CurveLine) int {
	return slices.IndexFunc(lines, l.Equal)
}

func containsLine(lines []CurveLine, l CurveLine) bool {
	return indexOfLine(lines, l) >= 0
}

// uniqueLines drops repeated lines, keeping the first of each.
func uniqueLines(lines []CurveLine) []CurveLine {
	out := make([]CurveLine, 0, len(lines))
	for _, l := range lines {
		if !containsLine(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// sameLineSet reports whether a and b hold the same lines regardless of
// order, counting duplicates.
func sameLineSet(a, b []CurveLine) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, l := range a {
		for j, o := range b {
			if !used[j] && l.Equal(o) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// AnimatingLine wraps a line with its fade progress. The value rises from 0
// to 1 in both directions: it is the opacity of an appearing line and the
// inverse opacity of a disappearing one.
type AnimatingLine struct {
	CurveLine
	IsAppearing    bool
	AnimationValue float64
}

// Opacity is the effective opacity in [0,1].
func (a AnimatingLine) Opacity() float64 {
	if a.IsAppearing {
		return a.AnimationValue
	}
	return 1 - a.AnimationValue
}

// Animating reports whether the line is mid transition.
func (a AnimatingLine) Animating() bool {
	return a.AnimationValue < 1
}

// reverse flips the direction of the transition while keeping the current
// opacity.
func (a *AnimatingLine) reverse() {
	a.IsAppearing = !a.IsAppearing
	a.AnimationValue = 1 - a.AnimationValue
}
