package chart

import "fmt"

// Range is an immutable closed interval. Percent ranges live in [0,1] and
// describe a viewport position; value ranges are expressed in data units.
type Range struct {
	Start        float64 `yaml:"start"`
	EndInclusive float64 `yaml:"end"`
}

// BinaryRange is the full percent range.
var BinaryRange = Range{Start: 0, EndInclusive: 1}

// NewRange returns the range spanning a and b in either order.
func NewRange(a, b float64) Range {
	return Range{Start: min(a, b), EndInclusive: max(a, b)}
}

// Distance is the width of the range.
func (r Range) Distance() float64 {
	return r.EndInclusive - r.Start
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Start && v <= r.EndInclusive
}

// ContainsRange reports whether o lies entirely within r.
func (r Range) ContainsRange(o Range) bool {
	return o.Start >= r.Start && o.EndInclusive <= r.EndInclusive
}

// Shift moves both ends of the range by delta.
func (r Range) Shift(delta float64) Range {
	return Range{Start: r.Start + delta, EndInclusive: r.EndInclusive + delta}
}

// Lerp blends r towards to by t.
func (r Range) Lerp(to Range, t float64) Range {
	return Range{
		Start:        r.Start + (to.Start-r.Start)*t,
		EndInclusive: r.EndInclusive + (to.EndInclusive-r.EndInclusive)*t,
	}
}

// ClampToPercent clamps the start to at least 0 and the end to at most 1.
func (r Range) ClampToPercent() Range {
	return Range{Start: max(r.Start, 0), EndInclusive: min(r.EndInclusive, 1)}
}

// IsPercent reports whether r is a well-formed percent range.
func (r Range) IsPercent() bool {
	return r.Start >= 0 && r.EndInclusive <= 1 && r.Start <= r.EndInclusive
}

// Center is the midpoint of the range.
func (r Range) Center() float64 {
	return r.Start + r.Distance()/2
}

// Equal compares two ranges with a small tolerance.
func (r Range) Equal(o Range) bool {
	return nearlyEqual(r.Start, o.Start) && nearlyEqual(r.EndInclusive, o.EndInclusive)
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Start, r.EndInclusive)
}
