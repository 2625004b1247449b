// Package format renders axis and popup values as text.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter renders a value for display. zoom is the ratio between the
// full domain and the visible window, at least 1; formatters may use it to
// pick a precision.
type Formatter interface {
	Format(value, zoom float64) string
}

// Func adapts a plain function to Formatter.
type Func func(value, zoom float64) string

func (f Func) Format(value, zoom float64) string {
	return f(value, zoom)
}

// Short renders large magnitudes with k, m and mm suffixes, tiny ones in
// scientific notation and everything else with three decimals. It ignores
// zoom.
type Short struct{}

func (Short) Format(value, zoom float64) string {
	abs := math.Abs(value)
	switch {
	case value == 0:
		return "0"
	case abs >= 1e12:
		return trimmed(value/1e12, 2) + "mm"
	case abs >= 1e6:
		return trimmed(value/1e6, 2) + "m"
	case abs >= 1e3:
		return trimmed(value/1e3, 2) + "k"
	case abs < 1e-9:
		return strconv.FormatFloat(value, 'e', 1, 64)
	case abs < 1e-6:
		return strconv.FormatFloat(value, 'e', 3, 64)
	default:
		return strconv.FormatFloat(value, 'f', 3, 64)
	}
}

// SI renders values with SI prefixes followed by Unit.
type SI struct {
	Unit   string
	Digits int
}

func (s SI) Format(value, zoom float64) string {
	digits := s.Digits
	if digits <= 0 {
		digits = 2
	}
	return strings.TrimSpace(humanize.SIWithDigits(value, digits+zoomDigits(zoom), s.Unit))
}

// zoomDigits is the number of extra decimals worth showing at a zoom level.
func zoomDigits(zoom float64) int {
	if zoom <= 1 || math.IsInf(zoom, 0) || math.IsNaN(zoom) {
		return 0
	}
	return min(int(math.Floor(math.Log10(zoom))), 6)
}

// trimmed formats with at most decimals digits and drops trailing zeros.
func trimmed(value float64, decimals int) string {
	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
