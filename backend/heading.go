package backend

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Heading is a parsed CSV column heading of the form "name [#rrggbb]".
type Heading struct {
	Name string
	// Color is only meaningful when HasColor is set.
	Color    color.NRGBA
	HasColor bool
}

// ParseHeading splits an optional trailing color off a heading. Anything
// that does not parse as a color stays part of the name.
func ParseHeading(raw string) Heading {
	raw = strings.TrimSpace(raw)
	open := strings.LastIndexByte(raw, '[')
	if open < 0 || !strings.HasSuffix(raw, "]") {
		return Heading{Name: raw}
	}
	c, err := colorful.Hex(strings.TrimSpace(raw[open+1 : len(raw)-1]))
	if err != nil {
		return Heading{Name: raw}
	}
	return Heading{
		Name:     strings.TrimSpace(raw[:open]),
		Color:    toNRGBA(c),
		HasColor: true,
	}
}

func (h Heading) String() string {
	if !h.HasColor {
		return h.Name
	}
	return h.Name + " [" + fromNRGBA(h.Color).Hex() + "]"
}

// PaletteColor returns the i'th color of an open-ended palette. Hues step by
// the golden angle so neighbouring series stay distinguishable.
func PaletteColor(i int) color.NRGBA {
	hue := math.Mod(float64(i+1)*math.Phi, 1) * 360
	return toNRGBA(colorful.Hcl(hue, 0.55, 0.55).Clamped())
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func fromNRGBA(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
