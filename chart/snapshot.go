package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Snapshot is the restorable view state of a Chart.
type Snapshot struct {
	Range         Range         `yaml:"range"`
	LineWidth     float64       `yaml:"lineWidth"`
	LegendCount   int           `yaml:"legendCount"`
	LegendVisible bool          `yaml:"legendVisible"`
	Theme         ThemeSnapshot `yaml:"theme"`
	// Touch is the pixel x of an active popup touch, nil when none.
	Touch *float64 `yaml:"touch,omitempty"`
	// Hidden names lines the user switched off.
	Hidden []string `yaml:"hidden,omitempty"`
}

// ThemeSnapshot is a Theme with hex encoded colors.
type ThemeSnapshot struct {
	Background      HexColor `yaml:"background"`
	Grid            HexColor `yaml:"grid"`
	Label           HexColor `yaml:"label"`
	PopupLine       HexColor `yaml:"popupLine"`
	PopupBackground HexColor `yaml:"popupBackground"`
	PopupText       HexColor `yaml:"popupText"`
	Frame           HexColor `yaml:"frame"`
	Curtain         HexColor `yaml:"curtain"`
	SelectorBg      HexColor `yaml:"selectorBackground"`
}

func snapshotTheme(t Theme) ThemeSnapshot {
	return ThemeSnapshot{
		Background:      HexColor(t.Background),
		Grid:            HexColor(t.Grid),
		Label:           HexColor(t.Label),
		PopupLine:       HexColor(t.PopupLine),
		PopupBackground: HexColor(t.PopupBackground),
		PopupText:       HexColor(t.PopupText),
		Frame:           HexColor(t.Frame),
		Curtain:         HexColor(t.Curtain),
		SelectorBg:      HexColor(t.SelectorBg),
	}
}

// Theme converts back to a Theme.
func (t ThemeSnapshot) Theme() Theme {
	return Theme{
		Background:      color.NRGBA(t.Background),
		Grid:            color.NRGBA(t.Grid),
		Label:           color.NRGBA(t.Label),
		PopupLine:       color.NRGBA(t.PopupLine),
		PopupBackground: color.NRGBA(t.PopupBackground),
		PopupText:       color.NRGBA(t.PopupText),
		Frame:           color.NRGBA(t.Frame),
		Curtain:         color.NRGBA(t.Curtain),
		SelectorBg:      color.NRGBA(t.SelectorBg),
	}
}

// HexColor is an NRGBA color written as #rrggbb or #rrggbbaa.
type HexColor color.NRGBA

// ParseHexColor parses #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (HexColor, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return HexColor{}, fmt.Errorf("parsing alpha of %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return HexColor{}, fmt.Errorf("parsing color: %w", err)
	}
	r, g, b := c.RGB255()
	return HexColor{R: r, G: g, B: b, A: alpha}, nil
}

func (h HexColor) String() string {
	rgb := colorful.Color{R: float64(h.R) / 255, G: float64(h.G) / 255, B: float64(h.B) / 255}.Hex()
	if h.A == 0xff {
		return rgb
	}
	return fmt.Sprintf("%s%02x", rgb, h.A)
}

func (h HexColor) MarshalYAML() (any, error) {
	return h.String(), nil
}

func (h *HexColor) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Encode writes s as YAML.
func (s Snapshot) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// DecodeSnapshot reads a YAML snapshot and validates its range.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if !s.Range.IsPercent() {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", &InvalidRangeError{Range: s.Range})
	}
	return s, nil
}
