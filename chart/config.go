package chart

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"

	"git.sr.ht/~whereswaldon/curvechart/anim"
	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

// Theme enumerates every color the presentation layer paints.
type Theme struct {
	Background      color.NRGBA
	Grid            color.NRGBA
	Label           color.NRGBA
	PopupLine       color.NRGBA
	PopupBackground color.NRGBA
	PopupText       color.NRGBA
	Frame           color.NRGBA
	Curtain         color.NRGBA
	SelectorBg      color.NRGBA
}

// DefaultTheme is a light theme.
func DefaultTheme() Theme {
	return Theme{
		Background:      color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Grid:            color.NRGBA{A: 0x20},
		Label:           color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff},
		PopupLine:       color.NRGBA{A: 0x60},
		PopupBackground: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6},
		PopupText:       color.NRGBA{A: 0xff},
		Frame:           color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0x80},
		Curtain:         color.NRGBA{R: 0xf0, G: 0xf4, B: 0xf8, A: 0xb0},
		SelectorBg:      color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff},
	}
}

// Config holds every tunable of the chart engines.
type Config struct {
	// LineDuration is the fade duration for appearing and disappearing lines.
	LineDuration time.Duration
	// AxisDuration is the duration of Y rescaling and smooth X scrolling.
	AxisDuration time.Duration
	// SnapDuration is the duration of scroll frame recentering.
	SnapDuration time.Duration

	// FrameMinWidthPercent and FrameMaxWidthPercent bound the width of the
	// selectable window.
	FrameMinWidthPercent float64
	FrameMaxWidthPercent float64
	// CurtainTouchWidth is the pixel tolerance around each frame edge.
	CurtainTouchWidth float64
	// RecenterOnTouch recenters the frame on touches outside of it.
	RecenterOnTouch bool
	// SmoothScroll animates recentering and forwarded range changes.
	SmoothScroll bool

	// DeltaTrackingTouchPercent is the popup snapping tolerance as a share
	// of the visible value range.
	DeltaTrackingTouchPercent float64

	LegendCount   int
	LegendVisible bool
	LineWidth     float64
	InitialRange  Range

	Formatter format.Formatter
	Theme     Theme
	Logger    *log.Logger

	AppearanceEasing anim.Easing
	TensionEasing    anim.Easing
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		LineDuration:              300 * time.Millisecond,
		AxisDuration:              300 * time.Millisecond,
		SnapDuration:              150 * time.Millisecond,
		FrameMinWidthPercent:      0.1,
		FrameMaxWidthPercent:      1,
		CurtainTouchWidth:         24,
		RecenterOnTouch:           true,
		SmoothScroll:              true,
		DeltaTrackingTouchPercent: 0.05,
		LegendCount:               5,
		LegendVisible:             true,
		LineWidth:                 2,
		InitialRange:              BinaryRange,
		Formatter:                 format.Short{},
		Theme:                     DefaultTheme(),
		AppearanceEasing:          anim.Smoothstep,
		TensionEasing:             anim.Decelerate,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.LineDuration < 0:
		return &ConfigError{Field: "LineDuration", Reason: "must not be negative"}
	case c.AxisDuration < 0:
		return &ConfigError{Field: "AxisDuration", Reason: "must not be negative"}
	case c.SnapDuration < 0:
		return &ConfigError{Field: "SnapDuration", Reason: "must not be negative"}
	case c.FrameMinWidthPercent <= 0 || c.FrameMinWidthPercent > 1:
		return &ConfigError{Field: "FrameMinWidthPercent", Reason: "must be within (0,1]"}
	case c.FrameMaxWidthPercent <= 0 || c.FrameMaxWidthPercent > 1:
		return &ConfigError{Field: "FrameMaxWidthPercent", Reason: "must be within (0,1]"}
	case c.FrameMinWidthPercent > c.FrameMaxWidthPercent:
		return &ConfigError{Field: "FrameMinWidthPercent", Reason: "exceeds FrameMaxWidthPercent"}
	case c.CurtainTouchWidth < 0:
		return &ConfigError{Field: "CurtainTouchWidth", Reason: "must not be negative"}
	case c.DeltaTrackingTouchPercent < 0:
		return &ConfigError{Field: "DeltaTrackingTouchPercent", Reason: "must not be negative"}
	case c.LegendCount < 1:
		return &ConfigError{Field: "LegendCount", Reason: "must be at least 1"}
	case !c.InitialRange.IsPercent():
		return &ConfigError{Field: "InitialRange", Reason: "must be a percent range"}
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

func (c Config) formatter() format.Formatter {
	if c.Formatter != nil {
		return c.Formatter
	}
	return format.Short{}
}
