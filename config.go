package main

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"git.sr.ht/~whereswaldon/curvechart/chart"
	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

// setConfigDefaults registers every configuration key with its default.
func setConfigDefaults(v *viper.Viper) {
	def := chart.DefaultConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("follow", true)
	v.SetDefault("animation.line", def.LineDuration)
	v.SetDefault("animation.axis", def.AxisDuration)
	v.SetDefault("animation.snap", def.SnapDuration)
	v.SetDefault("frame.min_width", def.FrameMinWidthPercent)
	v.SetDefault("frame.max_width", def.FrameMaxWidthPercent)
	v.SetDefault("frame.touch_width", def.CurtainTouchWidth)
	v.SetDefault("frame.recenter", def.RecenterOnTouch)
	v.SetDefault("frame.smooth", def.SmoothScroll)
	v.SetDefault("frame.start", def.InitialRange.Start)
	v.SetDefault("frame.end", def.InitialRange.EndInclusive)
	v.SetDefault("tracking.delta", def.DeltaTrackingTouchPercent)
	v.SetDefault("legend.count", def.LegendCount)
	v.SetDefault("legend.visible", def.LegendVisible)
	v.SetDefault("legend.unit", "")
	v.SetDefault("line.width", def.LineWidth)
}

// readConfig loads the optional config file and the environment into v.
func readConfig(v *viper.Viper, path string) error {
	setConfigDefaults(v)
	v.SetEnvPrefix("curvechart")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path == "" {
		v.SetConfigName("curvechart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil
			}
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %q: %w", path, err)
	}
	return nil
}

// chartConfig builds the chart configuration from v.
func chartConfig(v *viper.Viper, logger *log.Logger) (chart.Config, error) {
	cfg := chart.DefaultConfig()
	cfg.Logger = logger
	cfg.LineDuration = v.GetDuration("animation.line")
	cfg.AxisDuration = v.GetDuration("animation.axis")
	cfg.SnapDuration = v.GetDuration("animation.snap")
	cfg.FrameMinWidthPercent = v.GetFloat64("frame.min_width")
	cfg.FrameMaxWidthPercent = v.GetFloat64("frame.max_width")
	cfg.CurtainTouchWidth = v.GetFloat64("frame.touch_width")
	cfg.RecenterOnTouch = v.GetBool("frame.recenter")
	cfg.SmoothScroll = v.GetBool("frame.smooth")
	cfg.InitialRange = chart.Range{
		Start:        v.GetFloat64("frame.start"),
		EndInclusive: v.GetFloat64("frame.end"),
	}
	cfg.DeltaTrackingTouchPercent = v.GetFloat64("tracking.delta")
	cfg.LegendCount = v.GetInt("legend.count")
	cfg.LegendVisible = v.GetBool("legend.visible")
	cfg.LineWidth = v.GetFloat64("line.width")
	if unit := v.GetString("legend.unit"); unit != "" {
		cfg.Formatter = format.SI{Unit: unit}
	}
	theme, err := themeConfig(v, cfg.Theme)
	if err != nil {
		return chart.Config{}, err
	}
	cfg.Theme = theme
	if err := cfg.Validate(); err != nil {
		return chart.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// themeConfig overrides the colors of base named under the theme key.
func themeConfig(v *viper.Viper, base chart.Theme) (chart.Theme, error) {
	for _, entry := range []struct {
		key   string
		color *color.NRGBA
	}{
		{"theme.background", &base.Background},
		{"theme.grid", &base.Grid},
		{"theme.label", &base.Label},
		{"theme.popup_line", &base.PopupLine},
		{"theme.popup_background", &base.PopupBackground},
		{"theme.popup_text", &base.PopupText},
		{"theme.frame", &base.Frame},
		{"theme.curtain", &base.Curtain},
		{"theme.selector_background", &base.SelectorBg},
	} {
		raw := v.GetString(entry.key)
		if raw == "" {
			continue
		}
		c, err := chart.ParseHexColor(raw)
		if err != nil {
			return chart.Theme{}, fmt.Errorf("%s: %w", entry.key, err)
		}
		*entry.color = color.NRGBA(c)
	}
	return base, nil
}
