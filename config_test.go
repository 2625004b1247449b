package main

import (
	"errors"
	"image/color"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curvechart/chart"
	"git.sr.ht/~whereswaldon/curvechart/chart/format"
)

func configFrom(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setConfigDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestChartConfigDefaults(t *testing.T) {
	cfg, err := chartConfig(configFrom(t, ""), log.New(io.Discard))
	require.NoError(t, err)
	def := chart.DefaultConfig()
	assert.Equal(t, def.LineDuration, cfg.LineDuration)
	assert.Equal(t, def.FrameMinWidthPercent, cfg.FrameMinWidthPercent)
	assert.Equal(t, def.InitialRange, cfg.InitialRange)
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.Equal(t, format.Short{}, cfg.Formatter)
}

func TestChartConfigOverrides(t *testing.T) {
	v := configFrom(t, heredoc.Doc(`
		animation:
		  line: 150ms
		frame:
		  min_width: 0.2
		  start: 0.5
		  end: 1
		legend:
		  count: 3
		  unit: W
		theme:
		  grid: "#10203040"
		  label: "#ff0000"
	`))
	cfg, err := chartConfig(v, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, cfg.LineDuration)
	assert.Equal(t, 0.2, cfg.FrameMinWidthPercent)
	assert.Equal(t, chart.Range{Start: 0.5, EndInclusive: 1}, cfg.InitialRange)
	assert.Equal(t, 3, cfg.LegendCount)
	assert.Equal(t, format.SI{Unit: "W"}, cfg.Formatter)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, cfg.Theme.Grid)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, cfg.Theme.Label)
}

func TestChartConfigRejects(t *testing.T) {
	_, err := chartConfig(configFrom(t, "theme:\n  grid: blue\n"), log.New(io.Discard))
	assert.ErrorContains(t, err, "theme.grid")

	_, err = chartConfig(configFrom(t, "frame:\n  min_width: 0.9\n  max_width: 0.5\n"), log.New(io.Discard))
	var cfgErr *chart.ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, "FrameMinWidthPercent", cfgErr.Field)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	_, err = newLogger("chatty")
	assert.Error(t, err)
}
