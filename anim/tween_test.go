package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockAdvance(t *testing.T) {
	c := clock{duration: 100 * time.Millisecond}
	c, fraction, done := c.advance(25 * time.Millisecond)
	require.False(t, done)
	require.InDelta(t, 0.25, fraction, 1e-9)

	c, fraction, done = c.advance(-time.Second)
	require.False(t, done, "negative steps must not move the clock")
	require.InDelta(t, 0.25, fraction, 1e-9)

	_, fraction, done = c.advance(time.Second)
	require.True(t, done)
	require.Equal(t, 1.0, fraction)
}

func TestEasingEndpoints(t *testing.T) {
	for name, easing := range map[string]Easing{
		"linear":     Linear,
		"decelerate": Decelerate,
		"outCubic":   EaseOutCubic,
		"smoothstep": Smoothstep,
	} {
		assert.InDelta(t, 0, easing(0), 1e-9, name)
		assert.InDelta(t, 1, easing(1), 1e-9, name)
	}
	// Decelerating curves run ahead of linear progress.
	assert.Greater(t, Decelerate(0.5), 0.5)
	assert.Greater(t, EaseOutCubic(0.5), Decelerate(0.5))
}

func TestAppearanceRunsToCompletion(t *testing.T) {
	a := NewAppearance(100*time.Millisecond, Linear)
	var seen []float64
	ended := 0
	a.OnUpdate = func(v float64) { seen = append(seen, v) }
	a.OnEnd = func() { ended++ }

	a.Start()
	require.True(t, a.Running())
	for a.Tick(30 * time.Millisecond) {
	}
	require.False(t, a.Running())
	require.Equal(t, 1, ended)
	require.Equal(t, []float64{0, 0.3, 0.6, 0.9, 1}, roundAll(seen))
	require.Equal(t, 1.0, a.Value())
}

func TestAppearanceCancelKeepsValue(t *testing.T) {
	a := NewAppearance(100*time.Millisecond, Linear)
	ended := false
	a.OnEnd = func() { ended = true }
	a.Start()
	a.Tick(40 * time.Millisecond)
	a.Cancel()

	require.False(t, a.Running())
	require.InDelta(t, 0.4, a.Value(), 1e-9)
	require.False(t, a.Tick(time.Second), "a cancelled tween does not tick")
	require.False(t, ended)
}

func TestAppearanceRestartFromCallback(t *testing.T) {
	a := NewAppearance(50*time.Millisecond, Linear)
	restarts := 0
	a.OnEnd = func() {
		if restarts == 0 {
			restarts++
			a.Start()
		}
	}
	a.Start()
	require.True(t, a.Tick(time.Second), "restart inside OnEnd keeps the driver running")
	require.Equal(t, 0.0, a.Value())
	require.False(t, a.Tick(time.Second))
}

func TestAppearanceZeroDurationCompletesOnStart(t *testing.T) {
	a := NewAppearance(0, nil)
	ended := false
	a.OnEnd = func() { ended = true }
	a.Start()
	require.True(t, ended)
	require.False(t, a.Running())
	require.Equal(t, 1.0, a.Value())
}

func TestTensionInterpolatesBounds(t *testing.T) {
	tn := NewTension(200*time.Millisecond, Linear)
	type update struct{ tension, min, max float64 }
	var got []update
	tn.OnUpdate = func(tension, min, max float64) {
		got = append(got, update{tension, min, max})
	}
	tn.Start(0, 10, 10, 30)
	tn.Tick(100 * time.Millisecond)

	tension, lo, hi := tn.Values()
	require.InDelta(t, 0.5, tension, 1e-9)
	require.InDelta(t, 5, lo, 1e-9)
	require.InDelta(t, 20, hi, 1e-9)

	tn.Finish()
	require.False(t, tn.Running())
	_, lo, hi = tn.Values()
	require.Equal(t, 10.0, lo)
	require.Equal(t, 30.0, hi)
	require.Len(t, got, 3)
	targetMin, targetMax := tn.Target()
	require.Equal(t, 10.0, targetMin)
	require.Equal(t, 30.0, targetMax)
}

func TestTensionStartCancelsPrevious(t *testing.T) {
	tn := NewTension(100*time.Millisecond, Decelerate)
	ends := 0
	tn.OnEnd = func() { ends++ }
	tn.Start(0, 1, 0, 2)
	tn.Tick(50 * time.Millisecond)
	_, _, hi := tn.Values()
	tn.Start(0, hi, 0, 4)
	tn.Finish()
	require.Equal(t, 1, ends, "the superseded tween never reports completion")
	_, _, hi = tn.Values()
	require.Equal(t, 4.0, hi)
}

func roundAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(int(v*1000+0.5)) / 1000
	}
	return out
}
