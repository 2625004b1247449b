package anim

import "time"

// Appearance tweens a single scalar from 0 to 1. Line fade in and fade out
// share one Appearance per engine.
type Appearance struct {
	driver
	// OnUpdate receives the eased value after every tick.
	OnUpdate func(value float64)

	value float64
}

// NewAppearance returns an idle appearance tween.
func NewAppearance(duration time.Duration, easing Easing) *Appearance {
	return &Appearance{driver: driver{Duration: duration, Easing: easing}}
}

// Start cancels any in-flight tween and starts a new one from zero.
func (a *Appearance) Start() {
	a.cancel()
	a.begin()
	a.value = 0
	a.step(0, a.apply)
}

// Cancel stops the tween where it is. OnEnd is not invoked and the value is
// left untouched.
func (a *Appearance) Cancel() {
	a.cancel()
}

// Tick advances the tween by dt. It reports whether the tween is still
// running afterwards.
func (a *Appearance) Tick(dt time.Duration) bool {
	return a.step(dt, a.apply)
}

// Finish runs the tween to completion immediately.
func (a *Appearance) Finish() {
	if a.running {
		a.step(a.Remaining(), a.apply)
	}
}

// Value reports the most recently applied value.
func (a *Appearance) Value() float64 {
	return a.value
}

func (a *Appearance) apply(progress float64) {
	a.value = progress
	if a.OnUpdate != nil {
		a.OnUpdate(progress)
	}
}

// Tension tweens a pair of bounds along with the blend factor between the
// old and new pair.
type Tension struct {
	driver
	// OnUpdate receives the blend factor and the interpolated bounds.
	OnUpdate func(tension, min, max float64)

	fromMin, fromMax float64
	toMin, toMax     float64
	tension          float64
	min, max         float64
}

// NewTension returns an idle tension tween.
func NewTension(duration time.Duration, easing Easing) *Tension {
	return &Tension{driver: driver{Duration: duration, Easing: easing}}
}

// Start cancels any in-flight tween and animates the bounds from
// (fromMin, fromMax) to (toMin, toMax).
func (t *Tension) Start(fromMin, fromMax, toMin, toMax float64) {
	t.cancel()
	t.fromMin, t.fromMax = fromMin, fromMax
	t.toMin, t.toMax = toMin, toMax
	t.min, t.max = fromMin, fromMax
	t.tension = 0
	t.begin()
	t.step(0, t.apply)
}

// Cancel stops the tween at its current values without invoking OnEnd.
func (t *Tension) Cancel() {
	t.cancel()
}

// Tick advances the tween by dt. It reports whether the tween is still
// running afterwards.
func (t *Tension) Tick(dt time.Duration) bool {
	return t.step(dt, t.apply)
}

// Finish runs the tween to completion immediately.
func (t *Tension) Finish() {
	if t.running {
		t.step(t.Remaining(), t.apply)
	}
}

// Values reports the current blend factor and bounds.
func (t *Tension) Values() (tension, min, max float64) {
	return t.tension, t.min, t.max
}

// Target reports the bounds the tween is heading towards.
func (t *Tension) Target() (min, max float64) {
	return t.toMin, t.toMax
}

func (t *Tension) apply(progress float64) {
	t.tension = progress
	t.min = Lerp(t.fromMin, t.toMin, progress)
	t.max = Lerp(t.fromMax, t.toMax, progress)
	if t.OnUpdate != nil {
		t.OnUpdate(t.tension, t.min, t.max)
	}
}
