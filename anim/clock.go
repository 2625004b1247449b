package anim

import "time"

// clock is the pure progress state of a single tween. Advancing it never
// mutates the receiver, which keeps stepping trivially testable.
type clock struct {
	elapsed  time.Duration
	duration time.Duration
}

// advance returns the clock moved forward by dt along with the linear
// progress fraction and whether the tween reached its end.
func (c clock) advance(dt time.Duration) (next clock, fraction float64, done bool) {
	if dt < 0 {
		dt = 0
	}
	next = c
	next.elapsed += dt
	if next.duration <= 0 || next.elapsed >= next.duration {
		next.elapsed = next.duration
		return next, 1, true
	}
	fraction = float64(next.elapsed) / float64(next.duration)
	return next, fraction, false
}

// remaining reports how much time is left before the clock completes.
func (c clock) remaining() time.Duration {
	if c.elapsed >= c.duration {
		return 0
	}
	return c.duration - c.elapsed
}

// driver holds the lifecycle shared by every tween flavor: whether a tween
// is in flight, its clock, and a generation counter that lets callbacks
// restart or cancel the driver re-entrantly.
type driver struct {
	Duration time.Duration
	Easing   Easing
	OnEnd    func()

	clk     clock
	running bool
	gen     uint64
}

func (d *driver) begin() {
	d.gen++
	d.clk = clock{duration: d.Duration}
	d.running = true
}

func (d *driver) cancel() {
	d.gen++
	d.running = false
}

func (d *driver) ease(fraction float64) float64 {
	if d.Easing == nil {
		return fraction
	}
	return d.Easing(fraction)
}

// step advances the clock and invokes apply with the eased progress. It
// returns true while the tween keeps running after this step.
func (d *driver) step(dt time.Duration, apply func(progress float64)) bool {
	if !d.running {
		return false
	}
	gen := d.gen
	next, fraction, done := d.clk.advance(dt)
	d.clk = next
	progress := 1.0
	if !done {
		progress = d.ease(fraction)
	}
	if done {
		d.running = false
	}
	apply(progress)
	if gen != d.gen {
		// apply restarted or cancelled the driver.
		return d.running
	}
	if done {
		if d.OnEnd != nil {
			d.OnEnd()
		}
		return d.running
	}
	return true
}

// Running reports whether a tween is in flight.
func (d *driver) Running() bool {
	return d.running
}

// Remaining reports the time left on the in-flight tween.
func (d *driver) Remaining() time.Duration {
	if !d.running {
		return 0
	}
	return d.clk.remaining()
}
