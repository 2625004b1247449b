package chart

// Emitter fans events out to subscribers in registration order.
type Emitter[T any] struct {
	subs []*subscription[T]
}

type subscription[T any] struct {
	fn     func(T)
	active bool
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (e *Emitter[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	sub := &subscription[T]{fn: fn, active: true}
	e.subs = append(e.subs, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range e.subs {
			if s == sub {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every subscriber registered when Emit was called.
// Subscribers removed by an earlier subscriber during delivery are skipped.
func (e *Emitter[T]) Emit(ev T) {
	subs := e.subs
	for _, s := range subs {
		if s.active {
			s.fn(ev)
		}
	}
}

// Len reports the number of live subscribers.
func (e *Emitter[T]) Len() int {
	return len(e.subs)
}

// Redraw asks the presentation layer to draw another frame.
type Redraw struct{}

// LinesChanged carries the lines an engine is converging on.
type LinesChanged struct {
	Lines []CurveLine
}

// RangeChanged carries an accepted percent range change.
type RangeChanged struct {
	Range  Range
	Smooth bool
}

// YAxisChanged carries the bounds the Y axis is animating towards.
type YAxisChanged struct {
	Min, Max float64
	Smooth   bool
}

// IntersectionsChanged carries the samples under the popup line. X is the
// pixel position of the popup line.
type IntersectionsChanged struct {
	X      float64
	Points []IntersectionPoint
}
