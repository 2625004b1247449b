package anim

// Easing maps linear progress in [0,1] onto eased progress in [0,1].
type Easing func(t float64) float64

var (
	// Linear applies no easing.
	Linear Easing = func(t float64) float64 { return t }

	// Decelerate starts fast and slows into the target. Axis rescaling uses
	// it so bounds settle rather than snap.
	Decelerate Easing = func(t float64) float64 {
		return 1 - (1-t)*(1-t)
	}

	// EaseOutCubic is a stronger deceleration.
	EaseOutCubic Easing = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// Smoothstep accelerates at the start and decelerates at the end.
	Smoothstep Easing = func(t float64) float64 {
		return t * t * (3 - 2*t)
	}
)

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
