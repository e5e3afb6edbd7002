package morph

import "math"

// EaseFunc blends a toward b at progress t in [0, 1].
type EaseFunc func(a, b, t float64) float64

// Easing names accepted by Named.
const (
	EasingLinear     = "linear"
	EasingEaseIn     = "easeIn"
	EasingEaseOut    = "easeOut"
	EasingEaseInOut  = "easeInOut"
	EasingCubicIn    = "cubicIn"
	EasingCubicOut   = "cubicOut"
	EasingCubicInOut = "cubicInOut"
	EasingBackIn     = "backIn"
	EasingBackOut    = "backOut"
	EasingBackInOut  = "backInOut"
	EasingElasticOut = "elasticOut"
	EasingBounceOut  = "bounceOut"
)

// Linear blends a and b linearly.
func Linear(a, b, t float64) float64 {
	return a + (b-a)*t
}

// CubicIn is the default easing: lerp(a, b, t^3).
func CubicIn(a, b, t float64) float64 {
	return a + (b-a)*t*t*t
}

// FromCurve lifts a progress curve into an EaseFunc.
func FromCurve(curve func(t float64) float64) EaseFunc {
	return func(a, b, t float64) float64 {
		return a + (b-a)*curve(t)
	}
}

// Named returns the easing registered under name. The empty name selects
// the default cubic ease-in.
func Named(name string) (EaseFunc, bool) {
	switch name {
	case "", EasingCubicIn:
		return CubicIn, true
	case EasingLinear:
		return Linear, true
	}
	c := curve(name)
	if c == nil {
		return nil, false
	}
	return FromCurve(c), true
}

// curve returns the progress curve for name, or nil if there is none.
func curve(name string) func(t float64) float64 {
	switch name {
	case EasingEaseIn:
		return func(t float64) float64 { return t * t }

	case EasingEaseOut:
		return func(t float64) float64 { return t * (2 - t) }

	case EasingEaseInOut:
		return func(t float64) float64 {
			if t < 0.5 {
				return 2 * t * t
			}
			return -1 + (4-2*t)*t
		}

	case EasingCubicOut:
		return func(t float64) float64 {
			u := 1 - t
			return 1 - u*u*u
		}

	case EasingCubicInOut:
		return func(t float64) float64 {
			if t < 0.5 {
				return 4 * t * t * t
			}
			u := 2 - 2*t
			return 1 - u*u*u/2
		}

	case EasingBackIn:
		return func(t float64) float64 { return backC3*t*t*t - backC1*t*t }

	case EasingBackOut:
		return func(t float64) float64 {
			u := t - 1
			return 1 + backC3*u*u*u + backC1*u*u
		}

	case EasingBackInOut:
		return func(t float64) float64 {
			const c2 = backC1 * 1.525
			if t < 0.5 {
				return math.Pow(2*t, 2) * ((c2+1)*2*t - c2) / 2
			}
			return (math.Pow(2*t-2, 2)*((c2+1)*(2*t-2)+c2) + 2) / 2
		}

	case EasingElasticOut:
		return func(t float64) float64 {
			if t == 0 || t == 1 {
				return t
			}
			return math.Pow(2, -10*t)*math.Sin((10*t-0.75)*2*math.Pi/3) + 1
		}

	case EasingBounceOut:
		return bounce
	}
	return nil
}

// Overshoot constants of the back curves.
const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

// bounce is a four-arc parabolic bounce settling at 1.
func bounce(t float64) float64 {
	const (
		k = 7.5625
		d = 2.75
	)
	switch {
	case t < 1/d:
		return k * t * t
	case t < 2/d:
		t -= 1.5 / d
		return k*t*t + 0.75
	case t < 2.5/d:
		t -= 2.25 / d
		return k*t*t + 0.9375
	default:
		t -= 2.625 / d
		return k*t*t + 0.984375
	}
}
