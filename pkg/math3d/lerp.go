package math3d

import "math"

// MinDamping is the smallest factor Damping lets through. Anything at or
// below zero would freeze an animated value in place forever.
const MinDamping = 1e-3

// Lerp returns a + (b-a)*t. Every animated value in the scene moves through
// this one function so that all controllers share the same smoothing.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Damping forces a per-frame interpolation factor into (0, 1].
func Damping(d float64) float64 {
	return Clamp(d, MinDamping, 1)
}

// Animated is a scalar that eases from Current toward Target.
type Animated struct {
	Current float64
	Target  float64
}

// NewAnimated returns a value already at rest at v.
func NewAnimated(v float64) Animated {
	return Animated{Current: v, Target: v}
}

// Step advances Current one frame toward Target and returns it.
func (a *Animated) Step(damping float64) float64 {
	a.Current = Lerp(a.Current, a.Target, Damping(damping))
	return a.Current
}

// AnimatedVec3 is the vector form of Animated.
type AnimatedVec3 struct {
	Current Vec3
	Target  Vec3
}

// NewAnimatedVec3 returns a vector already at rest at v.
func NewAnimatedVec3(v Vec3) AnimatedVec3 {
	return AnimatedVec3{Current: v, Target: v}
}

// Step advances Current one frame toward Target and returns it.
func (a *AnimatedVec3) Step(damping float64) Vec3 {
	a.Current = a.Current.Lerp(a.Target, Damping(damping))
	return a.Current
}
