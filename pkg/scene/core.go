package scene

import (
	"math"

	"github.com/taigrr/truthscene/pkg/math3d"
)

// CoreLayer is the transform of one nested shell, relative to the core.
type CoreLayer struct {
	Name     string
	Rotation math3d.Vec3
	Scale    float64
}

// CoreState is the Truth Core's output for one frame.
type CoreState struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
	Scale    float64
	Opacity  float64
	Visible  bool
	Layers   []CoreLayer
}

// Transform returns the core group's model matrix.
func (s CoreState) Transform() math3d.Mat4 {
	return math3d.Compose(s.Position, s.Rotation, s.Scale)
}

// TruthCore is the focal geometry: nested shells spinning at their own
// rates while the group follows scroll and fades away outside landing.
type TruthCore struct {
	tuning   *CoreTuning
	position math3d.AnimatedVec3
	opacity  math3d.Animated
	spin     math3d.Animated // scroll-driven yaw offset
	tilt     math3d.Animated // scroll-driven pitch offset
	visible  bool
	layers   []CoreLayer
}

// NewTruthCore creates a fully visible core on the landing start pose.
func NewTruthCore(t *CoreTuning) *TruthCore {
	c := &TruthCore{tuning: t, visible: true}
	c.position = math3d.NewAnimatedVec3(math3d.V3(0, t.LandingStart.Y, t.LandingStart.Z))
	c.opacity = math3d.NewAnimated(t.LandingStart.Opacity)
	c.layers = make([]CoreLayer, len(t.Layers))
	return c
}

// Target returns the pose the core moves toward for f.
func (c *TruthCore) Target(f Frame) CorePose {
	t := c.tuning
	switch f.Mode {
	case ModeTransitioning:
		return t.Transitioning
	case ModeDashboard:
		return t.Dashboard
	default:
		p := math3d.Clamp01(f.Progress)
		return CorePose{
			Y:       math3d.Lerp(t.LandingStart.Y, t.LandingEnd.Y, p),
			Z:       math3d.Lerp(t.LandingStart.Z, t.LandingEnd.Z, p),
			Opacity: math3d.Lerp(t.LandingStart.Opacity, t.LandingEnd.Opacity, p),
			Damping: math3d.Lerp(t.LandingStart.Damping, t.LandingEnd.Damping, p),
		}
	}
}

// Update steps the core one frame.
func (c *TruthCore) Update(f Frame) CoreState {
	t := c.tuning
	pose := c.Target(f)

	c.position.Target = math3d.V3(0, pose.Y, pose.Z)
	c.opacity.Target = pose.Opacity
	pos := c.position.Step(pose.Damping)
	opacity := c.opacity.Step(pose.Damping)

	// Scroll only steers the spin while landing; elsewhere it holds.
	if f.Mode == ModeLanding {
		p := math3d.Clamp01(f.Progress)
		c.spin.Target = p * t.ScrollSpin
		c.tilt.Target = p * t.ScrollTilt
	}
	c.spin.Step(t.SpinDamping)
	c.tilt.Step(t.SpinDamping)

	// Fading out may hide the core once it is effectively transparent.
	// Fading in never hides it, even while opacity is still near zero.
	c.visible = !(c.opacity.Target == 0 && opacity < t.HideEpsilon)

	for i, l := range t.Layers {
		c.layers[i] = CoreLayer{
			Name:     l.Name,
			Rotation: l.Rates.Scale(f.Time),
			Scale:    l.Scale,
		}
	}

	return CoreState{
		Position: pos,
		Rotation: math3d.V3(
			math.Sin(f.Time*t.WobbleRate)*t.WobbleAmp+c.tilt.Current,
			f.Time*t.SpinRate+c.spin.Current,
			0,
		),
		Scale:   1 + math.Sin(f.Time*t.BreathRate)*t.BreathAmp,
		Opacity: opacity,
		Visible: c.visible,
		Layers:  c.layers,
	}
}

// isVisible reports the result of the last Update.
func (c *TruthCore) isVisible() bool {
	return c.visible
}

// Snap places the core directly on its target for f.
func (c *TruthCore) Snap(f Frame) {
	pose := c.Target(f)
	c.position = math3d.NewAnimatedVec3(math3d.V3(0, pose.Y, pose.Z))
	c.opacity = math3d.NewAnimated(pose.Opacity)
	if f.Mode == ModeLanding {
		p := math3d.Clamp01(f.Progress)
		c.spin = math3d.NewAnimated(p * c.tuning.ScrollSpin)
		c.tilt = math3d.NewAnimated(p * c.tuning.ScrollTilt)
	}
	c.visible = pose.Opacity > 0
}

func (c *TruthCore) retune(t *CoreTuning) {
	c.tuning = t
	if len(c.layers) != len(t.Layers) {
		c.layers = make([]CoreLayer, len(t.Layers))
	}
}

// Transform returns the layer's model matrix inside the core group.
func (l CoreLayer) Transform() math3d.Mat4 {
	return math3d.Compose(math3d.Vec3{}, l.Rotation, l.Scale)
}

func ringTransform(i int) math3d.Mat4 {
	fi := float64(i)
	return math3d.Euler(math3d.V3(math.Pi/2+fi*0.4, fi*0.3, 0))
}
