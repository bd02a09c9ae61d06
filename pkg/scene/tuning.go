package scene

import (
	"math"

	"github.com/taigrr/truthscene/pkg/math3d"
)

// Tuning holds every aesthetic constant the controllers use. None of these
// values are load-bearing; they only shape how each transition looks.
type Tuning struct {
	Camera     CameraTuning     `yaml:"camera"`
	Core       CoreTuning       `yaml:"core"`
	Particles  ParticleTuning   `yaml:"particles"`
	Accents    AccentTuning     `yaml:"accents"`
	Intro      IntroTuning      `yaml:"intro"`
	Navigation NavigationTuning `yaml:"navigation"`
}

// CameraPose is a camera target: height, distance and look-at height.
type CameraPose struct {
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
	LookAtY float64 `yaml:"look_at_y"`
}

// CameraTuning configures the camera rig. Landing poses are blended by
// scroll progress from LandingStart to LandingEnd.
type CameraTuning struct {
	LandingStart         CameraPose `yaml:"landing_start"`
	LandingEnd           CameraPose `yaml:"landing_end"`
	Transitioning        CameraPose `yaml:"transitioning"`
	Dashboard            CameraPose `yaml:"dashboard"`
	LandingDamping       float64    `yaml:"landing_damping"`
	TransitioningDamping float64    `yaml:"transitioning_damping"`
	DashboardDamping     float64    `yaml:"dashboard_damping"`
	LookAtZ              float64    `yaml:"look_at_z"`
	FOV                  float64    `yaml:"fov_degrees"`
}

// CorePose is a Truth Core position and opacity target plus the damping
// used to reach it.
type CorePose struct {
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
	Opacity float64 `yaml:"opacity"`
	Damping float64 `yaml:"damping"`
}

// LayerTuning is one nested shell of the Truth Core.
type LayerTuning struct {
	Name  string      `yaml:"name"`
	Shape string      `yaml:"shape"`
	Scale float64     `yaml:"scale"`
	Rates math3d.Vec3 `yaml:"rates"` // radians per second about X, Y, Z
}

// CoreTuning configures the Truth Core.
type CoreTuning struct {
	LandingStart  CorePose      `yaml:"landing_start"`
	LandingEnd    CorePose      `yaml:"landing_end"`
	Transitioning CorePose      `yaml:"transitioning"`
	Dashboard     CorePose      `yaml:"dashboard"`
	HideEpsilon   float64       `yaml:"hide_epsilon"`
	SpinRate      float64       `yaml:"spin_rate"`
	WobbleRate    float64       `yaml:"wobble_rate"`
	WobbleAmp     float64       `yaml:"wobble_amp"`
	ScrollSpin    float64       `yaml:"scroll_spin"`
	ScrollTilt    float64       `yaml:"scroll_tilt"`
	SpinDamping   float64       `yaml:"spin_damping"`
	BreathRate    float64       `yaml:"breath_rate"`
	BreathAmp     float64       `yaml:"breath_amp"`
	Layers        []LayerTuning `yaml:"layers"`
	RingRadii     []float64     `yaml:"ring_radii"`
}

// DriftTuning is the sinusoidal wander around a particle's rest position.
type DriftTuning struct {
	AmpX       float64 `yaml:"amp_x"`
	AmpY       float64 `yaml:"amp_y"`
	SpeedScale float64 `yaml:"speed_scale"`
	ScrollFall float64 `yaml:"scroll_fall"`
	Damping    float64 `yaml:"damping"`
}

// ParticleTuning configures the particle pool.
type ParticleTuning struct {
	PoolSize            int         `yaml:"pool_size"`
	ActiveLanding       int         `yaml:"active_landing"`
	ActiveTransitioning int         `yaml:"active_transitioning"`
	ActiveDashboard     int         `yaml:"active_dashboard"`
	Seed                int64       `yaml:"seed"`
	Spread              math3d.Vec3 `yaml:"spread"`
	Center              math3d.Vec3 `yaml:"center"`
	SpeedMin            float64     `yaml:"speed_min"`
	SpeedMax            float64     `yaml:"speed_max"`
	SizeMin             float64     `yaml:"size_min"`
	SizeMax             float64     `yaml:"size_max"`
	Landing             DriftTuning `yaml:"landing"`
	Dashboard           DriftTuning `yaml:"dashboard"`
	ScatterAccel        float64     `yaml:"scatter_accel"`
	ScatterDrag         float64     `yaml:"scatter_drag"`
	ScaleDamping        float64     `yaml:"scale_damping"`
	Opacity             float64     `yaml:"opacity"`
}

// AccentSpec places one section accent.
type AccentSpec struct {
	Kind      AccentKind  `yaml:"kind"`
	Position  math3d.Vec3 `yaml:"position"`
	ShowAfter float64     `yaml:"show_after"`
}

// AccentTuning configures the section accents.
type AccentTuning struct {
	Accents        []AccentSpec `yaml:"accents"`
	RevealGain     float64      `yaml:"reveal_gain"`
	Damping        float64      `yaml:"damping"`
	EmphasisScale  float64      `yaml:"emphasis_scale"`
	SpinRate       float64      `yaml:"spin_rate"`
	FloatRate      float64      `yaml:"float_rate"`
	FloatAmp       float64      `yaml:"float_amp"`
	VisibleEpsilon float64      `yaml:"visible_epsilon"`
}

// IntroTuning configures the intro sequence, durations in seconds.
type IntroTuning struct {
	Drawing       float64 `yaml:"drawing"`
	Filling       float64 `yaml:"filling"`
	Glowing       float64 `yaml:"glowing"`
	Complete      float64 `yaml:"complete"`
	ClearDelay    float64 `yaml:"clear_delay"`
	SpringFreq    float64 `yaml:"spring_frequency"`
	SpringDamp    float64 `yaml:"spring_damping"`
	FrameRateHint int     `yaml:"frame_rate_hint"`
}

// NavigationTuning configures the page controller.
type NavigationTuning struct {
	TransitionHold float64 `yaml:"transition_hold"`
}

// DefaultTuning returns the values the scene was designed around.
func DefaultTuning() Tuning {
	return Tuning{
		Camera: CameraTuning{
			LandingStart:         CameraPose{Y: 1.5, Z: 8, LookAtY: 0.5},
			LandingEnd:           CameraPose{Y: -2.5, Z: 11, LookAtY: -4.5},
			Transitioning:        CameraPose{Y: -2, Z: -5, LookAtY: -10},
			Dashboard:            CameraPose{Y: 0, Z: 15, LookAtY: 0},
			LandingDamping:       0.03,
			TransitioningDamping: 0.06,
			DashboardDamping:     0.05,
			LookAtZ:              -5,
			FOV:                  50,
		},
		Core: CoreTuning{
			LandingStart:  CorePose{Y: 1, Z: -2, Opacity: 1, Damping: 0.05},
			LandingEnd:    CorePose{Y: -5, Z: -10, Opacity: 1, Damping: 0.05},
			Transitioning: CorePose{Y: -5, Z: -15, Opacity: 0, Damping: 0.025},
			Dashboard:     CorePose{Y: -10, Z: -20, Opacity: 0, Damping: 0.05},
			HideEpsilon:   0.01,
			SpinRate:      0.1,
			WobbleRate:    0.15,
			WobbleAmp:     0.15,
			ScrollSpin:    math.Pi,
			ScrollTilt:    0.5,
			SpinDamping:   0.05,
			BreathRate:    0.8,
			BreathAmp:     0.03,
			Layers: []LayerTuning{
				{Name: "inner", Shape: "octahedron", Scale: 0.6, Rates: math3d.V3(0.4, 0, 0.3)},
				{Name: "middle", Shape: "icosahedron", Scale: 1.3, Rates: math3d.V3(0.15, -0.2, 0)},
				{Name: "outer", Shape: "dodecahedron", Scale: 2, Rates: math3d.V3(0, -0.05, 0.08)},
			},
			RingRadii: []float64{1.6, 2.2, 2.8},
		},
		Particles: ParticleTuning{
			PoolSize:            40,
			ActiveLanding:       40,
			ActiveTransitioning: 40,
			ActiveDashboard:     15,
			Seed:                7,
			Spread:              math3d.V3(30, 30, 20),
			Center:              math3d.V3(0, 0, -10),
			SpeedMin:            0.1,
			SpeedMax:            0.4,
			SizeMin:             0.03,
			SizeMax:             0.08,
			Landing:             DriftTuning{AmpX: 2, AmpY: 1.5, SpeedScale: 1, ScrollFall: 15, Damping: 0.05},
			Dashboard:           DriftTuning{AmpX: 0.5, AmpY: 0.4, SpeedScale: 0.5, Damping: 0.05},
			ScatterAccel:        0.02,
			ScatterDrag:         0.98,
			ScaleDamping:        0.08,
			Opacity:             0.8,
		},
		Accents: AccentTuning{
			Accents: []AccentSpec{
				{Kind: AccentStats, Position: math3d.V3(-6, -4, -8), ShowAfter: 0.1},
				{Kind: AccentProblem, Position: math3d.V3(7, -10, -6), ShowAfter: 0.25},
				{Kind: AccentHow, Position: math3d.V3(-5, -18, -5), ShowAfter: 0.45},
				{Kind: AccentCTA, Position: math3d.V3(0, -28, -4), ShowAfter: 0.7},
			},
			RevealGain:     4,
			Damping:        0.08,
			EmphasisScale:  1.5,
			SpinRate:       0.2,
			FloatRate:      0.5,
			FloatAmp:       0.2,
			VisibleEpsilon: 1e-3,
		},
		Intro: IntroTuning{
			Drawing:       1.5,
			Filling:       0.8,
			Glowing:       0.4,
			Complete:      0.3,
			ClearDelay:    0.3,
			SpringFreq:    6,
			SpringDamp:    0.7,
			FrameRateHint: 60,
		},
		Navigation: NavigationTuning{TransitionHold: 1.2},
	}
}

// Dampings lists every per-frame interpolation factor by name, for
// validation.
func (t Tuning) Dampings() map[string]float64 {
	return map[string]float64{
		"camera.landing_damping":       t.Camera.LandingDamping,
		"camera.transitioning_damping": t.Camera.TransitioningDamping,
		"camera.dashboard_damping":     t.Camera.DashboardDamping,
		"core.landing_start.damping":   t.Core.LandingStart.Damping,
		"core.landing_end.damping":     t.Core.LandingEnd.Damping,
		"core.transitioning.damping":   t.Core.Transitioning.Damping,
		"core.dashboard.damping":       t.Core.Dashboard.Damping,
		"core.spin_damping":            t.Core.SpinDamping,
		"particles.landing.damping":    t.Particles.Landing.Damping,
		"particles.dashboard.damping":  t.Particles.Dashboard.Damping,
		"particles.scale_damping":      t.Particles.ScaleDamping,
		"particles.scatter_drag":       t.Particles.ScatterDrag,
		"accents.damping":              t.Accents.Damping,
	}
}
