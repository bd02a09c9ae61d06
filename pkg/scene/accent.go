package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/truthscene/pkg/math3d"
)

// AccentKind selects one of the fixed decorative layouts.
type AccentKind string

const (
	AccentStats   AccentKind = "stats"
	AccentProblem AccentKind = "problem"
	AccentHow     AccentKind = "how"
	AccentCTA     AccentKind = "cta"
)

// Valid reports whether k names a known layout.
func (k AccentKind) Valid() bool {
	switch k {
	case AccentStats, AccentProblem, AccentHow, AccentCTA:
		return true
	}
	return false
}

// Mesh keys for accent parts, resolved by the scene's mesh library.
const (
	MeshCube      = "cube"
	MeshTetra     = "tetrahedron"
	MeshNode      = "sphere"
	MeshConnector = "connector"
	MeshKnot      = "knot"
)

// AccentPart is one piece of a layout, placed relative to the accent.
type AccentPart struct {
	Mesh     string
	Offset   math3d.Vec3
	Rotation math3d.Vec3
	Scale    float64
	Opacity  float64 // multiplier on the accent's visibility
	Glow     bool
}

// Transform returns the part's model matrix inside its accent group.
func (p AccentPart) Transform() math3d.Mat4 {
	return math3d.Compose(p.Offset, p.Rotation, p.Scale)
}

// Layout returns the parts that make up an accent of kind k.
func Layout(k AccentKind) ([]AccentPart, error) {
	switch k {
	case AccentStats:
		parts := make([]AccentPart, 16)
		for i := range parts {
			parts[i] = AccentPart{
				Mesh:    MeshCube,
				Offset:  math3d.V3(float64(i%4)*0.8-1.2, math.Floor(float64(i)/4-1.5)*0.8, 0),
				Scale:   0.2,
				Opacity: 1,
				Glow:    i%3 == 0,
			}
		}
		return parts, nil
	case AccentProblem:
		parts := make([]AccentPart, 5)
		for i := range parts {
			fi := float64(i)
			parts[i] = AccentPart{
				Mesh:     MeshTetra,
				Offset:   math3d.V3(math.Sin(fi*1.2)*1.5, math.Cos(fi*1.5), math.Sin(fi*0.8)*0.5),
				Rotation: math3d.V3(fi*0.5, fi*0.3, fi*0.2),
				Scale:    0.4 + fi*0.1,
				Opacity:  1,
				Glow:     i%2 == 0,
			}
		}
		return parts, nil
	case AccentHow:
		nodes := []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1.5, 0.5, 0), math3d.V3(3, 0, 0.5)}
		var parts []AccentPart
		for i, n := range nodes {
			parts = append(parts, AccentPart{Mesh: MeshNode, Offset: n, Scale: 0.3, Opacity: 1, Glow: true})
			if i == len(nodes)-1 {
				continue
			}
			// Connectors run along Y, so tilt each one onto the segment.
			d := nodes[i+1].Sub(n)
			parts = append(parts, AccentPart{
				Mesh:     MeshConnector,
				Offset:   n.Lerp(nodes[i+1], 0.5),
				Rotation: math3d.V3(0, 0, math.Atan2(d.Y, d.X)-math.Pi/2),
				Scale:    d.Len() / 1.8,
				Opacity:  0.6,
			})
		}
		return parts, nil
	case AccentCTA:
		return []AccentPart{{Mesh: MeshKnot, Scale: 1.2, Opacity: 1, Glow: true}}, nil
	default:
		return nil, fmt.Errorf("unknown accent kind %q", k)
	}
}

// AccentState is one accent's output for a frame.
type AccentState struct {
	Kind       AccentKind
	Position   math3d.Vec3
	RotationY  float64
	Scale      float64
	Visibility float64
	Visible    bool
	Parts      []AccentPart
}

// Transform returns the accent group's model matrix.
func (s AccentState) Transform() math3d.Mat4 {
	return math3d.Compose(s.Position, math3d.V3(0, s.RotationY, 0), s.Scale)
}

type accent struct {
	def     AccentSpec
	parts   []AccentPart
	reveal  math3d.Animated
	modeVis math3d.Animated
}

// AccentController fades section accents in as the page scrolls past them
// and out when the scene leaves landing.
type AccentController struct {
	tuning  *AccentTuning
	accents []accent
	out     []AccentState
}

// NewAccentController builds the configured accents, all hidden.
func NewAccentController(t *AccentTuning) (*AccentController, error) {
	c := &AccentController{tuning: t}
	if err := c.build(t); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *AccentController) build(t *AccentTuning) error {
	accents := make([]accent, len(t.Accents))
	for i, def := range t.Accents {
		parts, err := Layout(def.Kind)
		if err != nil {
			return fmt.Errorf("accent %d: %w", i, err)
		}
		accents[i] = accent{def: def, parts: parts}
		if i < len(c.accents) && c.accents[i].def.Kind == def.Kind {
			accents[i].reveal = c.accents[i].reveal
			accents[i].modeVis = c.accents[i].modeVis
		}
	}
	c.tuning = t
	c.accents = accents
	c.out = make([]AccentState, len(accents))
	return nil
}

// Reveal is the scroll-reveal factor for an accent shown after showAfter.
func (c *AccentController) Reveal(progress, showAfter float64) float64 {
	return math3d.Clamp01((progress - showAfter) * c.tuning.RevealGain)
}

// ModeVisibility is 1 while landing and 0 otherwise.
func ModeVisibility(m Mode) float64 {
	if m == ModeLanding {
		return 1
	}
	return 0
}

// Update steps every accent one frame. The returned slice is reused
// between calls.
func (c *AccentController) Update(f Frame) []AccentState {
	t := c.tuning
	for i := range c.accents {
		a := &c.accents[i]
		a.reveal.Target = c.Reveal(f.Progress, a.def.ShowAfter)
		a.modeVis.Target = ModeVisibility(f.Mode)
		vis := a.reveal.Step(t.Damping) * a.modeVis.Step(t.Damping)

		scale := vis
		if a.def.Kind == AccentCTA {
			scale *= t.EmphasisScale
		}
		pos := a.def.Position
		pos.Y += math.Sin(f.Time*t.FloatRate) * t.FloatAmp

		c.out[i] = AccentState{
			Kind:       a.def.Kind,
			Position:   pos,
			RotationY:  f.Time * t.SpinRate,
			Scale:      scale,
			Visibility: vis,
			Visible:    vis > t.VisibleEpsilon,
			Parts:      a.parts,
		}
	}
	return c.out
}

// Snap settles every accent on its target for f.
func (c *AccentController) Snap(f Frame) {
	for i := range c.accents {
		a := &c.accents[i]
		a.reveal = math3d.NewAnimated(c.Reveal(f.Progress, a.def.ShowAfter))
		a.modeVis = math3d.NewAnimated(ModeVisibility(f.Mode))
	}
}

func (c *AccentController) retune(t *AccentTuning) error {
	return c.build(t)
}
