package scene

import (
	"math"
	"math/rand/v2"

	"github.com/taigrr/truthscene/pkg/math3d"
)

// Particle is one slot of the ambient pool. Slots are never removed; an
// inactive slot eases its scale toward zero.
type Particle struct {
	Base     math3d.Vec3
	Position math3d.Vec3
	Velocity math3d.Vec3
	Speed    float64
	Size     float64
	Phase    float64
	Scale    math3d.Animated
}

// ParticleState is what the renderer needs from one slot.
type ParticleState struct {
	Position math3d.Vec3
	Size     float64 // Particle.Size times the eased scale
	Opacity  float64
}

// ParticleField animates a fixed pool of ambient particles.
type ParticleField struct {
	tuning   *ParticleTuning
	pool     []Particle
	out      []ParticleState
	lastMode Mode
	started  bool
}

// NewParticleField seeds the pool deterministically from t.Seed.
func NewParticleField(t *ParticleTuning) *ParticleField {
	rng := rand.New(rand.NewPCG(uint64(t.Seed), uint64(t.Seed)^0x9e3779b97f4a7c15))
	pool := make([]Particle, max(t.PoolSize, 0))
	for i := range pool {
		base := math3d.V3(
			(rng.Float64()-0.5)*t.Spread.X,
			(rng.Float64()-0.5)*t.Spread.Y,
			(rng.Float64()-0.5)*t.Spread.Z,
		).Add(t.Center)
		pool[i] = Particle{
			Base:     base,
			Position: base,
			Speed:    t.SpeedMin + rng.Float64()*(t.SpeedMax-t.SpeedMin),
			Size:     t.SizeMin + rng.Float64()*(t.SizeMax-t.SizeMin),
			Phase:    rng.Float64() * 2 * math.Pi,
			Scale:    math3d.NewAnimated(1),
		}
	}
	return &ParticleField{
		tuning: t,
		pool:   pool,
		out:    make([]ParticleState, len(pool)),
	}
}

// Len returns the pool size.
func (p *ParticleField) Len() int {
	return len(p.pool)
}

// particle returns slot i.
func (p *ParticleField) particle(i int) Particle {
	return p.pool[i]
}

// ActiveCount is the number of slots shown in mode m, capped to the pool.
func (p *ParticleField) ActiveCount(m Mode) int {
	var n int
	switch m {
	case ModeTransitioning:
		n = p.tuning.ActiveTransitioning
	case ModeDashboard:
		n = p.tuning.ActiveDashboard
	default:
		n = p.tuning.ActiveLanding
	}
	return min(max(n, 0), len(p.pool))
}

// Update steps every slot one frame. The returned slice is reused between
// calls.
func (p *ParticleField) Update(f Frame) []ParticleState {
	t := p.tuning

	// Scatter velocity must not leak into the next mode's drift.
	if p.started && p.lastMode == ModeTransitioning && f.Mode != ModeTransitioning {
		p.resetVelocity()
	}
	p.lastMode = f.Mode
	p.started = true

	active := p.ActiveCount(f.Mode)
	for i := range p.pool {
		pt := &p.pool[i]

		switch f.Mode {
		case ModeTransitioning:
			pt.Velocity = pt.Velocity.Add(pt.Position.Normalize().Scale(t.ScatterAccel)).Scale(t.ScatterDrag)
			pt.Position = pt.Position.Add(pt.Velocity)
		case ModeDashboard:
			pt.Position = pt.Position.Lerp(p.drift(pt, &t.Dashboard, f), math3d.Damping(t.Dashboard.Damping))
		default:
			pt.Position = pt.Position.Lerp(p.drift(pt, &t.Landing, f), math3d.Damping(t.Landing.Damping))
		}
		if !pt.Position.IsFinite() {
			pt.Position, pt.Velocity = pt.Base, math3d.Vec3{}
		}

		if i < active {
			pt.Scale.Target = 1
		} else {
			pt.Scale.Target = 0
		}
		pt.Scale.Step(t.ScaleDamping)

		p.out[i] = ParticleState{
			Position: pt.Position,
			Size:     pt.Size * pt.Scale.Current,
			Opacity:  t.Opacity,
		}
	}
	return p.out
}

// drift is the calm wander target around the base position. ScrollFall
// pulls the pattern down as progress grows so particles stream past the
// descending camera.
func (p *ParticleField) drift(pt *Particle, d *DriftTuning, f Frame) math3d.Vec3 {
	w := f.Time * pt.Speed * d.SpeedScale
	target := pt.Base.Add(math3d.V3(math.Sin(w+pt.Phase)*d.AmpX, math.Cos(w*0.7)*d.AmpY, 0))
	target.Y -= math3d.Clamp01(f.Progress) * d.ScrollFall
	return target
}

func (p *ParticleField) resetVelocity() {
	for i := range p.pool {
		p.pool[i].Velocity = math3d.Vec3{}
	}
}

// Snap settles every slot's scale on its target for f.
func (p *ParticleField) Snap(f Frame) {
	active := p.ActiveCount(f.Mode)
	for i := range p.pool {
		s := 0.0
		if i < active {
			s = 1
		}
		p.pool[i].Scale = math3d.NewAnimated(s)
		p.pool[i].Velocity = math3d.Vec3{}
	}
	p.lastMode = f.Mode
	p.started = true
}
