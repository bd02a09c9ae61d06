package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/truthscene/pkg/math3d"
)

func TestParticleActiveCount(t *testing.T) {
	tun := DefaultTuning()
	f := NewParticleField(&tun.Particles)
	require.Equal(t, 40, f.Len())

	assert.Equal(t, 40, f.ActiveCount(ModeLanding))
	assert.Equal(t, 40, f.ActiveCount(ModeTransitioning))
	assert.Equal(t, 15, f.ActiveCount(ModeDashboard))

	tun.Particles.ActiveLanding = 500
	assert.Equal(t, 40, f.ActiveCount(ModeLanding), "capped to the pool")
}

func TestParticleInactiveSlotsShrinkToZero(t *testing.T) {
	tun := DefaultTuning()
	f := NewParticleField(&tun.Particles)
	f.Snap(Frame{Mode: ModeLanding})

	var out []ParticleState
	for range 300 {
		out = f.Update(Frame{Mode: ModeDashboard})
	}
	require.Len(t, out, 40, "slots are never removed")

	shown := 0
	for i, p := range out {
		if p.Size > 1e-6 {
			shown++
		}
		if i < 15 {
			assert.InDelta(t, f.particle(i).Size, p.Size, 1e-9)
		}
	}
	assert.Equal(t, 15, shown)
}

func TestParticleVelocityResetsAfterTransitioning(t *testing.T) {
	for _, next := range []Mode{ModeLanding, ModeDashboard} {
		t.Run(next.String(), func(t *testing.T) {
			tun := DefaultTuning()
			f := NewParticleField(&tun.Particles)
			f.Snap(Frame{Mode: ModeLanding})

			for range 60 {
				f.Update(Frame{Mode: ModeTransitioning})
			}
			moving := 0
			for i := range f.Len() {
				if f.particle(i).Velocity != (math3d.Vec3{}) {
					moving++
				}
			}
			require.Positive(t, moving)

			f.Update(Frame{Mode: next})
			for i := range f.Len() {
				assert.Equal(t, math3d.Vec3{}, f.particle(i).Velocity, "particle %d", i)
			}
		})
	}
}

func TestParticleScatterSpeedIsBounded(t *testing.T) {
	tun := DefaultTuning()
	f := NewParticleField(&tun.Particles)
	f.Snap(Frame{Mode: ModeLanding})

	for range 2000 {
		f.Update(Frame{Mode: ModeTransitioning})
	}
	limit := tun.Particles.ScatterAccel * tun.Particles.ScatterDrag / (1 - tun.Particles.ScatterDrag)
	for i := range f.Len() {
		assert.LessOrEqual(t, f.particle(i).Velocity.Len(), limit+1e-9)
	}
}

func TestParticleLandingDriftFallsWithProgress(t *testing.T) {
	tun := DefaultTuning()
	tun.Particles.Landing.Damping = 1
	f := NewParticleField(&tun.Particles)
	f.Snap(Frame{Mode: ModeLanding})

	top := f.Update(Frame{Mode: ModeLanding})[0].Position
	bottom := f.Update(Frame{Mode: ModeLanding, Progress: 1})[0].Position
	assert.InDelta(t, top.Y-15, bottom.Y, 1e-9)
	assert.InDelta(t, top.X, bottom.X, 1e-9)
}

func TestParticleSeedIsDeterministic(t *testing.T) {
	tun := DefaultTuning()
	a := NewParticleField(&tun.Particles)
	b := NewParticleField(&tun.Particles)
	for i := range a.Len() {
		assert.Equal(t, a.particle(i).Base, b.particle(i).Base)
	}

	tun.Particles.Seed = 8
	c := NewParticleField(&tun.Particles)
	assert.NotEqual(t, a.particle(0).Base, c.particle(0).Base)
}

func TestParticleRecoversFromNonFinitePosition(t *testing.T) {
	tun := DefaultTuning()
	f := NewParticleField(&tun.Particles)
	f.Snap(Frame{Mode: ModeLanding})

	f.pool[0].Position = math3d.V3(math.NaN(), 0, 0)
	f.pool[0].Velocity = math3d.V3(math.Inf(1), 0, 0)
	f.Update(Frame{Mode: ModeTransitioning})

	p := f.particle(0)
	assert.True(t, p.Position.IsFinite())
	assert.Equal(t, p.Base, p.Position)
	assert.Equal(t, math3d.Vec3{}, p.Velocity)
}
