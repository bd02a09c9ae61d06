package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccents(t *testing.T) (*AccentController, *Tuning) {
	t.Helper()
	tun := DefaultTuning()
	c, err := NewAccentController(&tun.Accents)
	require.NoError(t, err)
	return c, &tun
}

func TestAccentReveal(t *testing.T) {
	c, _ := newAccents(t)
	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 0},
		{0.2, 0},
		{0.25, 0},
		{0.375, 0.5},
		{0.5, 1},
		{0.9, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Reveal(tt.progress, 0.25), 1e-12, "progress %v", tt.progress)
	}
}

func TestAccentVisibleOnlyWhileLanding(t *testing.T) {
	for _, progress := range []float64{0, 0.25, 0.5, 1} {
		c, _ := newAccents(t)
		f := Frame{Mode: ModeDashboard, Progress: progress}
		c.Snap(f)
		for _, a := range c.Update(f) {
			assert.Zero(t, a.Visibility)
			assert.False(t, a.Visible)
		}
	}

	c, _ := newAccents(t)
	f := Frame{Mode: ModeLanding, Progress: 0.5}
	c.Snap(f)
	out := c.Update(f)
	require.Len(t, out, 4)
	assert.Equal(t, AccentProblem, out[1].Kind)
	assert.Equal(t, 1.0, out[1].Visibility)
	assert.True(t, out[1].Visible)
	assert.False(t, out[3].Visible, "cta shows after 0.7")
}

func TestAccentFadesOnModeChange(t *testing.T) {
	c, _ := newAccents(t)
	c.Snap(Frame{Mode: ModeLanding, Progress: 0.5})

	out := c.Update(Frame{Mode: ModeDashboard, Progress: 0.5})
	assert.InDelta(t, 0.92, out[1].Visibility, 1e-12)
}

func TestAccentCTAIsEmphasised(t *testing.T) {
	c, _ := newAccents(t)
	f := Frame{Mode: ModeLanding, Progress: 1}
	c.Snap(f)
	out := c.Update(f)
	assert.Equal(t, 1.0, out[0].Scale)
	assert.Equal(t, 1.5, out[3].Scale)
	assert.Equal(t, 1.0, out[3].Visibility)
}

func TestAccentFloatAndSpin(t *testing.T) {
	c, tun := newAccents(t)
	f := Frame{Mode: ModeLanding, Progress: 1, Time: 3}
	c.Snap(f)
	out := c.Update(f)
	assert.InDelta(t, 0.6, out[0].RotationY, 1e-12)
	base := tun.Accents.Accents[0].Position.Y
	assert.InDelta(t, base, out[0].Position.Y, tun.Accents.FloatAmp+1e-12)
}

func TestLayout(t *testing.T) {
	tests := []struct {
		kind  AccentKind
		parts int
	}{
		{AccentStats, 16},
		{AccentProblem, 5},
		{AccentHow, 5},
		{AccentCTA, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			parts, err := Layout(tt.kind)
			require.NoError(t, err)
			assert.Len(t, parts, tt.parts)
			assert.True(t, tt.kind.Valid())
		})
	}

	_, err := Layout("hero")
	assert.Error(t, err)
}

func TestNewAccentControllerRejectsUnknownKind(t *testing.T) {
	tun := DefaultTuning()
	tun.Accents.Accents = append(tun.Accents.Accents, AccentSpec{Kind: "hero"})
	_, err := NewAccentController(&tun.Accents)
	assert.ErrorContains(t, err, "accent 4")
}
