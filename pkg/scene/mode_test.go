package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, ModeLanding, s.Mode())
	assert.True(t, s.Loading())
	assert.Zero(t, s.Progress())
}

func TestSetProgressClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below", -0.5, 0},
		{"inside", 0.4, 0.4},
		{"above", 3, 1},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetProgress(tt.in)
			assert.Equal(t, tt.want, s.Progress())
		})
	}
}

func TestSetModeNotifiesOnlyOnChange(t *testing.T) {
	s := NewState()
	var got [][2]Mode
	s.OnModeChange(func(from, to Mode) { got = append(got, [2]Mode{from, to}) })

	s.SetMode(ModeLanding)
	s.SetMode(ModeDashboard)
	s.SetMode(ModeDashboard)

	assert.Equal(t, [][2]Mode{{ModeLanding, ModeDashboard}}, got)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeLanding, ModeTransitioning, ModeDashboard} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("hero")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestResetToLanding(t *testing.T) {
	s := NewState()
	s.SetProgress(0.7)
	s.SetMode(ModeDashboard)

	s.ResetToLanding()
	assert.Equal(t, ModeLanding, s.Mode())
	assert.Zero(t, s.Progress())
}

func TestTrackProgressOnlyWhileLandingAndLoaded(t *testing.T) {
	s := NewState()
	assert.False(t, s.trackProgress(0.5), "loading")

	s.SetLoading(false)
	assert.True(t, s.trackProgress(0.5))

	s.SetMode(ModeTransitioning)
	assert.False(t, s.trackProgress(0.9))
	assert.Equal(t, 0.5, s.Progress())
}

func TestSnapshotIsConsistent(t *testing.T) {
	s := NewState()
	s.SetLoading(false)
	s.SetProgress(0.25)
	s.SetMode(ModeTransitioning)

	f := s.Snapshot()
	assert.Equal(t, Frame{Mode: ModeTransitioning, Progress: 0.25}, f)
}
