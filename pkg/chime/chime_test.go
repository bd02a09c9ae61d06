package chime

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/truthscene/pkg/scene"
)

func TestCueForClimbs(t *testing.T) {
	phases := []scene.Phase{scene.PhaseDrawing, scene.PhaseFilling, scene.PhaseGlowing, scene.PhaseComplete}
	prev := 0.0
	for _, ph := range phases {
		c := CueFor(ph, 440)
		assert.Greater(t, c.Freq, prev, "phase %s", ph)
		assert.Positive(t, c.Duration)
		prev = c.Freq
	}
	assert.Equal(t, 880.0, CueFor(scene.PhaseComplete, 440).Freq)
}

func TestStreamLength(t *testing.T) {
	s, err := Stream(Cue{Freq: 440, Duration: 10 * time.Millisecond})
	require.NoError(t, err)

	want := sampleRate.N(10 * time.Millisecond)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			assert.LessOrEqual(t, smp[0], 1.0)
			assert.GreaterOrEqual(t, smp[0], -1.0)
		}
		if !ok {
			break
		}
	}
	assert.Equal(t, want, total)
}

func TestStreamRejectsInaudible(t *testing.T) {
	_, err := Stream(Cue{Freq: float64(sampleRate), Duration: time.Millisecond})
	assert.Error(t, err)
}

func TestPlayerDisabledIsSilent(t *testing.T) {
	p := New(false, 440, nil)
	require.NoError(t, p.Init())

	var got []beep.Streamer
	p.play = func(s beep.Streamer) { got = append(got, s) }
	p.Play(scene.PhaseDrawing)

	assert.Empty(t, got)
	assert.Zero(t, p.Played())
	p.Close()
}

func TestPlayerFollowsIntro(t *testing.T) {
	p := New(true, 330, nil)
	p.ready = true
	var got []beep.Streamer
	p.play = func(s beep.Streamer) { got = append(got, s) }

	tun := scene.DefaultTuning().Intro
	intro := scene.NewIntro(tun, nil)
	p.Attach(intro)
	for range 400 {
		intro.Update(1.0 / 60)
	}

	require.True(t, intro.Done())
	assert.Len(t, got, 4)
	assert.Equal(t, 4, p.Played())
}
