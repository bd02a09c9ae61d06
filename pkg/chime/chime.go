// Package chime plays short tones as the intro sequence moves between
// phases.
package chime

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/taigrr/truthscene/pkg/scene"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Cue describes the tone played when a phase begins.
type Cue struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // log2 gain, 0 is unchanged
}

// CueFor returns the cue for phase p over a base tone. The phases climb a
// major triad and land on the octave.
func CueFor(p scene.Phase, tone float64) Cue {
	switch p {
	case scene.PhaseDrawing:
		return Cue{Freq: tone, Duration: 90 * time.Millisecond, Volume: -2}
	case scene.PhaseFilling:
		return Cue{Freq: tone * 5 / 4, Duration: 90 * time.Millisecond, Volume: -2}
	case scene.PhaseGlowing:
		return Cue{Freq: tone * 3 / 2, Duration: 120 * time.Millisecond, Volume: -1.5}
	default:
		return Cue{Freq: tone * 2, Duration: 250 * time.Millisecond, Volume: -1}
	}
}

// Player sends cues to the speaker. A disabled or uninitialized Player
// does nothing.
type Player struct {
	mu      sync.Mutex
	tone    float64
	enabled bool
	ready   bool
	log     *zap.Logger
	play    func(beep.Streamer)
	played  int
}

// New creates a player. Call Init before any sound is heard.
func New(enabled bool, tone float64, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		tone:    tone,
		enabled: enabled,
		log:     log,
		play:    func(s beep.Streamer) { speaker.Play(s) },
	}
}

// Init opens the audio device. A failure leaves the player silent; the
// scene runs fine without sound.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		return fmt.Errorf("initializing speaker: %w", err)
	}
	p.ready = true
	return nil
}

// Attach plays a cue whenever intro enters a phase.
func (p *Player) Attach(intro *scene.Intro) {
	intro.OnPhase(p.Play)
}

// Play queues the cue for phase ph.
func (p *Player) Play(ph scene.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || !p.ready {
		return
	}
	s, err := Stream(CueFor(ph, p.tone))
	if err != nil {
		p.log.Warn("skipping chime", zap.Stringer("phase", ph), zap.Error(err))
		return
	}
	p.play(s)
	p.played++
}

// Played returns how many cues have been queued.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		speaker.Clear()
	}
}

// Stream renders c as a finite streamer at the player's sample rate.
func Stream(c Cue) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, c.Freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.1fHz: %w", c.Freq, err)
	}
	return beep.Take(sampleRate.N(c.Duration), &effects.Volume{
		Streamer: sine,
		Base:     2,
		Volume:   c.Volume,
	}), nil
}
