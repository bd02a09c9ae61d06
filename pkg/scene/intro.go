package scene

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// Phase is a step of the intro sequence.
type Phase int

const (
	PhaseDrawing Phase = iota
	PhaseFilling
	PhaseGlowing
	PhaseComplete
)

var phaseNames = [...]string{"drawing", "filling", "glowing", "complete"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// LogoState is the intro logo's presentation, each channel in [0,1] except
// Scale.
type LogoState struct {
	Stroke float64
	Fill   float64
	Glow   float64
	Scale  float64
}

var logoTargets = [...]LogoState{
	PhaseDrawing:  {Stroke: 1, Scale: 1},
	PhaseFilling:  {Stroke: 1, Fill: 1, Scale: 1},
	PhaseGlowing:  {Stroke: 1, Fill: 1, Glow: 1, Scale: 1.05},
	PhaseComplete: {Stroke: 1, Fill: 1, Glow: 0.4, Scale: 1},
}

type springValue struct {
	pos, vel float64
}

func (s *springValue) step(sp harmonica.Spring, target float64) float64 {
	s.pos, s.vel = sp.Update(s.pos, s.vel, target)
	return s.pos
}

// Intro runs the four intro phases strictly in order. It is frame driven:
// each Update advances an explicit phase clock. Once the complete phase has
// elapsed the sequence is finished for good and the completion callback
// has run exactly once.
type Intro struct {
	mu       sync.Mutex
	tuning   IntroTuning
	spring   harmonica.Spring
	started  bool
	finished bool
	phase    Phase
	elapsed  float64

	stroke, fill, glow, scale springValue

	onPhase    []func(Phase)
	onComplete func()
}

// NewIntro creates an intro that has not started yet. onComplete may be
// nil.
func NewIntro(t IntroTuning, onComplete func()) *Intro {
	in := &Intro{tuning: t, onComplete: onComplete}
	in.spring = harmonica.NewSpring(harmonica.FPS(max(t.FrameRateHint, 1)), t.SpringFreq, t.SpringDamp)
	in.scale.pos = 0.9
	return in
}

// OnPhase registers fn to run as each phase begins.
func (in *Intro) OnPhase(fn func(Phase)) {
	in.mu.Lock()
	in.onPhase = append(in.onPhase, fn)
	in.mu.Unlock()
}

func (in *Intro) duration(p Phase) float64 {
	switch p {
	case PhaseDrawing:
		return in.tuning.Drawing
	case PhaseFilling:
		return in.tuning.Filling
	case PhaseGlowing:
		return in.tuning.Glowing
	default:
		return in.tuning.Complete
	}
}

// Start begins the drawing phase. Later calls do nothing.
func (in *Intro) Start() {
	in.mu.Lock()
	if in.started {
		in.mu.Unlock()
		return
	}
	in.started = true
	hooks := in.onPhase
	in.mu.Unlock()

	for _, fn := range hooks {
		fn(PhaseDrawing)
	}
}

// Update advances the sequence by dt seconds, starting it if needed.
func (in *Intro) Update(dt float64) {
	in.Start()

	in.mu.Lock()
	var entered []Phase
	done := false
	if !in.finished {
		in.elapsed += dt
		for in.elapsed >= in.duration(in.phase) {
			in.elapsed -= in.duration(in.phase)
			if in.phase == PhaseComplete {
				in.finished = true
				done = true
				break
			}
			in.phase++
			entered = append(entered, in.phase)
		}
	}

	target := logoTargets[in.phase]
	in.stroke.step(in.spring, target.Stroke)
	in.fill.step(in.spring, target.Fill)
	in.glow.step(in.spring, target.Glow)
	in.scale.step(in.spring, target.Scale)

	hooks := in.onPhase
	onComplete := in.onComplete
	in.mu.Unlock()

	for _, p := range entered {
		for _, fn := range hooks {
			fn(p)
		}
	}
	if done && onComplete != nil {
		onComplete()
	}
}

// Phase returns the current phase.
func (in *Intro) Phase() Phase {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.phase
}

// Done reports whether the complete phase has elapsed.
func (in *Intro) Done() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.finished
}

// Logo returns the eased logo presentation.
func (in *Intro) Logo() LogoState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return LogoState{
		Stroke: in.stroke.pos,
		Fill:   in.fill.pos,
		Glow:   in.glow.pos,
		Scale:  in.scale.pos,
	}
}
