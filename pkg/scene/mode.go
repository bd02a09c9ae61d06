// Package scene drives the animated background: a shared mode record, the
// per-frame controllers that read it, and the graph they produce for a
// renderer.
package scene

import (
	"fmt"
	"sync"

	"github.com/taigrr/truthscene/pkg/math3d"
)

// Mode is the top-level presentation context.
type Mode int

const (
	ModeLanding Mode = iota
	ModeTransitioning
	ModeDashboard
)

var modeNames = [...]string{"landing", "transitioning", "dashboard"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name back into a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeLanding, fmt.Errorf("unknown scene mode %q", s)
}

// Frame is the consistent view of State every controller sees for one tick.
type Frame struct {
	Mode     Mode
	Progress float64 // scroll progress in [0,1]
	Loading  bool
	Time     float64 // seconds since the scene mounted
	Delta    float64 // seconds since the previous frame
}

// State is the shared mode record. The page controller owns mode and
// loading, the scroll tracker owns progress. Any goroutine may read.
type State struct {
	mu        sync.RWMutex
	mode      Mode
	progress  float64
	loading   bool
	listeners []func(from, to Mode)
}

// NewState returns a landing-mode state that is still loading.
func NewState() *State {
	return &State{mode: ModeLanding, loading: true}
}

// Mode returns the current presentation mode.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the presentation mode and notifies listeners when it
// actually changed.
func (s *State) SetMode(m Mode) {
	s.mu.Lock()
	from := s.mode
	s.mode = m
	listeners := s.listeners
	s.mu.Unlock()

	if from == m {
		return
	}
	for _, fn := range listeners {
		fn(from, m)
	}
}

// Progress returns the scroll progress.
func (s *State) Progress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// SetProgress stores p clamped to [0,1].
func (s *State) SetProgress(p float64) {
	s.mu.Lock()
	s.progress = math3d.Clamp01(p)
	s.mu.Unlock()
}

// Loading reports whether the intro is still running.
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading sets the loading flag.
func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// OnModeChange registers fn to run after every mode change. It runs on the
// writer's goroutine, outside the lock.
func (s *State) OnModeChange(fn func(from, to Mode)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Snapshot reads every field under one lock. Time and Delta are left for
// the frame loop to fill in.
func (s *State) Snapshot() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Frame{Mode: s.mode, Progress: s.progress, Loading: s.loading}
}

// ResetToLanding returns to landing mode with progress at the top of the
// page. Callers that own a scroll surface also scroll it to the top.
func (s *State) ResetToLanding() {
	s.mu.Lock()
	s.progress = 0
	s.mu.Unlock()
	s.SetMode(ModeLanding)
}

// trackProgress stores p only while the scroll tracker may write: landing
// mode with loading finished. The check and the write share one lock.
func (s *State) trackProgress(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeLanding || s.loading {
		return false
	}
	s.progress = math3d.Clamp01(p)
	return true
}
