package scene

import (
	"sync"

	"github.com/taigrr/truthscene/pkg/math3d"
	"go.uber.org/zap"
)

// ScrollSurface is the scrollable page the scene sits behind.
type ScrollSurface interface {
	ScrollY() float64
	ScrollHeight() float64
	ViewportHeight() float64
	ScrollTo(y float64)
}

// Subscriber is implemented by surfaces that push scroll events. Surfaces
// without it are polled once per frame while the tracker is active.
type Subscriber interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Progress maps a scroll offset to [0,1] over the scrollable range.
func Progress(scrollY, scrollHeight, viewportHeight float64) float64 {
	return math3d.Clamp01(scrollY / max(1, scrollHeight-viewportHeight))
}

// ScrollTracker writes scroll progress into State while the page is in
// landing mode and the intro has finished. Outside that window it holds no
// subscription and progress stays frozen.
type ScrollTracker struct {
	state   *State
	surface ScrollSurface
	log     *zap.Logger

	mu          sync.Mutex
	active      bool
	unsubscribe func()
}

// NewScrollTracker creates an inactive tracker. A nil surface is allowed
// and leaves progress untouched.
func NewScrollTracker(state *State, surface ScrollSurface, log *zap.Logger) *ScrollTracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScrollTracker{state: state, surface: surface, log: log}
}

// Active reports whether the tracker is currently attached.
func (t *ScrollTracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Sync attaches or detaches for frame f. Attaching recomputes progress
// immediately so re-entering landing reflects the current scroll position.
func (t *ScrollTracker) Sync(f Frame) {
	want := f.Mode == ModeLanding && !f.Loading && t.surface != nil

	t.mu.Lock()
	was := t.active
	t.active = want
	var unsubscribe func()
	if was && !want {
		unsubscribe, t.unsubscribe = t.unsubscribe, nil
	}
	t.mu.Unlock()

	switch {
	case want && !was:
		if sub, ok := t.surface.(Subscriber); ok {
			u := sub.Subscribe(t.recompute)
			t.mu.Lock()
			t.unsubscribe = u
			t.mu.Unlock()
		}
		t.log.Debug("scroll tracker attached", zap.Stringer("mode", f.Mode))
		t.recompute()
	case !want && was:
		if unsubscribe != nil {
			unsubscribe()
		}
		t.log.Debug("scroll tracker detached", zap.Stringer("mode", f.Mode), zap.Bool("loading", f.Loading))
	case want:
		if _, ok := t.surface.(Subscriber); !ok {
			t.recompute()
		}
	}
}

// Detach drops any subscription regardless of state.
func (t *ScrollTracker) Detach() {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.active = false
	t.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (t *ScrollTracker) recompute() {
	t.mu.Lock()
	active := t.active
	t.mu.Unlock()
	if !active {
		return
	}
	s := t.surface
	t.state.trackProgress(Progress(s.ScrollY(), s.ScrollHeight(), s.ViewportHeight()))
}
