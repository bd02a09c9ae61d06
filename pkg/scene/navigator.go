package scene

import (
	"sync"

	"go.uber.org/zap"
)

// Navigator is the page controller: the only writer of the scene mode.
type Navigator struct {
	state   *State
	surface ScrollSurface
	log     *zap.Logger

	mu      sync.Mutex
	hold    float64
	pending bool
	elapsed float64
}

// NewNavigator creates a navigator that holds the transitioning mode for
// hold seconds before settling on the dashboard.
func NewNavigator(state *State, surface ScrollSurface, hold float64, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{state: state, surface: surface, hold: hold, log: log}
}

// EnterDashboard starts the dive into the dashboard. It reports false when
// the scene is not in landing mode.
func (n *Navigator) EnterDashboard() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending || n.state.Mode() != ModeLanding {
		return false
	}
	n.pending = true
	n.elapsed = 0
	n.state.SetMode(ModeTransitioning)
	n.log.Info("entering dashboard", zap.Float64("hold", n.hold))
	return true
}

// EnterLanding returns to the top of the landing page, cancelling any
// transition in flight.
func (n *Navigator) EnterLanding() {
	n.mu.Lock()
	n.pending = false
	n.mu.Unlock()

	n.state.ResetToLanding()
	if n.surface != nil {
		n.surface.ScrollTo(0)
	}
	n.log.Info("entering landing")
}

// inFlight reports whether a dive is in flight.
func (n *Navigator) inFlight() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

// Update advances the transition hold by dt seconds.
func (n *Navigator) Update(dt float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.pending {
		return
	}
	n.elapsed += dt
	if n.elapsed >= n.hold {
		n.pending = false
		n.state.SetMode(ModeDashboard)
	}
}

func (n *Navigator) retune(hold float64) {
	n.mu.Lock()
	n.hold = hold
	n.mu.Unlock()
}
