package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorEnterDashboard(t *testing.T) {
	state := NewState()
	nav := NewNavigator(state, nil, 1.2, nil)

	assert.True(t, nav.EnterDashboard())
	assert.Equal(t, ModeTransitioning, state.Mode())
	assert.True(t, nav.inFlight())
	assert.False(t, nav.EnterDashboard(), "already transitioning")

	nav.Update(0.5)
	assert.Equal(t, ModeTransitioning, state.Mode())
	nav.Update(0.8)
	assert.Equal(t, ModeDashboard, state.Mode())
	assert.False(t, nav.inFlight())

	assert.False(t, nav.EnterDashboard(), "already on the dashboard")
	assert.Equal(t, ModeDashboard, state.Mode())
}

func TestNavigatorEnterLanding(t *testing.T) {
	state := NewState()
	state.SetProgress(0.8)
	surface := &polledSurface{y: 1600, height: 3000, viewport: 1000}
	nav := NewNavigator(state, surface, 1.2, nil)

	nav.EnterDashboard()
	nav.EnterLanding()
	assert.Equal(t, ModeLanding, state.Mode())
	assert.Zero(t, state.Progress())
	assert.Equal(t, []float64{0}, surface.scrolledTo)

	// The cancelled hold must not flip the mode later.
	nav.Update(5)
	assert.Equal(t, ModeLanding, state.Mode())
}
