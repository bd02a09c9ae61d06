package scene

import (
	"fmt"
	"math"
	"sync"

	"github.com/taigrr/truthscene/pkg/models"
	"go.uber.org/zap"
)

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the scene's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scene) { s.log = log }
}

// WithSurface attaches the scrollable page. Without one the scene runs
// headless and scroll progress only changes through State.
func WithSurface(surface ScrollSurface) Option {
	return func(s *Scene) { s.surface = surface }
}

// WithLayerMesh replaces the geometry of the named core layer.
func WithLayerMesh(layer string, m *models.Mesh) Option {
	return func(s *Scene) { s.overrides[layer] = m }
}

// Locker is implemented by surfaces that can suppress scroll input.
type Locker interface {
	SetLocked(locked bool)
}

// Scene owns every controller and advances them together, one snapshot
// of State per frame.
type Scene struct {
	state   *State
	surface ScrollSurface
	log     *zap.Logger
	tuning  Tuning

	mu      sync.Mutex
	pending *Tuning

	nav       *Navigator
	tracker   *ScrollTracker
	intro     *Intro
	camera    *CameraRig
	core      *TruthCore
	particles *ParticleField
	accents   *AccentController

	overrides   map[string]*models.Mesh
	layerMeshes []*models.Mesh
	ringMeshes  []*models.Mesh
	partMeshes  map[string]*models.Mesh

	clearing bool
	clearIn  float64
	time     float64
	snapped  bool
	frames   uint64
	skipped  uint64
	graphs   [2]Graph
	cur      int
}

// New builds a scene over state. If state is still loading the intro runs
// first and scroll input stays locked until it clears.
func New(state *State, tuning Tuning, opts ...Option) (*Scene, error) {
	s := &Scene{
		state:     state,
		tuning:    tuning,
		log:       zap.NewNop(),
		overrides: make(map[string]*models.Mesh),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	var err error
	if s.layerMeshes, err = s.buildLayers(tuning.Core.Layers); err != nil {
		return nil, err
	}
	s.ringMeshes = buildRings(tuning.Core.RingRadii)
	s.partMeshes = map[string]*models.Mesh{
		MeshCube:      models.Box(1),
		MeshTetra:     models.Tetrahedron(1),
		MeshNode:      models.Sphere(1, 12, 8),
		MeshConnector: models.Cylinder(0.02, 1.8, 6),
		MeshKnot:      models.TorusKnot(1, 0.3, 96, 6, 2, 3),
	}

	if s.accents, err = NewAccentController(&s.tuning.Accents); err != nil {
		return nil, fmt.Errorf("building accents: %w", err)
	}
	s.camera = NewCameraRig(&s.tuning.Camera)
	s.core = NewTruthCore(&s.tuning.Core)
	s.particles = NewParticleField(&s.tuning.Particles)
	s.nav = NewNavigator(state, s.surface, tuning.Navigation.TransitionHold, s.log)
	s.tracker = NewScrollTracker(state, s.surface, s.log)
	s.intro = NewIntro(tuning.Intro, s.introComplete)
	state.OnModeChange(func(from, to Mode) {
		s.log.Info("mode changed", zap.Stringer("from", from), zap.Stringer("to", to))
	})

	if state.Loading() {
		s.lock(true)
	}
	return s, nil
}

func (s *Scene) buildLayers(layers []LayerTuning) ([]*models.Mesh, error) {
	meshes := make([]*models.Mesh, len(layers))
	for i, l := range layers {
		if m, ok := s.overrides[l.Name]; ok {
			meshes[i] = m
			continue
		}
		m, err := models.Shape(l.Shape)
		if err != nil {
			return nil, fmt.Errorf("core layer %q: %w", l.Name, err)
		}
		meshes[i] = m
	}
	return meshes, nil
}

func buildRings(radii []float64) []*models.Mesh {
	rings := make([]*models.Mesh, len(radii))
	for i, r := range radii {
		rings[i] = models.Torus(r, 0.015, 3, 48)
	}
	return rings
}

func (s *Scene) lock(locked bool) {
	if l, ok := s.surface.(Locker); ok {
		l.SetLocked(locked)
	}
}

func (s *Scene) introComplete() {
	s.clearing = true
	s.clearIn = s.tuning.Intro.ClearDelay
	s.log.Info("intro complete", zap.Float64("clear_delay", s.clearIn))
}

// State returns the shared mode record.
func (s *Scene) State() *State { return s.state }

// Navigator returns the page controller.
func (s *Scene) Navigator() *Navigator { return s.nav }

// Intro returns the intro sequencer.
func (s *Scene) Intro() *Intro { return s.intro }

// Tracker returns the scroll tracker.
func (s *Scene) Tracker() *ScrollTracker { return s.tracker }

// Tuning returns the tuning currently in effect.
func (s *Scene) Tuning() Tuning { return s.tuning }

// Frames returns the number of frames built and the number skipped after a
// controller failure.
func (s *Scene) Frames() (built, skipped uint64) { return s.frames, s.skipped }

// Graph returns the most recent frame's output.
func (s *Scene) Graph() Graph { return s.graphs[s.cur] }

// SetTuning queues t to take effect at the start of the next frame. It is
// safe to call from any goroutine.
func (s *Scene) SetTuning(t Tuning) {
	s.mu.Lock()
	s.pending = &t
	s.mu.Unlock()
}

func (s *Scene) applyPending() {
	s.mu.Lock()
	t := s.pending
	s.pending = nil
	s.mu.Unlock()
	if t == nil {
		return
	}
	if err := s.applyTuning(*t); err != nil {
		s.log.Warn("tuning rejected", zap.Error(err))
		return
	}
	s.log.Info("tuning applied")
}

func (s *Scene) applyTuning(t Tuning) error {
	layers, err := s.buildLayers(t.Core.Layers)
	if err != nil {
		return err
	}
	for i, a := range t.Accents.Accents {
		if !a.Kind.Valid() {
			return fmt.Errorf("accent %d: unknown kind %q", i, a.Kind)
		}
	}
	if t.Particles.PoolSize != s.particles.Len() {
		s.log.Warn("particle pool size is fixed for the session",
			zap.Int("pool", s.particles.Len()), zap.Int("requested", t.Particles.PoolSize))
	}

	// Controllers hold pointers into s.tuning, so assigning it retunes them.
	s.tuning = t
	s.layerMeshes = layers
	s.ringMeshes = buildRings(t.Core.RingRadii)
	s.core.retune(&s.tuning.Core)
	if err := s.accents.retune(&s.tuning.Accents); err != nil {
		return err
	}
	s.nav.retune(t.Navigation.TransitionHold)
	return nil
}

// Update advances the scene by dt seconds and returns the new frame. If a
// controller panics the frame is skipped and the previous graph returned.
func (s *Scene) Update(dt float64) Graph {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	s.applyPending()
	s.nav.Update(dt)

	if s.state.Loading() {
		s.intro.Update(dt)
	}
	if s.clearing {
		s.clearIn -= dt
		if s.clearIn <= 0 {
			s.clearing = false
			s.state.SetLoading(false)
			s.lock(false)
			s.log.Info("loading cleared")
		}
	}
	s.time += dt

	s.tracker.Sync(s.state.Snapshot())
	f := s.state.Snapshot()
	f.Time = s.time
	f.Delta = dt

	next, err := s.build(f)
	if err != nil {
		s.skipped++
		s.log.Error("frame skipped", zap.Error(err), zap.Uint64("frame", s.frames))
		return s.graphs[s.cur]
	}
	s.cur = next
	s.frames++
	return s.graphs[s.cur]
}

func (s *Scene) build(f Frame) (next int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scene update panicked: %v", r)
		}
	}()

	if !s.snapped {
		s.camera.Snap(f)
		s.core.Snap(f)
		s.particles.Snap(f)
		s.accents.Snap(f)
		s.snapped = true
	}

	next = 1 - s.cur
	g := &s.graphs[next]
	g.Frame = f
	g.Camera = s.camera.Update(f)
	g.Nodes = g.Nodes[:0]

	core := s.core.Update(f)
	if core.Visible {
		base := core.Transform()
		for i, l := range core.Layers {
			m := s.layerMeshes[i]
			g.Nodes = append(g.Nodes, Node{
				Name:      l.Name,
				Kind:      NodeCoreLayer,
				Mesh:      m,
				Transform: base.Mul(l.Transform()),
				Opacity:   core.Opacity,
				Glow:      i == 0,
				Radius:    m.Radius() * l.Scale * core.Scale,
			})
		}
		for i, m := range s.ringMeshes {
			g.Nodes = append(g.Nodes, Node{
				Name:      "ring",
				Kind:      NodeRing,
				Mesh:      m,
				Transform: base.Mul(ringTransform(i)),
				Opacity:   core.Opacity * (1 - 0.2*float64(i)),
				Radius:    m.Radius() * core.Scale,
			})
		}
	}

	for _, a := range s.accents.Update(f) {
		if !a.Visible {
			continue
		}
		group := a.Transform()
		for _, p := range a.Parts {
			m := s.partMeshes[p.Mesh]
			g.Nodes = append(g.Nodes, Node{
				Name:      string(a.Kind),
				Kind:      NodeAccent,
				Mesh:      m,
				Transform: group.Mul(p.Transform()),
				Opacity:   a.Visibility * p.Opacity,
				Glow:      p.Glow,
				Radius:    m.Radius() * p.Scale * a.Scale,
			})
		}
	}

	g.Points = append(g.Points[:0], s.particles.Update(f)...)
	g.Intro = IntroView{Active: f.Loading, Phase: s.intro.Phase(), Logo: s.intro.Logo()}
	return next, nil
}

// Close releases the scroll subscription.
func (s *Scene) Close() {
	s.tracker.Detach()
}
