package render

import (
	"image/color"
	"math"

	"github.com/taigrr/truthscene/pkg/math3d"
	"github.com/taigrr/truthscene/pkg/scene"
)

// Stats counts what the last Render call drew.
type Stats struct {
	Nodes    int
	Culled   int
	Segments int
	Points   int
}

// SceneRenderer draws a scene.Graph as wireframes and points.
type SceneRenderer struct {
	camera  *Camera
	fb      *Framebuffer
	Palette Palette
	stats   Stats
}

// NewSceneRenderer creates a renderer drawing into fb.
func NewSceneRenderer(fb *Framebuffer) *SceneRenderer {
	r := &SceneRenderer{camera: NewCamera(), Palette: DefaultPalette}
	r.SetFramebuffer(fb)
	return r
}

// SetFramebuffer swaps the render target, e.g. after a terminal resize.
func (r *SceneRenderer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
	if fb.Height > 0 {
		r.camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	}
}

// Framebuffer returns the render target.
func (r *SceneRenderer) Framebuffer() *Framebuffer { return r.fb }

// Camera returns the renderer's camera.
func (r *SceneRenderer) Camera() *Camera { return r.camera }

// Stats returns the counters from the last Render call.
func (r *SceneRenderer) Stats() Stats { return r.stats }

// Render clears the framebuffer and draws g.
func (r *SceneRenderer) Render(g scene.Graph) Stats {
	r.stats = Stats{}
	r.fb.Clear(r.Palette.Background)
	r.camera.Apply(g.Camera)
	frustum := r.camera.Frustum()

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Mesh == nil || n.Opacity <= 0 {
			continue
		}
		if !frustum.IntersectsSphere(n.Center(), n.Radius) {
			r.stats.Culled++
			continue
		}
		r.drawNode(frustum, n)
		r.stats.Nodes++
	}

	focal := r.camera.FocalLength(r.fb.Height)
	for _, p := range g.Points {
		if p.Size <= 0 || !frustum.IntersectsSphere(p.Position, p.Size) {
			continue
		}
		x, y, w, ok := r.camera.Project(p.Position, r.fb.Width, r.fb.Height)
		if !ok {
			continue
		}
		radius := p.Size * focal / w
		if radius < 0.5 {
			// Sub-pixel points dim instead of vanishing.
			r.fb.Blend(int(x), int(y), r.Palette.Accent, p.Opacity*radius*2)
		} else {
			r.fb.FillDisc(x, y, radius, r.Palette.Accent, p.Opacity, false)
		}
		r.stats.Points++
	}

	if g.Intro.Active {
		r.drawIntro(g.Intro)
	}
	return r.stats
}

func (r *SceneRenderer) nodeColor(n *scene.Node) color.RGBA {
	switch {
	case n.Glow:
		return r.Palette.Glow
	case n.Kind == scene.NodeAccent && n.Name == string(scene.AccentProblem):
		return r.Palette.Shadow
	default:
		return r.Palette.Accent
	}
}

func (r *SceneRenderer) drawNode(frustum Frustum, n *scene.Node) {
	c := r.nodeColor(n)
	m := n.Mesh
	for i := range m.EdgeCount() {
		a, b := m.Segment(i)
		a, b, ok := frustum.ClipSegment(n.Transform.MulVec3(a), n.Transform.MulVec3(b))
		if !ok {
			continue
		}
		x0, y0, _, ok0 := r.camera.Project(a, r.fb.Width, r.fb.Height)
		x1, y1, _, ok1 := r.camera.Project(b, r.fb.Width, r.fb.Height)
		if !ok0 || !ok1 {
			continue
		}
		r.fb.BlendLine(int(x0), int(y0), int(x1), int(y1), c, n.Opacity)
		r.stats.Segments++
	}
}

// drawIntro veils the scene and draws the logo: a hexagon whose outline is
// traced by Stroke, filled by Fill and haloed by Glow.
func (r *SceneRenderer) drawIntro(v scene.IntroView) {
	fb := r.fb
	fb.Fade(r.Palette.Background, 0.85)

	cx, cy := float64(fb.Width)/2, float64(fb.Height)/2
	radius := float64(min(fb.Width, fb.Height)) * 0.2 * v.Logo.Scale
	if radius <= 0 {
		return
	}

	fb.FillDisc(cx, cy, radius*1.4, r.Palette.Glow, math3d.Clamp01(v.Logo.Glow)*0.5, true)
	fb.FillDisc(cx, cy, radius*0.8, r.Palette.Accent, math3d.Clamp01(v.Logo.Fill), false)

	vertex := func(i int) (float64, float64) {
		a := math.Pi/2 + float64(i)*math.Pi/3
		return cx + radius*math.Cos(a), cy - radius*math.Sin(a)
	}
	traced := math3d.Clamp01(v.Logo.Stroke) * 6
	for i := 0; float64(i) < traced; i++ {
		x0, y0 := vertex(i)
		x1, y1 := vertex(i + 1)
		if part := traced - float64(i); part < 1 {
			x1, y1 = math3d.Lerp(x0, x1, part), math3d.Lerp(y0, y1, part)
		}
		fb.BlendLine(int(x0), int(y0), int(x1), int(y1), r.Palette.Glow, 1)
	}
}
