package render

import (
	"testing"

	"github.com/taigrr/truthscene/pkg/math3d"
	"github.com/taigrr/truthscene/pkg/models"
	"github.com/taigrr/truthscene/pkg/scene"
)

func testGraph() scene.Graph {
	box := models.Box(2)
	return scene.Graph{
		Camera: scene.CameraState{Position: math3d.V3(0, 0, 10), FOV: 50},
		Nodes: []scene.Node{
			{Name: "front", Mesh: box, Transform: math3d.Identity(), Opacity: 1, Radius: box.Radius()},
			{Name: "behind", Mesh: box, Transform: math3d.Translate(math3d.V3(0, 0, 30)), Opacity: 1, Radius: box.Radius()},
			{Name: "faded", Mesh: box, Transform: math3d.Identity(), Opacity: 0, Radius: box.Radius()},
		},
	}
}

func countChanged(fb *Framebuffer, bg Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p != bg {
			n++
		}
	}
	return n
}

func TestSceneRendererDrawsAndCulls(t *testing.T) {
	r := NewSceneRenderer(NewFramebuffer(80, 48))
	stats := r.Render(testGraph())

	if stats.Nodes != 1 {
		t.Errorf("Nodes = %d, want 1", stats.Nodes)
	}
	if stats.Culled != 1 {
		t.Errorf("Culled = %d, want 1", stats.Culled)
	}
	if stats.Segments != 12 {
		t.Errorf("Segments = %d, want 12", stats.Segments)
	}
	if countChanged(r.Framebuffer(), r.Palette.Background) == 0 {
		t.Error("nothing was drawn")
	}
	if r.Stats() != stats {
		t.Error("Stats should report the last render")
	}
}

func TestSceneRendererDrawsPoints(t *testing.T) {
	r := NewSceneRenderer(NewFramebuffer(80, 48))
	g := scene.Graph{
		Camera: scene.CameraState{Position: math3d.V3(0, 0, 10), FOV: 50},
		Points: []scene.ParticleState{
			{Position: math3d.V3(0, 0, 0), Size: 0.5, Opacity: 1},
			{Position: math3d.V3(0, 0, 0), Size: 0, Opacity: 1},
			{Position: math3d.V3(0, 0, 40), Size: 0.5, Opacity: 1},
		},
	}
	stats := r.Render(g)
	if stats.Points != 1 {
		t.Errorf("Points = %d, want 1", stats.Points)
	}
	if got := r.Framebuffer().GetPixel(40, 24); got != r.Palette.Accent {
		t.Errorf("center pixel = %v, want accent", got)
	}
}

func TestSceneRendererIntroOverlay(t *testing.T) {
	r := NewSceneRenderer(NewFramebuffer(80, 48))
	g := testGraph()
	g.Intro = scene.IntroView{
		Active: true,
		Phase:  scene.PhaseFilling,
		Logo:   scene.LogoState{Stroke: 1, Fill: 1, Scale: 1},
	}
	r.Render(g)
	if got := r.Framebuffer().GetPixel(40, 24); got != r.Palette.Accent {
		t.Errorf("logo center = %v, want accent fill", got)
	}
}

func TestSceneRendererResize(t *testing.T) {
	r := NewSceneRenderer(NewFramebuffer(10, 10))
	r.SetFramebuffer(NewFramebuffer(40, 20))
	if r.Camera().AspectRatio != 2 {
		t.Errorf("aspect = %v, want 2", r.Camera().AspectRatio)
	}
	r.Render(testGraph())
}
