package render

import (
	"math"
	"testing"

	"github.com/taigrr/truthscene/pkg/math3d"
	"github.com/taigrr/truthscene/pkg/scene"
)

func TestCameraTargetProjectsToCenter(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.SetPosition(math3d.V3(0, 1.5, 8))
	cam.LookAt(math3d.V3(0, 0.5, -5))

	x, y, _, ok := cam.WorldToScreen(math3d.V3(0, 0.5, -5), 100, 100)
	if !ok {
		t.Fatal("look-at target should be visible")
	}
	if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("target at (%v, %v), want (50, 50)", x, y)
	}

	if _, _, _, ok := cam.WorldToScreen(math3d.V3(0, 1.5, 20), 100, 100); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestCameraProjectKeepsOffscreenPoints(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)

	x, _, w, ok := cam.Project(math3d.V3(100, 0, 0), 100, 100)
	if !ok {
		t.Fatal("point in front of the camera plane should project")
	}
	if x <= 100 {
		t.Errorf("x = %v, want beyond the right edge", x)
	}
	if math.Abs(w-10) > 1e-9 {
		t.Errorf("w = %v, want 10", w)
	}

	if _, _, _, ok := cam.Project(math3d.V3(0, 0, 20), 100, 100); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraViewProjectionTracksChanges(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewProjectionMatrix()

	cam.SetPosition(math3d.V3(0, 0, 20))
	// Reading the view matrix alone must not leave the combined one stale.
	_ = cam.ViewMatrix()
	if cam.ViewProjectionMatrix() == before {
		t.Error("view-projection matrix was not rebuilt after moving")
	}
}

func TestCameraApply(t *testing.T) {
	cam := NewCamera()
	cam.Apply(scene.CameraState{
		Position: math3d.V3(0, 15, 15),
		LookAt:   math3d.V3(0, 0, -5),
		FOV:      90,
	})
	if math.Abs(cam.FOV-math.Pi/2) > 1e-12 {
		t.Errorf("FOV = %v, want pi/2", cam.FOV)
	}
	if cam.Target != math3d.V3(0, 0, -5) {
		t.Errorf("Target = %v", cam.Target)
	}
	if math.Abs(cam.FocalLength(100)-50) > 1e-9 {
		t.Errorf("FocalLength = %v, want 50", cam.FocalLength(100))
	}
}

func TestCameraLookingStraightDown(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.SetPosition(math3d.V3(0, -2, -5))
	cam.LookAt(math3d.V3(0, -10, -5))

	x, y, _, ok := cam.WorldToScreen(math3d.V3(0, -10, -5), 100, 100)
	if !ok || math.IsNaN(x) || math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("target at (%v, %v, %v), want the screen center", x, y, ok)
	}
}
