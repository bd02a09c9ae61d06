package scene

import "github.com/taigrr/truthscene/pkg/math3d"

// CameraState is the camera transform handed to the renderer.
type CameraState struct {
	Position math3d.Vec3
	LookAt   math3d.Vec3
	FOV      float64 // vertical field of view in degrees
}

// CameraRig eases the camera toward a mode-keyed pose.
type CameraRig struct {
	tuning   *CameraTuning
	position math3d.AnimatedVec3
	lookAt   math3d.Vec3
}

// NewCameraRig creates a rig at rest on the landing start pose.
func NewCameraRig(t *CameraTuning) *CameraRig {
	start := math3d.V3(0, t.LandingStart.Y, t.LandingStart.Z)
	return &CameraRig{
		tuning:   t,
		position: math3d.NewAnimatedVec3(start),
		lookAt:   math3d.V3(0, t.LandingStart.LookAtY, t.LookAtZ),
	}
}

// Target returns the pose and damping the rig moves toward for f.
func (c *CameraRig) Target(f Frame) (pose CameraPose, damping float64) {
	t := c.tuning
	switch f.Mode {
	case ModeTransitioning:
		return t.Transitioning, t.TransitioningDamping
	case ModeDashboard:
		return t.Dashboard, t.DashboardDamping
	default:
		p := math3d.Clamp01(f.Progress)
		return CameraPose{
			Y:       math3d.Lerp(t.LandingStart.Y, t.LandingEnd.Y, p),
			Z:       math3d.Lerp(t.LandingStart.Z, t.LandingEnd.Z, p),
			LookAtY: math3d.Lerp(t.LandingStart.LookAtY, t.LandingEnd.LookAtY, p),
		}, t.LandingDamping
	}
}

// Update steps the camera one frame. The look-at point is applied as is;
// only the position is smoothed.
func (c *CameraRig) Update(f Frame) CameraState {
	pose, damping := c.Target(f)
	c.position.Target = math3d.V3(0, pose.Y, pose.Z)
	pos := c.position.Step(damping)
	c.lookAt = math3d.V3(0, pose.LookAtY, c.tuning.LookAtZ)
	return CameraState{Position: pos, LookAt: c.lookAt, FOV: c.tuning.FOV}
}

// Snap places the camera directly on its target for f.
func (c *CameraRig) Snap(f Frame) {
	pose, _ := c.Target(f)
	c.position = math3d.NewAnimatedVec3(math3d.V3(0, pose.Y, pose.Z))
	c.lookAt = math3d.V3(0, pose.LookAtY, c.tuning.LookAtZ)
}
