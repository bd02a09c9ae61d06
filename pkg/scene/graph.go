package scene

import (
	"github.com/taigrr/truthscene/pkg/math3d"
	"github.com/taigrr/truthscene/pkg/models"
)

// NodeKind tells the renderer which part of the scene a node belongs to.
type NodeKind int

const (
	NodeCoreLayer NodeKind = iota
	NodeRing
	NodeAccent
)

// Node is one wireframe mesh placed in the world.
type Node struct {
	Name      string
	Kind      NodeKind
	Mesh      *models.Mesh
	Transform math3d.Mat4
	Opacity   float64
	Glow      bool
	Radius    float64 // world-space bounding radius around the node origin
}

// Center returns the node's world-space origin.
func (n Node) Center() math3d.Vec3 {
	return n.Transform.Translation()
}

// IntroView is what the renderer needs to draw the intro overlay.
type IntroView struct {
	Active bool
	Phase  Phase
	Logo   LogoState
}

// Graph is the complete output of one scene frame. Slices are reused by
// the scene, so a Graph is only valid until the second Update after the
// one that returned it.
type Graph struct {
	Frame  Frame
	Camera CameraState
	Nodes  []Node
	Points []ParticleState
	Intro  IntroView
}
