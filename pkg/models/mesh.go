// Package models provides the wireframe geometry the scene is built from.
package models

import (
	"math"

	"github.com/taigrr/truthscene/pkg/math3d"
)

// Edge joins two vertex indices.
type Edge [2]int

// Face is a triangle by vertex index.
type Face [3]int

// Mesh is a set of vertices drawn as line segments. Faces are optional;
// when Edges is empty the edges are derived from Faces.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face
	Edges    []Edge

	// Bounding box (calculated on build)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddEdge appends an edge between a and b.
func (m *Mesh) AddEdge(a, b int) {
	m.Edges = append(m.Edges, Edge{a, b})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the distance from the origin to the farthest vertex.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = math.Max(r, v.Len())
	}
	return r
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// EdgeCount returns the number of edges after derivation.
func (m *Mesh) EdgeCount() int {
	m.ensureEdges()
	return len(m.Edges)
}

// Segment returns the endpoints of edge i.
func (m *Mesh) Segment(i int) (a, b math3d.Vec3) {
	m.ensureEdges()
	e := m.Edges[i]
	return m.Vertices[e[0]], m.Vertices[e[1]]
}

// ensureEdges derives unique edges from faces, skipping the diagonal shared
// by two coplanar triangles so quads and pentagons outline cleanly.
func (m *Mesh) ensureEdges() {
	if len(m.Edges) > 0 || len(m.Faces) == 0 {
		return
	}

	type key struct{ a, b int }
	owners := make(map[key][]int)
	order := make([]key, 0, len(m.Faces)*3)
	for fi, f := range m.Faces {
		for j := range 3 {
			a, b := f[j], f[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			k := key{a, b}
			if _, seen := owners[k]; !seen {
				order = append(order, k)
			}
			owners[k] = append(owners[k], fi)
		}
	}

	for _, k := range order {
		faces := owners[k]
		if len(faces) == 2 && m.faceNormal(faces[0]).Dot(m.faceNormal(faces[1])) > 1-1e-6 {
			continue
		}
		m.Edges = append(m.Edges, Edge{k.a, k.b})
	}
}

func (m *Mesh) faceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	v0, v1, v2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// Transform applies mat to every vertex.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it so its farthest
// vertex sits at radius.
func (m *Mesh) Normalize(radius float64) {
	m.CalculateBounds()
	m.Transform(math3d.Translate(m.Center().Scale(-1)))
	if r := m.Radius(); r > 0 {
		m.Transform(math3d.ScaleUniform(radius / r))
	}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Edges:     make([]Edge, len(m.Edges)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Edges, m.Edges)
	return clone
}
