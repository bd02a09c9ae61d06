package models

import (
	"math"
	"testing"
)

func TestPlatonicSolidCounts(t *testing.T) {
	tests := []struct {
		name            string
		mesh            *Mesh
		vertices, edges int
	}{
		{"tetrahedron", Tetrahedron(1), 4, 6},
		{"octahedron", Octahedron(1), 6, 12},
		{"box", Box(1), 8, 12},
		{"icosahedron", Icosahedron(1, 0), 12, 30},
		{"dodecahedron", Dodecahedron(1), 20, 30},
		{"icosahedron detail 1", Icosahedron(1, 1), 42, 120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.mesh.VertexCount(); got != tc.vertices {
				t.Errorf("VertexCount = %d, want %d", got, tc.vertices)
			}
			if got := tc.mesh.EdgeCount(); got != tc.edges {
				t.Errorf("EdgeCount = %d, want %d", got, tc.edges)
			}
		})
	}
}

func TestPrimitivesSitOnRadius(t *testing.T) {
	for _, m := range []*Mesh{Octahedron(2), Icosahedron(2, 1), Dodecahedron(2)} {
		for i, v := range m.Vertices {
			if math.Abs(v.Len()-2) > 1e-9 {
				t.Fatalf("%s vertex %d at radius %v, want 2", m.Name, i, v.Len())
			}
		}
	}
}

func TestBoxEdgeLength(t *testing.T) {
	m := Box(0.5)
	for i := range m.EdgeCount() {
		a, b := m.Segment(i)
		if math.Abs(a.Distance(b)-0.5) > 1e-9 {
			t.Fatalf("edge %d length %v, want 0.5", i, a.Distance(b))
		}
	}
}

func TestTorusRadius(t *testing.T) {
	m := Torus(1.6, 0.015, 3, 48)
	if got := m.VertexCount(); got != 3*48 {
		t.Errorf("VertexCount = %d, want %d", got, 3*48)
	}
	if r := m.Radius(); math.Abs(r-1.615) > 1e-9 {
		t.Errorf("Radius = %v, want 1.615", r)
	}
}

func TestShapeLookup(t *testing.T) {
	for _, name := range []string{"tetrahedron", "octahedron", "cube", "icosahedron", "dodecahedron", "sphere"} {
		if _, err := Shape(name); err != nil {
			t.Errorf("Shape(%q): %v", name, err)
		}
	}
	if _, err := Shape("teapot"); err == nil {
		t.Error("expected error for unknown shape")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := Octahedron(1)
	c := m.Clone()
	c.Vertices[0].X = 42
	c.Edges[0] = Edge{5, 5}
	if m.Vertices[0].X == 42 || m.Edges[0] == (Edge{5, 5}) {
		t.Error("Clone shares storage with the original")
	}
}
