package models

import (
	"fmt"
	"math"

	"github.com/taigrr/truthscene/pkg/math3d"
)

var phi = (1 + math.Sqrt(5)) / 2

// Shape builds a named primitive at unit size. Names match the geometry
// the scene configuration refers to.
func Shape(name string) (*Mesh, error) {
	switch name {
	case "tetrahedron":
		return Tetrahedron(1), nil
	case "octahedron":
		return Octahedron(1), nil
	case "cube", "box":
		return Box(1), nil
	case "icosahedron":
		return Icosahedron(1, 1), nil
	case "dodecahedron":
		return Dodecahedron(1), nil
	case "sphere":
		return Sphere(1, 12, 8), nil
	default:
		return nil, fmt.Errorf("unknown shape %q", name)
	}
}

// Tetrahedron returns a regular tetrahedron with circumradius r.
func Tetrahedron(r float64) *Mesh {
	return platonic("tetrahedron", r, []math3d.Vec3{
		{X: 1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1},
	})
}

// Octahedron returns a regular octahedron with circumradius r.
func Octahedron(r float64) *Mesh {
	return platonic("octahedron", r, []math3d.Vec3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	})
}

// Box returns a cube with edge length size.
func Box(size float64) *Mesh {
	var verts []math3d.Vec3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				verts = append(verts, math3d.V3(x, y, z))
			}
		}
	}
	return platonic("box", size*math.Sqrt(3)/2, verts)
}

// Icosahedron returns an icosahedron with circumradius r whose faces are
// split detail times and pushed back onto the sphere.
func Icosahedron(r float64, detail int) *Mesh {
	var verts []math3d.Vec3
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-phi, phi} {
			verts = append(verts, math3d.V3(0, a, b), math3d.V3(a, b, 0), math3d.V3(b, 0, a))
		}
	}
	m := platonic("icosahedron", r, verts)
	if detail <= 0 {
		return m
	}

	m.Faces = triangles(m)
	for range detail {
		subdivide(m, r)
	}
	m.Edges = nil
	m.ensureEdges()
	m.CalculateBounds()
	return m
}

// Dodecahedron returns a regular dodecahedron with circumradius r.
func Dodecahedron(r float64) *Mesh {
	var verts []math3d.Vec3
	inv := 1 / phi
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-1, 1} {
			verts = append(verts,
				math3d.V3(0, a*inv, b*phi),
				math3d.V3(a*inv, b*phi, 0),
				math3d.V3(a*phi, 0, b*inv),
			)
			for _, c := range []float64{-1, 1} {
				verts = append(verts, math3d.V3(a, b, c))
			}
		}
	}
	return platonic("dodecahedron", r, verts)
}

// Sphere returns a latitude/longitude sphere.
func Sphere(r float64, segments, rings int) *Mesh {
	return grid("sphere", rings+1, segments, false, true, func(i, j int) math3d.Vec3 {
		theta := math.Pi * float64(i) / float64(rings)
		phi := 2 * math.Pi * float64(j) / float64(segments)
		return math3d.V3(
			r*math.Sin(theta)*math.Cos(phi),
			r*math.Cos(theta),
			r*math.Sin(theta)*math.Sin(phi),
		)
	})
}

// Torus returns a ring of radius radius in the XY plane.
func Torus(radius, tube float64, radial, tubular int) *Mesh {
	return grid("torus", tubular, radial, true, true, func(i, j int) math3d.Vec3 {
		u := 2 * math.Pi * float64(i) / float64(tubular)
		v := 2 * math.Pi * float64(j) / float64(radial)
		return math3d.V3(
			(radius+tube*math.Cos(v))*math.Cos(u),
			(radius+tube*math.Cos(v))*math.Sin(u),
			tube*math.Sin(v),
		)
	})
}

// TorusKnot returns a (p,q) torus knot tube.
func TorusKnot(radius, tube float64, tubular, radial, p, q int) *Mesh {
	curve := func(u float64) math3d.Vec3 {
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		return math3d.V3(
			radius*(2+cs)*0.5*math.Cos(u),
			radius*(2+cs)*0.5*math.Sin(u),
			radius*math.Sin(quOverP)*0.5,
		)
	}

	return grid("torus-knot", tubular, radial, true, true, func(i, j int) math3d.Vec3 {
		u := float64(i) / float64(tubular) * float64(p) * 2 * math.Pi
		p1 := curve(u)
		p2 := curve(u + 0.01)
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n).Normalize()
		n = b.Cross(t).Normalize()

		v := 2 * math.Pi * float64(j) / float64(radial)
		cx := -tube * math.Cos(v)
		cy := tube * math.Sin(v)
		return p1.Add(n.Scale(cx)).Add(b.Scale(cy))
	})
}

// Cylinder returns an open tube of radius r and height h along Y.
func Cylinder(r, h float64, segments int) *Mesh {
	return grid("cylinder", 2, segments, false, true, func(i, j int) math3d.Vec3 {
		a := 2 * math.Pi * float64(j) / float64(segments)
		return math3d.V3(r*math.Cos(a), h*(float64(i)-0.5), r*math.Sin(a))
	})
}

// platonic scales verts onto radius r and joins every pair at the minimum
// vertex distance, which for a regular solid is exactly its edge set.
func platonic(name string, r float64, verts []math3d.Vec3) *Mesh {
	m := NewMesh(name)
	for _, v := range verts {
		m.AddVertex(v.Normalize().Scale(r))
	}

	shortest := math.Inf(1)
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			shortest = math.Min(shortest, m.Vertices[i].Distance(m.Vertices[j]))
		}
	}
	limit := shortest * (1 + 1e-6)
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			if m.Vertices[i].Distance(m.Vertices[j]) <= limit {
				m.AddEdge(i, j)
			}
		}
	}

	m.CalculateBounds()
	return m
}

// triangles recovers the triangular faces of a solid from its edge set.
func triangles(m *Mesh) []Face {
	adj := make(map[[2]int]bool, len(m.Edges)*2)
	for _, e := range m.Edges {
		adj[[2]int{e[0], e[1]}] = true
		adj[[2]int{e[1], e[0]}] = true
	}

	var faces []Face
	n := len(m.Vertices)
	for a := range n {
		for b := a + 1; b < n; b++ {
			if !adj[[2]int{a, b}] {
				continue
			}
			for c := b + 1; c < n; c++ {
				if adj[[2]int{a, c}] && adj[[2]int{b, c}] {
					faces = append(faces, Face{a, b, c})
				}
			}
		}
	}
	return faces
}

// subdivide splits every face into four and projects new vertices onto
// the sphere of radius r.
func subdivide(m *Mesh, r float64) {
	mid := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		if a > b {
			a, b = b, a
		}
		if i, ok := mid[[2]int{a, b}]; ok {
			return i
		}
		v := m.Vertices[a].Add(m.Vertices[b]).Normalize().Scale(r)
		i := m.AddVertex(v)
		mid[[2]int{a, b}] = i
		return i
	}

	faces := make([]Face, 0, len(m.Faces)*4)
	for _, f := range m.Faces {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		faces = append(faces,
			Face{f[0], ab, ca},
			Face{ab, f[1], bc},
			Face{ca, bc, f[2]},
			Face{ab, bc, ca},
		)
	}
	m.Faces = faces
}

// grid builds a rows x cols lattice of vertices from at and joins each
// vertex to its neighbours, wrapping either axis when asked.
func grid(name string, rows, cols int, wrapRows, wrapCols bool, at func(i, j int) math3d.Vec3) *Mesh {
	m := NewMesh(name)
	for i := range rows {
		for j := range cols {
			m.AddVertex(at(i, j))
		}
	}

	idx := func(i, j int) int { return i*cols + j }
	for i := range rows {
		for j := range cols {
			switch {
			case j+1 < cols:
				m.AddEdge(idx(i, j), idx(i, j+1))
			case wrapCols && cols > 2:
				m.AddEdge(idx(i, j), idx(i, 0))
			}
			switch {
			case i+1 < rows:
				m.AddEdge(idx(i, j), idx(i+1, j))
			case wrapRows && rows > 2:
				m.AddEdge(idx(i, j), idx(0, j))
			}
		}
	}

	m.CalculateBounds()
	return m
}
