package models

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if loader.Radius != 1 {
		t.Errorf("Radius should default to 1, got %v", loader.Radius)
	}
}

// writeQuadGLB writes a single quad (two coplanar triangles) offset from
// the origin.
func writeQuadGLB(t *testing.T) string {
	t.Helper()

	positions := [][3]float32{
		{10, 10, 0}, {12, 10, 0}, {12, 12, 0}, {10, 12, 0},
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	var data []byte
	for _, p := range positions {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}
	posLen := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	doc := &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0", Generator: "truthscene-test"},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: len(positions), Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
			}},
		}},
	}

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLBNormalizesAndOutlines(t *testing.T) {
	mesh, err := LoadGLB(writeQuadGLB(t))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if len(mesh.Faces) != 2 {
		t.Errorf("faces = %d, want 2", len(mesh.Faces))
	}
	// The shared diagonal of the coplanar pair is not an outline edge.
	if mesh.EdgeCount() != 4 {
		t.Errorf("EdgeCount = %d, want 4", mesh.EdgeCount())
	}
	if r := mesh.Radius(); math.Abs(r-1) > 1e-6 {
		t.Errorf("Radius = %v, want 1 after normalization", r)
	}
	if c := mesh.Center(); c.Len() > 1e-6 {
		t.Errorf("Center = %v, want origin", c)
	}
}

func TestLoaderKeepsUnitsWhenRadiusZero(t *testing.T) {
	loader := &GLTFLoader{}
	mesh, err := loader.Load(writeQuadGLB(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.BoundsMin.X != 10 || mesh.BoundsMax.Y != 12 {
		t.Errorf("bounds = %v..%v, want file units", mesh.BoundsMin, mesh.BoundsMax)
	}
}
