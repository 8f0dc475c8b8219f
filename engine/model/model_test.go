package model

import (
	"math"
	"testing"
)

func TestNewSphereCounts(t *testing.T) {
	tests := []struct {
		name      string
		segments  int
		vertices  int
		triangles int
	}{
		{"segments 2", 2, 5 * 9, 4 * 8 * 2},
		{"segments 32", 32, 35 * 69, 34 * 68 * 2},
		{"clamped to 1", 0, 4 * 7, 3 * 6 * 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewSphere("sphere", 2, tc.segments)
			if m.VertexCount() != tc.vertices {
				t.Fatalf("vertices = %d, want %d", m.VertexCount(), tc.vertices)
			}
			if m.TriangleCount() != tc.triangles {
				t.Fatalf("triangles = %d, want %d", m.TriangleCount(), tc.triangles)
			}
			for _, idx := range m.Indices() {
				if int(idx) >= m.VertexCount() {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}

func TestNewSphereGeometry(t *testing.T) {
	m := NewSphere("sphere", 2, 8)
	if r := m.BoundingRadius(); math.Abs(float64(r-1)) > 1e-5 {
		t.Fatalf("bounding radius = %v, want 1", r)
	}
	for i, p := range m.Positions() {
		n := m.Normals()[i]
		for k := 0; k < 3; k++ {
			if math.Abs(float64(p[k]-n[k])) > 1e-5 {
				t.Fatalf("vertex %d: position %v does not match unit normal %v", i, p, n)
			}
		}
	}
	top := m.Positions()[0]
	if math.Abs(float64(top[1]-1)) > 1e-6 {
		t.Fatalf("first vertex = %v, want north pole", top)
	}
}

func TestNewGround(t *testing.T) {
	m := NewGround("ground", 6, 6, 1)
	if m.VertexCount() != 4 || m.IndexCount() != 6 {
		t.Fatalf("got %d vertices %d indices, want 4 and 6", m.VertexCount(), m.IndexCount())
	}
	for _, p := range m.Positions() {
		if math.Abs(float64(p[0])) != 3 || p[1] != 0 || math.Abs(float64(p[2])) != 3 {
			t.Fatalf("corner %v not on the 6x6 square", p)
		}
	}
	want := float32(math.Sqrt(18))
	if math.Abs(float64(m.BoundingRadius()-want)) > 1e-5 {
		t.Fatalf("bounding radius = %v, want %v", m.BoundingRadius(), want)
	}

	grid := NewGround("grid", 2, 2, 4)
	if grid.VertexCount() != 25 || grid.TriangleCount() != 32 {
		t.Fatalf("grid got %d vertices %d triangles", grid.VertexCount(), grid.TriangleCount())
	}
}

func TestPackedData(t *testing.T) {
	m := NewGround("ground", 2, 2, 1)
	if got := len(m.VertexData()); got != 4*GPUVertexSize {
		t.Fatalf("vertex data = %d bytes, want %d", got, 4*GPUVertexSize)
	}
	idx := m.IndexData()
	if len(idx) != 24 {
		t.Fatalf("index data = %d bytes, want 24", len(idx))
	}
	if idx[0] != byte(m.Indices()[0]) {
		t.Fatalf("index data not little endian")
	}
	var v GPUVertex
	if v.Size() != GPUVertexSize {
		t.Fatalf("GPUVertex size = %d, want %d", v.Size(), GPUVertexSize)
	}
}
