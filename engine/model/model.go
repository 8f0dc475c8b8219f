package model

import (
	"encoding/binary"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	positions      [][3]float32
	normals        [][3]float32
	uvs            [][2]float32
	indices        []uint32
	boundingRadius float32
}

// Model defines the interface for an indexed triangle mesh in model space.
// A Model is immutable once built and may be shared by any number of game objects.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Positions retrieves the model-space vertex positions.
	//
	// Returns:
	//   - [][3]float32: one position per vertex
	Positions() [][3]float32

	// Normals retrieves the unit vertex normals, parallel to Positions.
	//
	// Returns:
	//   - [][3]float32: one normal per vertex
	Normals() [][3]float32

	// UVs retrieves the texture coordinates, parallel to Positions.
	//
	// Returns:
	//   - [][2]float32: one UV per vertex
	UVs() [][2]float32

	// Indices retrieves the triangle list indices into the vertex arrays.
	//
	// Returns:
	//   - []uint32: three indices per triangle
	Indices() []uint32

	// VertexCount returns the number of vertices.
	VertexCount() int

	// IndexCount returns the number of indices.
	IndexCount() int

	// TriangleCount returns the number of triangles.
	TriangleCount() int

	// BoundingRadius returns the radius of the model-space bounding sphere centered on the origin.
	// The scene uses it for frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// VertexData packs every vertex as a GPUVertex for upload.
	//
	// Returns:
	//   - []byte: VertexCount * GPUVertexSize bytes
	VertexData() []byte

	// IndexData packs the indices as little-endian uint32 for upload.
	//
	// Returns:
	//   - []byte: IndexCount * 4 bytes
	IndexData() []byte
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	for _, p := range m.positions {
		if r := common.Length3(p); r > m.boundingRadius {
			m.boundingRadius = r
		}
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Positions() [][3]float32 {
	return m.positions
}

func (m *model) Normals() [][3]float32 {
	return m.normals
}

func (m *model) UVs() [][2]float32 {
	return m.uvs
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexCount() int {
	return len(m.positions)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) TriangleCount() int {
	return len(m.indices) / 3
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) VertexData() []byte {
	buf := make([]byte, 0, len(m.positions)*GPUVertexSize)
	for i := range m.positions {
		v := GPUVertex{Position: m.positions[i]}
		if i < len(m.normals) {
			v.Normal = m.normals[i]
		}
		if i < len(m.uvs) {
			v.TexCoord = m.uvs[i]
		}
		buf = append(buf, v.Marshal()...)
	}
	return buf
}

func (m *model) IndexData() []byte {
	out := make([]byte, len(m.indices)*4)
	for i, idx := range m.indices {
		binary.LittleEndian.PutUint32(out[i*4:], idx)
	}
	return out
}
