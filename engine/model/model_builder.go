package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPositions is an option builder that sets the model-space vertex positions.
//
// Parameters:
//   - positions: one position per vertex
//
// Returns:
//   - ModelBuilderOption: a function that applies the positions option to a model
func WithPositions(positions [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.positions = positions
	}
}

// WithNormals is an option builder that sets the vertex normals.
//
// Parameters:
//   - normals: one unit normal per vertex, parallel to the positions
//
// Returns:
//   - ModelBuilderOption: a function that applies the normals option to a model
func WithNormals(normals [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.normals = normals
	}
}

// WithUVs is an option builder that sets the vertex texture coordinates.
//
// Parameters:
//   - uvs: one UV per vertex, parallel to the positions
//
// Returns:
//   - ModelBuilderOption: a function that applies the UV option to a model
func WithUVs(uvs [][2]float32) ModelBuilderOption {
	return func(m *model) {
		m.uvs = uvs
	}
}

// WithIndices is an option builder that sets the triangle list indices.
//
// Parameters:
//   - indices: three indices per triangle
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
	}
}
