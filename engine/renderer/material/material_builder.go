package material

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuse is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - c: the diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(c common.Color3) MaterialBuilderOption {
	return func(m *material) {
		m.props.Diffuse = c.Clamp()
	}
}

// WithSpecular is an option builder that sets the specular color of the material.
//
// Parameters:
//   - c: the specular color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(c common.Color3) MaterialBuilderOption {
	return func(m *material) {
		m.props.Specular = c.Clamp()
	}
}

// WithSpecularPower is an option builder that sets the Blinn-Phong exponent.
//
// Parameters:
//   - p: the exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular power option to a material
func WithSpecularPower(p float32) MaterialBuilderOption {
	return func(m *material) {
		m.props.SpecularPower = max(p, 1)
	}
}

// WithEmissive is an option builder that sets the emissive color of the material.
//
// Parameters:
//   - c: the emissive color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(c common.Color3) MaterialBuilderOption {
	return func(m *material) {
		m.props.Emissive = c.Clamp()
	}
}

// WithAmbient is an option builder that sets the ambient color of the material.
// It is multiplied by the scene's ambient color.
//
// Parameters:
//   - c: the ambient color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the ambient option to a material
func WithAmbient(c common.Color3) MaterialBuilderOption {
	return func(m *material) {
		m.props.Ambient = c.Clamp()
	}
}

// WithBackFaceCulling is an option builder that toggles back-face culling.
//
// Parameters:
//   - enabled: false to draw both faces
//
// Returns:
//   - MaterialBuilderOption: a function that applies the culling option to a material
func WithBackFaceCulling(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.props.BackFaceCulling = enabled
	}
}
