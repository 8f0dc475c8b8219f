package material

import (
	"sync"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

// Properties is a point-in-time copy of a material's surface parameters.
// Renderers shade from a Properties value so a concurrent setter never tears a frame.
type Properties struct {
	Diffuse         common.Color3
	Specular        common.Color3
	Emissive        common.Color3
	Ambient         common.Color3
	SpecularPower   float32
	Alpha           float32
	BackFaceCulling bool
}

// material is the implementation of the Material interface.
type material struct {
	mu    *sync.RWMutex
	name  string
	props Properties
}

// Material defines the interface for a standard (Blinn-Phong) surface material.
//
// All setters are safe to call from any goroutine while the render loop reads the material.
// The last write wins.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Diffuse retrieves the diffuse color.
	//
	// Returns:
	//   - common.Color3: the diffuse color
	Diffuse() common.Color3

	// SetDiffuse sets the diffuse color. Channels are clamped to [0, 1].
	//
	// Parameters:
	//   - c: the new diffuse color
	SetDiffuse(c common.Color3)

	// Specular retrieves the specular color.
	//
	// Returns:
	//   - common.Color3: the specular color
	Specular() common.Color3

	// SetSpecular sets the specular color. Channels are clamped to [0, 1].
	//
	// Parameters:
	//   - c: the new specular color
	SetSpecular(c common.Color3)

	// SetEmissive sets the emissive color added after lighting.
	//
	// Parameters:
	//   - c: the new emissive color
	SetEmissive(c common.Color3)

	// SetSpecularPower sets the Blinn-Phong exponent.
	//
	// Parameters:
	//   - p: the exponent, values below 1 are raised to 1
	SetSpecularPower(p float32)

	// SetAlpha sets the material opacity.
	//
	// Parameters:
	//   - a: the opacity in [0, 1]
	SetAlpha(a float32)

	// Properties returns a snapshot of every surface parameter.
	//
	// Returns:
	//   - Properties: the snapshot
	Properties() Properties
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults are a white diffuse and specular color, a specular power of 64, no emission,
// full opacity and back-face culling enabled.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu: &sync.RWMutex{},
		props: Properties{
			Diffuse:         common.Color3{R: 1, G: 1, B: 1},
			Specular:        common.Color3{R: 1, G: 1, B: 1},
			SpecularPower:   64,
			Alpha:           1,
			BackFaceCulling: true,
		},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Diffuse() common.Color3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.props.Diffuse
}

func (m *material) SetDiffuse(c common.Color3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props.Diffuse = c.Clamp()
}

func (m *material) Specular() common.Color3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.props.Specular
}

func (m *material) SetSpecular(c common.Color3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props.Specular = c.Clamp()
}

func (m *material) SetEmissive(c common.Color3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props.Emissive = c.Clamp()
}

func (m *material) SetSpecularPower(p float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props.SpecularPower = max(p, 1)
}

func (m *material) SetAlpha(a float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props.Alpha = common.Clamp(a, 0, 1)
}

func (m *material) Properties() Properties {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.props
}
