package light

import (
	"math"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeHemispheric represents sky lighting. Surfaces facing Direction receive the
	// diffuse color, surfaces facing away receive the ground color, with a smooth blend between.
	LightTypeHemispheric LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Direction is the way the light travels.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates linearly to zero at Range.
	LightTypePoint
)

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeHemispheric:
		return "hemispheric"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name        string
	lightType   LightType
	position    [3]float32
	direction   [3]float32
	diffuse     common.Color3
	specular    common.Color3
	groundColor common.Color3
	intensity   float32
	lightRange  float32
	enabled     bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; properties that do not apply to a type
// (position for hemispheric and directional lights, ground color for anything but
// hemispheric lights) are stored but ignored by Contribute.
type Light interface {
	// Name returns the light identifier.
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the unit direction of the light.
	// For hemispheric lights this points at the sky.
	//
	// Returns:
	//   - [3]float32: direction as (x, y, z)
	Direction() [3]float32

	// Diffuse returns the diffuse color of the light.
	Diffuse() common.Color3

	// Specular returns the specular color of the light.
	Specular() common.Color3

	// GroundColor returns the color hemispheric lights apply to surfaces facing away from Direction.
	GroundColor() common.Color3

	// Intensity returns the scalar intensity multiplier.
	Intensity() float32

	// Range returns the attenuation distance of point lights.
	Range() float32

	// Enabled reports whether the light contributes to shading.
	Enabled() bool

	// SetPosition sets the world-space position.
	SetPosition(x, y, z float32)

	// SetDirection sets the direction; it is normalized before storing.
	SetDirection(x, y, z float32)

	// SetIntensity sets the intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	SetEnabled(enabled bool)

	// Contribute evaluates the light at a surface point.
	//
	// Parameters:
	//   - position: the world-space surface position
	//   - normal: the unit world-space surface normal
	//   - viewDir: the unit direction from the surface toward the eye
	//   - specularPower: the material's Blinn-Phong exponent
	//
	// Returns:
	//   - Contribution: the diffuse and specular terms, already scaled by intensity
	Contribute(position, normal, viewDir [3]float32, specularPower float32) Contribution
}

// Contribution is the lighting a single light adds at a surface point before material colors are applied.
type Contribution struct {
	Diffuse  common.Color3
	Specular common.Color3
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type.
// Defaults are a white diffuse and specular color, a black ground color, an intensity of 1,
// a direction of (0, 1, 0) and a range of 100.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		direction:  [3]float32{0, 1, 0},
		diffuse:    common.Color3{R: 1, G: 1, B: 1},
		specular:   common.Color3{R: 1, G: 1, B: 1},
		intensity:  1.0,
		lightRange: 100.0,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Diffuse() common.Color3 {
	return l.diffuse
}

func (l *lightImpl) Specular() common.Color3 {
	return l.specular
}

func (l *lightImpl) GroundColor() common.Color3 {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = common.Normalize3([3]float32{x, y, z})
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) Contribute(position, normal, viewDir [3]float32, specularPower float32) Contribution {
	if !l.enabled {
		return Contribution{}
	}

	var (
		toLight     [3]float32
		diffuse     common.Color3
		attenuation float32 = 1
	)

	switch l.lightType {
	case LightTypeHemispheric:
		toLight = l.direction
		ndl := common.Dot3(normal, toLight)*0.5 + 0.5
		diffuse = l.groundColor.Lerp(l.diffuse, ndl)
	case LightTypeDirectional:
		toLight = common.Scale3(l.direction, -1)
		diffuse = l.diffuse.Scale(max(0, common.Dot3(normal, toLight)))
	case LightTypePoint:
		delta := common.Sub3(l.position, position)
		dist := common.Length3(delta)
		if l.lightRange > 0 {
			attenuation = max(0, 1-dist/l.lightRange)
		}
		toLight = common.Normalize3(delta)
		diffuse = l.diffuse.Scale(max(0, common.Dot3(normal, toLight)))
	}

	half := common.Normalize3(common.Add3(viewDir, toLight))
	spec := max(0, common.Dot3(normal, half))
	spec = float32(math.Pow(float64(spec), float64(max(1, specularPower))))

	scale := l.intensity * attenuation
	return Contribution{
		Diffuse:  diffuse.Scale(scale),
		Specular: l.specular.Scale(spec * scale),
	}
}
