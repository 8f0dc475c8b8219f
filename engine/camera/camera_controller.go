package camera

import (
	"math"
	"sync"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

// CameraController positions a camera on a sphere around a target.
//
// The eye is described by spherical coordinates relative to the target:
// alpha is the longitudinal angle measured from +X toward +Z, beta the latitudinal angle
// measured from +Y, and radius the distance. Setting an explicit position recomputes all three.
type CameraController interface {
	// Position returns the eye position.
	//
	// Returns:
	//   - [3]float32: the world-space eye position
	Position() [3]float32

	// SetPosition moves the eye, keeping the target, and recomputes alpha, beta and radius.
	// Beta and radius are clamped to the controller limits.
	//
	// Parameters:
	//   - p: the new world-space eye position
	SetPosition(p [3]float32)

	// Target returns the point the eye orbits.
	Target() [3]float32

	// SetTarget changes the orbit center while keeping the eye where it is.
	//
	// Parameters:
	//   - t: the new world-space target
	SetTarget(t [3]float32)

	// Alpha returns the longitudinal angle in radians.
	Alpha() float32

	// Beta returns the latitudinal angle in radians.
	Beta() float32

	// Radius returns the eye distance from the target.
	Radius() float32

	// Rotate orbits the eye by the given angle deltas in radians.
	//
	// Parameters:
	//   - dAlpha: change of the longitudinal angle
	//   - dBeta: change of the latitudinal angle, clamped to the beta limits
	Rotate(dAlpha, dBeta float32)

	// Zoom changes the radius by delta, clamped to the radius limits.
	//
	// Parameters:
	//   - delta: positive values move the eye away from the target
	Zoom(delta float32)
}

// arcRotateController is the implementation of the CameraController interface.
type arcRotateController struct {
	mu *sync.Mutex

	target [3]float32
	alpha  float32
	beta   float32
	radius float32

	lowerBeta   float32
	upperBeta   float32
	lowerRadius float32
	upperRadius float32
}

var _ CameraController = &arcRotateController{}

// NewArcRotateController creates a CameraController orbiting the origin.
// Defaults are alpha = -pi/2, beta = pi/2, radius = 10, beta limited to (0.01, pi - 0.01)
// and radius limited to [0.1, 1000].
//
// Parameters:
//   - options: variadic list of CameraControllerOption functions to configure the controller
//
// Returns:
//   - CameraController: a new controller
func NewArcRotateController(options ...CameraControllerOption) CameraController {
	cc := &arcRotateController{
		mu:          &sync.Mutex{},
		alpha:       -math.Pi / 2,
		beta:        math.Pi / 2,
		radius:      10,
		lowerBeta:   0.01,
		upperBeta:   math.Pi - 0.01,
		lowerRadius: 0.1,
		upperRadius: 1000,
	}
	for _, option := range options {
		option(cc)
	}
	cc.clamp()
	return cc
}

func (cc *arcRotateController) Position() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position()
}

func (cc *arcRotateController) SetPosition(p [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rebuild(p)
}

func (cc *arcRotateController) Target() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *arcRotateController) SetTarget(t [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	eye := cc.position()
	cc.target = t
	cc.rebuild(eye)
}

func (cc *arcRotateController) Alpha() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.alpha
}

func (cc *arcRotateController) Beta() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.beta
}

func (cc *arcRotateController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *arcRotateController) Rotate(dAlpha, dBeta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.alpha += dAlpha
	cc.beta += dBeta
	cc.clamp()
}

func (cc *arcRotateController) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius += delta
	cc.clamp()
}

// position converts the spherical coordinates to a world-space eye. Caller must hold the mutex.
func (cc *arcRotateController) position() [3]float32 {
	sinA, cosA := math.Sincos(float64(cc.alpha))
	sinB, cosB := math.Sincos(float64(cc.beta))
	return [3]float32{
		cc.target[0] + cc.radius*float32(cosA*sinB),
		cc.target[1] + cc.radius*float32(cosB),
		cc.target[2] + cc.radius*float32(sinA*sinB),
	}
}

// rebuild derives alpha, beta and radius from an eye position. Caller must hold the mutex.
func (cc *arcRotateController) rebuild(eye [3]float32) {
	d := common.Sub3(eye, cc.target)
	r := common.Length3(d)
	if r < 1e-6 {
		return
	}
	cc.radius = r
	cc.beta = float32(math.Acos(float64(common.Clamp(d[1]/r, -1, 1))))
	if d[0] == 0 && d[2] == 0 {
		cc.clamp()
		return
	}
	cc.alpha = float32(math.Atan2(float64(d[2]), float64(d[0])))
	cc.clamp()
}

func (cc *arcRotateController) clamp() {
	cc.beta = common.Clamp(cc.beta, cc.lowerBeta, cc.upperBeta)
	cc.radius = common.Clamp(cc.radius, cc.lowerRadius, cc.upperRadius)
}
