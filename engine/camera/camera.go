package camera

import (
	"sync"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines a perspective camera whose eye and target come from a CameraController.
//
// The camera caches its view, projection and view-projection matrices; they are recomputed
// whenever a lens parameter changes and whenever Update is called after the controller moved.
// Matrices are left-handed with clip-space depth in [0, 1].
type Camera interface {
	// Position returns the eye position reported by the controller.
	//
	// Returns:
	//   - [3]float32: the world-space eye position
	Position() [3]float32

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - [3]float32: the world-space target
	Target() [3]float32

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the viewport aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping distance.
	Near() float32

	// Far returns the far clipping distance.
	Far() float32

	// ViewMatrix returns the cached world-to-view matrix.
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the cached view-to-clip matrix.
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the cached world-to-clip matrix.
	ViewProjectionMatrix() [16]float32

	// Frustum extracts the view frustum from the cached view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: the six world-space clipping planes
	Frustum() common.Frustum

	// Controller returns the controller that positions the camera.
	Controller() CameraController

	// Update recomputes the matrices from the controller's current position and target.
	Update()

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// SetAspect sets the viewport aspect ratio.
	SetAspect(aspect float32)

	// SetNear sets the near clipping distance.
	SetNear(near float32)

	// SetFar sets the far clipping distance.
	SetFar(far float32)

	// SetController replaces the controller and recomputes the matrices.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the provided options.
// Defaults are an up vector of (0, 1, 0), a field of view of 0.8 radians, an aspect of 1,
// near and far planes at 0.1 and 100, and an ArcRotateController at its defaults.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    0.8,
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewArcRotateController()
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	return c.Controller().Position()
}

func (c *cameraImpl) Target() [3]float32 {
	return c.Controller().Target()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	vp := c.ViewProjectionMatrix()
	return common.ExtractFrustumFromMatrix(vp[:])
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	common.LookAt(c.viewMatrix[:], c.controller.Position(), c.controller.Target(), c.up)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
