package camera

// CameraControllerOption is a function that configures a controller during construction.
type CameraControllerOption func(*arcRotateController)

// WithTarget sets the orbit center.
//
// Parameters:
//   - x, y, z: the target components
//
// Returns:
//   - CameraControllerOption: a function that sets the controller's target
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *arcRotateController) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithEye places the eye at an explicit position; alpha, beta and radius are derived from it.
// Apply it after WithTarget.
//
// Parameters:
//   - x, y, z: the eye components
//
// Returns:
//   - CameraControllerOption: a function that sets the controller's eye
func WithEye(x, y, z float32) CameraControllerOption {
	return func(cc *arcRotateController) {
		cc.rebuild([3]float32{x, y, z})
	}
}

// WithSpherical sets alpha, beta and radius directly.
//
// Parameters:
//   - alpha: the longitudinal angle in radians
//   - beta: the latitudinal angle in radians
//   - radius: the distance from the target
//
// Returns:
//   - CameraControllerOption: a function that sets the controller's spherical coordinates
func WithSpherical(alpha, beta, radius float32) CameraControllerOption {
	return func(cc *arcRotateController) {
		cc.alpha = alpha
		cc.beta = beta
		cc.radius = radius
	}
}

// WithBetaLimits bounds the latitudinal angle.
func WithBetaLimits(lower, upper float32) CameraControllerOption {
	return func(cc *arcRotateController) {
		cc.lowerBeta = lower
		cc.upperBeta = upper
	}
}

// WithRadiusLimits bounds the eye distance.
func WithRadiusLimits(lower, upper float32) CameraControllerOption {
	return func(cc *arcRotateController) {
		cc.lowerRadius = lower
		cc.upperRadius = upper
	}
}
