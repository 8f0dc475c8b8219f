package renderer

// RendererBuilderOption is a functional option for configuring a Renderer.
type RendererBuilderOption func(*renderer)

// WithSize sets the fixed surface dimensions in pixels.
//
// Parameters:
//   - width: surface width
//   - height: surface height
//
// Returns:
//   - RendererBuilderOption: a function that applies the size
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithReadbackOrigin sets the row order produced by ReadPixels.
// The default is OriginBottomLeft.
//
// Parameters:
//   - origin: the corner the first delivered row starts at
//
// Returns:
//   - RendererBuilderOption: a function that applies the origin
func WithReadbackOrigin(origin Origin) RendererBuilderOption {
	return func(r *renderer) {
		r.origin = origin
	}
}

// WithMSAA sets the multisample count for the WGPU backend. The software backend
// always anti-aliases its edges and ignores this option.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: a function that applies the sample count
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer forces the WGPU backend onto a fallback (CPU) adapter.
// Useful on machines without a GPU and in CI.
//
// Parameters:
//   - force: true to request the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the setting
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithWorkers sets the number of goroutines the software backend uses to
// transform and shade objects in parallel.
//
// Parameters:
//   - n: worker count; values below one mean one
//
// Returns:
//   - RendererBuilderOption: a function that applies the count
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.workers = n
	}
}
