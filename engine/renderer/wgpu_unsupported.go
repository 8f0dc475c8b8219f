//go:build js

package renderer

import "fmt"

func newWGPURendererBackend(width, height int, forceFallbackAdapter bool, msaa MSAASampleCount) (RendererBackend, error) {
	return nil, fmt.Errorf("%w: %s is not available in the browser build", ErrUnsupportedBackend, BackendTypeWGPU)
}
