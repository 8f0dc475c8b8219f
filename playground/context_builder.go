package playground

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
)

// ContextBuilderOption is a functional option for configuring a Context.
type ContextBuilderOption func(*Context)

// WithSize sets the surface dimensions. Defaults to 640x480.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithSize(width, height int) ContextBuilderOption {
	return func(c *Context) {
		c.width = width
		c.height = height
	}
}

// WithBackend selects the renderer backend. Defaults to the software backend.
//
// Parameters:
//   - backend: the backend type
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithBackend(backend renderer.RendererBackendType) ContextBuilderOption {
	return func(c *Context) {
		c.backend = backend
	}
}

// WithReadbackOrigin sets the row order of transferred frames. Defaults to bottom-left.
func WithReadbackOrigin(origin renderer.Origin) ContextBuilderOption {
	return func(c *Context) {
		c.origin = origin
	}
}

// WithMSAA sets the sample count of the GPU backend.
func WithMSAA(count renderer.MSAASampleCount) ContextBuilderOption {
	return func(c *Context) {
		c.msaa = count
	}
}

// WithWorkers sets the software backend worker count. Values below one keep the default of one per CPU.
func WithWorkers(n int) ContextBuilderOption {
	return func(c *Context) {
		c.workers = n
	}
}

// WithForceSoftwareRenderer requests a fallback adapter from the GPU backend.
func WithForceSoftwareRenderer(force bool) ContextBuilderOption {
	return func(c *Context) {
		c.forceSoft = force
	}
}

// WithMemory sets the shared memory frames are transferred into.
// The context does not close memory it did not create.
//
// Parameters:
//   - memory: the host-owned space
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithMemory(memory bridge.SharedMemory) ContextBuilderOption {
	return func(c *Context) {
		c.memory = memory
	}
}

// WithHeapSize sets the size of the heap created when no memory is supplied. Defaults to 16 MiB.
func WithHeapSize(size int) ContextBuilderOption {
	return func(c *Context) {
		c.heapSize = size
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
func WithTickRate(fps float64) ContextBuilderOption {
	return func(c *Context) {
		c.tickRate = fps
	}
}

// WithRenderFrameLimit caps the render loop in frames per second. Defaults to DefaultFrameRate.
// 0 is uncapped; the loop still pauses briefly between frames.
func WithRenderFrameLimit(fps float64) ContextBuilderOption {
	return func(c *Context) {
		c.frameLimit = fps
	}
}

// WithRenderLoop enables or disables the continuous render loop. When disabled,
// frames are rendered only by RenderFrame.
//
// Parameters:
//   - enabled: true to render continuously after Init
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithRenderLoop(enabled bool) ContextBuilderOption {
	return func(c *Context) {
		c.renderLoop = enabled
	}
}

// WithProfiling enables profiler output from the render loop.
func WithProfiling(enabled bool) ContextBuilderOption {
	return func(c *Context) {
		c.profiling = enabled
	}
}

// WithFrameClock sets the clock that paces the render loop. Defaults to the engine's timer clock.
//
// Parameters:
//   - clock: the frame clock, for example one driven by the browser's animation frames
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithFrameClock(clock engine.FrameClock) ContextBuilderOption {
	return func(c *Context) {
		c.clock = clock
	}
}
