package engine

import (
	"time"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/profiler"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfilerInterval sets how often the profiler samples and logs.
//
// Parameters:
//   - interval: time between samples (default 1s)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate.Store(int64(float64(time.Second) / fps))
	}
}

// WithWindow sets the host window whose message loop Run blocks on.
// Without a window, Run blocks until Quit.
//
// Parameters:
//   - w: a created host window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index; the active scene with the lowest key is rendered
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderLoop enables or disables the background render goroutine. When disabled,
// frames are produced only by explicit RenderFrame calls. Enabled by default.
//
// Parameters:
//   - enabled: true to render continuously after Start
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderLoop(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.renderLoop = enabled
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit.Store(0)
			return
		}
		e.renderFrameLimit.Store(int64(float64(time.Second) / fps))
	}
}

// WithFrameClock replaces the clock that paces the render loop. Defaults to a timer clock.
//
// Parameters:
//   - c: the frame clock; nil keeps the default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameClock(c FrameClock) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithTickCallback registers the function called each engine tick.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}
