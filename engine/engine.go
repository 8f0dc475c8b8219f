package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/profiler"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/scene"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
)

var logger = log.New("engine")

var (
	// ErrStopped is returned by WaitForFrame once the engine has quit.
	ErrStopped = errors.New("engine: stopped")

	// ErrNoRenderer is returned by RenderFrame when no renderer is attached.
	ErrNoRenderer = errors.New("engine: no renderer")

	// ErrNoActiveScene is returned by RenderFrame when no registered scene is active.
	ErrNoActiveScene = errors.New("engine: no active scene")
)

// Window is the part of a host window the engine drives from Run.
type Window interface {
	// ProcessMessages pumps window events until the window closes.
	ProcessMessages()

	// Close releases the window.
	Close() error
}

// engine implements the Engine interface.
// Coordinates the tick and render goroutines with an optional host window on the main thread.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running   atomic.Bool
	wg        sync.WaitGroup
	startOnce sync.Once

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate atomic.Int64 // nanoseconds; read by both loops
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenesMu sync.RWMutex
	scenes   map[int]scene.Scene

	renderLoop       bool         // when false, frames are only produced by RenderFrame
	renderFrameLimit atomic.Int64 // minimum frame duration in nanoseconds; 0 = uncapped
	clock            FrameClock

	frameMu    sync.Mutex
	frames     uint64
	frameReady chan struct{} // closed and replaced each time a frame completes
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the render loop and an optional host window.
type Engine interface {
	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, or nil if none was attached
	Renderer() renderer.Renderer

	// Profiler returns the engine profiler.
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Must be called before Start.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each frame the render loop completes.
	// Must be called before Start.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default). An uncapped loop still yields to the frame
	// clock between frames.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index; the active scene with the lowest key is rendered
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// RenderFrame synchronously builds and renders one frame of the active scene.
	//
	// Returns:
	//   - error: ErrNoRenderer, ErrNoActiveScene, or a renderer error
	RenderFrame() error

	// FrameCount returns the number of frames completed by the engine.
	FrameCount() uint64

	// WaitForFrame blocks until at least n frames have completed.
	//
	// Parameters:
	//   - ctx: bounds the wait
	//   - n: the frame count to wait for
	//
	// Returns:
	//   - error: nil once FrameCount() >= n, ctx.Err() on cancellation, ErrStopped after Quit
	WaitForFrame(ctx context.Context, n uint64) error

	// Start launches the tick and render goroutines and returns immediately. Safe to call more than once.
	Start()

	// Run starts the engine and blocks until the window closes, or until Quit when headless.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed when the engine quits.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (renderer, window, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(time.Second),
		renderLoop:      true,
		frameReady:      make(chan struct{}),
		clock:           NewTimerClock(),
	}
	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) tickRate() time.Duration {
	return time.Duration(e.engineTickRate.Load())
}

func (e *engine) frameLimit() time.Duration {
	return time.Duration(e.renderFrameLimit.Load())
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Start() {
	e.startOnce.Do(func() {
		e.running.Store(true)
		e.wg.Add(1)
		go e.handleEngine()
		if e.renderLoop {
			e.wg.Add(1)
			go e.handleRender()
		}
		logger.Debugf("engine started (tick %v, render loop %v)", e.tickRate(), e.renderLoop)
	})
}

func (e *engine) Run() {
	e.Start()
	if e.window != nil {
		e.window.ProcessMessages()
		e.Quit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
		logger.Debugf("engine quitting after %d frames", e.FrameCount())
	})
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate.Store(int64(newRate))
		}
	}
}

// handleRender runs the render loop in its own goroutine. The frame clock is consulted after
// every frame, so the loop always blocks between frames even when uncapped. Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()
	var lastErr string

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		err := e.RenderFrame()
		switch {
		case err == nil:
			lastErr = ""
			if e.renderCallback != nil {
				e.renderCallback(dt)
			}
			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick()
			}
		case errors.Is(err, renderer.ErrClosed):
			logger.Noticef("renderer closed, stopping render loop")
			e.signalQuit()
			return
		default:
			// Log each distinct failure once instead of once per frame.
			if msg := err.Error(); msg != lastErr {
				logger.Warningf("render frame: %v", err)
				lastErr = msg
			}
		}

		limit := e.frameLimit()
		if err != nil && limit == 0 {
			// Nothing to draw yet; back off to the tick rate.
			limit = e.tickRate()
		}
		if !e.clock.Wait(e.quitChannel, limit-time.Since(lastRender)) {
			return
		}
	}
}

func (e *engine) RenderFrame() error {
	if e.renderer == nil {
		return ErrNoRenderer
	}
	s := e.activeScene()
	if s == nil {
		return ErrNoActiveScene
	}
	if err := e.renderer.Render(s.BuildFrame()); err != nil {
		return err
	}
	e.completeFrame()
	return nil
}

// activeScene returns the active scene with the lowest key, or nil.
func (e *engine) activeScene() scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			return s
		}
	}
	return nil
}

func (e *engine) completeFrame() {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.frames++
	close(e.frameReady)
	e.frameReady = make(chan struct{})
}

func (e *engine) FrameCount() uint64 {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	return e.frames
}

func (e *engine) WaitForFrame(ctx context.Context, n uint64) error {
	for {
		e.frameMu.Lock()
		if e.frames >= n {
			e.frameMu.Unlock()
			return nil
		}
		ready := e.frameReady
		e.frameMu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return ErrStopped
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate.Store(int64(newRate))
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit.Store(0)
		return
	}
	e.renderFrameLimit.Store(int64(float64(time.Second) / fps))
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
