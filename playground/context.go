// Package playground owns the demo scene, its engine and the bridge a host uses to pull frames
// and drive the scene.
package playground

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/game_object"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/scene"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
)

var logger = log.New("playground")

var (
	// ErrNotInitialized is returned by every operation before Init or after Close.
	ErrNotInitialized = errors.New("playground: context not initialized")

	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("playground: context already initialized")
)

// DefaultFrameRate is the render loop cap used unless WithRenderFrameLimit overrides it.
const DefaultFrameRate = 60

// Context owns one engine, renderer, scene, shared memory, bridge and op registry.
// Create it with NewContext, call Init before use and Close when done.
type Context struct {
	mu          sync.RWMutex
	initialized bool

	width      int
	height     int
	backend    renderer.RendererBackendType
	origin     renderer.Origin
	msaa       renderer.MSAASampleCount
	workers    int
	forceSoft  bool
	heapSize   int
	tickRate   float64
	frameLimit float64
	renderLoop bool
	profiling  bool
	clock      engine.FrameClock

	memory     bridge.SharedMemory
	ownsMemory bool

	engine   engine.Engine
	renderer renderer.Renderer
	scene    scene.Scene
	ball     game_object.GameObject
	floor    game_object.GameObject
	bridge   bridge.Bridge
	registry *bridge.Registry
}

// NewContext creates an uninitialized Context with the provided options.
//
// Parameters:
//   - options: functional options for surface size, backend, memory and loop settings
//
// Returns:
//   - *Context: the context; call Init before use
func NewContext(options ...ContextBuilderOption) *Context {
	c := &Context{
		width:      renderer.DefaultWidth,
		height:     renderer.DefaultHeight,
		backend:    renderer.BackendTypeSoftware,
		origin:     renderer.OriginBottomLeft,
		msaa:       renderer.MSAAOff,
		heapSize:   bridge.DefaultHeapSize,
		tickRate:   60,
		frameLimit: DefaultFrameRate,
		renderLoop: true,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Init creates the renderer, builds the demo scene, wires the bridge and registry,
// and starts the engine when the render loop is enabled.
//
// Returns:
//   - error: ErrAlreadyInitialized, or a renderer construction failure
func (c *Context) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return ErrAlreadyInitialized
	}

	opts := []renderer.RendererBuilderOption{
		renderer.WithSize(c.width, c.height),
		renderer.WithReadbackOrigin(c.origin),
		renderer.WithMSAA(c.msaa),
		renderer.WithForceSoftwareRenderer(c.forceSoft),
	}
	if c.workers > 0 {
		opts = append(opts, renderer.WithWorkers(c.workers))
	}
	r, err := renderer.NewRenderer(c.backend, opts...)
	if err != nil {
		return fmt.Errorf("playground: create renderer: %w", err)
	}

	if c.memory == nil {
		c.memory = bridge.NewHeap(c.heapSize)
		c.ownsMemory = true
	}

	c.renderer = r
	c.scene, c.ball, c.floor = buildDemoScene(float32(c.width) / float32(c.height))
	c.bridge = bridge.NewBridge(r, c.memory)
	c.registry = bridge.NewRegistry()
	if err := c.registerOps(); err != nil {
		r.Close()
		return err
	}

	c.engine = engine.NewEngine(
		engine.WithRenderer(r),
		engine.WithScene(0, c.scene),
		engine.WithTickRate(c.tickRate),
		engine.WithRenderFrameLimit(c.frameLimit),
		engine.WithRenderLoop(c.renderLoop),
		engine.WithProfiling(c.profiling),
		engine.WithFrameClock(c.clock),
	)
	if c.renderLoop {
		c.engine.Start()
	}

	c.initialized = true
	logger.Infof("initialized %dx%d %s surface (%s origin)", c.width, c.height, r.Backend(), c.origin)
	return nil
}

// Close stops the engine and releases the renderer, the bridge and any memory the context created.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return nil
	}
	c.initialized = false

	c.engine.Quit()
	errs := []error{c.bridge.Close(), c.renderer.Close()}
	if c.ownsMemory {
		errs = append(errs, c.memory.Close())
		c.memory = nil
		c.ownsMemory = false
	}
	c.engine, c.renderer, c.scene = nil, nil, nil
	c.ball, c.floor = nil, nil
	c.bridge, c.registry = nil, nil
	logger.Debugf("closed")
	return errors.Join(errs...)
}

// Engine returns the engine, or nil before Init.
func (c *Context) Engine() engine.Engine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine
}

// Scene returns the demo scene, or nil before Init.
func (c *Context) Scene() scene.Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scene
}

// Renderer returns the renderer, or nil before Init.
func (c *Context) Renderer() renderer.Renderer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renderer
}

// Memory returns the shared memory frames are transferred into.
func (c *Context) Memory() bridge.SharedMemory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memory
}

// Bridge returns the frame transfer bridge, or nil before Init.
func (c *Context) Bridge() bridge.Bridge {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bridge
}

// Registry returns the op registry, or nil before Init.
func (c *Context) Registry() *bridge.Registry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry
}

// Ball returns the sphere, or nil before Init.
func (c *Context) Ball() game_object.GameObject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ball
}

// Floor returns the ground, or nil before Init.
func (c *Context) Floor() game_object.GameObject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.floor
}

// Transfer copies the most recently completed frame into shared memory at location.
//
// Parameters:
//   - location: offset in shared memory
//   - capacity: bytes writable at location
//
// Returns:
//   - error: ErrNotInitialized or a bridge error
func (c *Context) Transfer(location, capacity int) error {
	b := c.Bridge()
	if b == nil {
		return ErrNotInitialized
	}
	return b.Transfer(location, capacity)
}

// Call invokes a registered op by name.
func (c *Context) Call(name string, args ...any) (any, error) {
	r := c.Registry()
	if r == nil {
		return nil, ErrNotInitialized
	}
	return r.Call(name, args...)
}

// RenderFrame renders one frame synchronously.
func (c *Context) RenderFrame() error {
	e := c.Engine()
	if e == nil {
		return ErrNotInitialized
	}
	return e.RenderFrame()
}

// WaitForFrame blocks until the engine has completed at least n frames.
func (c *Context) WaitForFrame(ctx context.Context, n uint64) error {
	e := c.Engine()
	if e == nil {
		return ErrNotInitialized
	}
	return e.WaitForFrame(ctx, n)
}

// FrameSize returns the byte size of one transferred frame.
func (c *Context) FrameSize() int {
	return renderer.FrameSize(c.width, c.height)
}
