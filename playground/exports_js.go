//go:build js && wasm

package playground

import (
	"fmt"
	"sync"
	"syscall/js"
	"time"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine"
)

// jsMemory is shared memory backed by a JS Uint8Array such as an Emscripten HEAPU8.
type jsMemory struct {
	mu   sync.Mutex
	heap js.Value
}

var _ bridge.SharedMemory = (*jsMemory)(nil)

// NewJSMemory wraps a Uint8Array as shared memory. Offsets index into the array.
//
// Parameters:
//   - heap: the Uint8Array the host reads frames from
//
// Returns:
//   - bridge.SharedMemory: the wrapper; Close does not release the array
func NewJSMemory(heap js.Value) bridge.SharedMemory {
	return &jsMemory{heap: heap}
}

func (m *jsMemory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.heap.IsUndefined() {
		return 0
	}
	return m.heap.Get("length").Int()
}

func (m *jsMemory) ReadAt(p []byte, off int64) (int, error) {
	view, err := m.view(off, len(p))
	if err != nil {
		return 0, err
	}
	return js.CopyBytesToGo(p, view), nil
}

func (m *jsMemory) WriteAt(p []byte, off int64) (int, error) {
	view, err := m.view(off, len(p))
	if err != nil {
		return 0, err
	}
	return js.CopyBytesToJS(view, p), nil
}

func (m *jsMemory) view(off int64, n int) (js.Value, error) {
	size := m.Size()
	if off < 0 || off > int64(size) || n > size-int(off) {
		return js.Undefined(), fmt.Errorf("%w: [%d, %d+%d) outside %d bytes", bridge.ErrOutOfBounds, off, off, n, size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.Call("subarray", off, off+int64(n)), nil
}

func (m *jsMemory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heap = js.Undefined()
	return nil
}

// Export attaches every registered op to target as a JS function taking numbers and booleans.
// A failed call returns a JS Error instead of throwing. Release the returned functions when
// the context is closed.
//
// Parameters:
//   - c: an initialized context
//   - target: the JS object to attach to, usually the global Module
//
// Returns:
//   - []js.Func: the exported functions
func Export(c *Context, target js.Value) []js.Func {
	var funcs []js.Func
	for _, op := range c.Registry().Ops() {
		name := op.Name
		fn := js.FuncOf(func(this js.Value, args []js.Value) any {
			converted := make([]any, len(args))
			for i, a := range args {
				switch a.Type() {
				case js.TypeBoolean:
					converted[i] = a.Bool()
				case js.TypeNumber:
					converted[i] = a.Float()
				default:
					converted[i] = a.String()
				}
			}
			res, err := c.Call(name, converted...)
			if err != nil {
				logger.Warningf("%s: %v", name, err)
				return js.Global().Get("Error").New(err.Error())
			}
			return res
		})
		target.Set(name, fn)
		funcs = append(funcs, fn)
	}
	logger.Infof("exported %d ops", len(funcs))
	return funcs
}

// animationFrameClock paces the render loop with requestAnimationFrame. Blocking on the
// callback channel returns control to the browser until the next display refresh.
type animationFrameClock struct {
	global js.Value
	tick   chan struct{}
	cb     js.Func
}

// NewAnimationFrameClock returns a frame clock driven by the host's requestAnimationFrame.
// Hosts without it, such as node, get the engine's timer clock. Call the returned release
// function after the engine has stopped.
//
// Returns:
//   - engine.FrameClock: the clock
//   - func(): releases the JS callback
func NewAnimationFrameClock() (engine.FrameClock, func()) {
	global := js.Global()
	if global.Get("requestAnimationFrame").Type() != js.TypeFunction {
		logger.Infof("requestAnimationFrame unavailable, pacing frames with timers")
		return engine.NewTimerClock(), func() {}
	}
	c := &animationFrameClock{global: global, tick: make(chan struct{}, 1)}
	c.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		select {
		case c.tick <- struct{}{}:
		default:
		}
		return nil
	})
	return c, c.cb.Release
}

// Wait requests animation frames until the remaining budget has passed, at least one.
func (c *animationFrameClock) Wait(quit <-chan struct{}, remaining time.Duration) bool {
	deadline := time.Now().Add(remaining)
	for {
		id := c.global.Call("requestAnimationFrame", c.cb)
		select {
		case <-quit:
			c.global.Call("cancelAnimationFrame", id)
			return false
		case <-c.tick:
		}
		if !time.Now().Before(deadline) {
			return true
		}
	}
}
