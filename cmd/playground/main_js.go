//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/playground"
)

var logger = log.New("playground")

// main attaches the ops to the global Module object and renders until the page goes away.
// When Module.HEAPU8 exists, frames are transferred straight into it. Frames are paced by
// requestAnimationFrame where the host has it.
func main() {
	module := js.Global().Get("Module")
	if module.IsUndefined() {
		module = js.Global().Get("Object").New()
		js.Global().Set("Module", module)
	}

	clock, releaseClock := playground.NewAnimationFrameClock()
	opts := []playground.ContextBuilderOption{playground.WithFrameClock(clock)}
	if heap := module.Get("HEAPU8"); !heap.IsUndefined() {
		opts = append(opts, playground.WithMemory(playground.NewJSMemory(heap)))
	}

	pg := playground.NewContext(opts...)
	if err := pg.Init(); err != nil {
		logger.Errorf("init: %v", err)
		releaseClock()
		return
	}
	funcs := playground.Export(pg, module)
	if heap, ok := pg.Memory().(*bridge.Heap); ok {
		logger.Infof("no host heap, using a %d byte in-process heap", heap.Size())
	}

	<-pg.Engine().Done()
	for _, fn := range funcs {
		fn.Release()
	}
	pg.Close()
	releaseClock()
}
