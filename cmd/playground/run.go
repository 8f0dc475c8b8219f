//go:build !js

package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/window"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/playground"
	"github.com/urfave/cli"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

// Run opens the host window and presents frames pulled through the bridge until it closes.
func Run(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := contextOptions(ctx)
	if err != nil {
		return err
	}
	opts = append(opts,
		playground.WithTickRate(ctx.Float64("tick-rate")),
		playground.WithRenderFrameLimit(ctx.Float64("frame-limit")),
		playground.WithProfiling(ctx.Bool("profile")),
	)

	pg := playground.NewContext(opts...)
	if err := pg.Init(); err != nil {
		return err
	}
	defer pg.Close()

	width, height := ctx.Int("width"), ctx.Int("height")
	heap, ok := pg.Memory().(*bridge.Heap)
	if !ok {
		return fmt.Errorf("run needs an in-process heap")
	}
	size := pg.FrameSize()
	location, err := heap.Alloc(size)
	if err != nil {
		return err
	}
	frame, err := heap.Bytes(location, size)
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle("BabylonNative test app"),
		window.WithWidth(width),
		window.WithHeight(height),
		window.WithVSync(!ctx.Bool("no-vsync")),
	)
	defer win.Close()

	win.SetUpdateCallback(func() {
		if _, err := pg.Call(playground.OpTransferFrame, location, size); err != nil {
			if !errors.Is(err, bridge.ErrSurfaceNotReady) {
				logger.Warningf("transfer: %v", err)
			}
			return
		}
		if err := win.Present(frame, width, height); err != nil {
			logger.Errorf("present: %v", err)
			win.Close()
		}
	})

	logger.Noticef("presenting %dx%d frames from the %s backend", width, height, pg.Renderer().Backend())
	win.ProcessMessages()

	st := pg.Bridge().Stats()
	logger.Noticef("window closed after %d transfers (%d failed)", st.Transfers, st.Failures)
	return nil
}
