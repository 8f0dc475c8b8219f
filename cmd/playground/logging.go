//go:build !js

package main

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/log"
	"github.com/urfave/cli"
)

var logger = log.New("playground")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
