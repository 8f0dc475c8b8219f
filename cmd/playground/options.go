//go:build !js

package main

import (
	"fmt"
	"strings"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/playground"
	"github.com/urfave/cli"
)

// contextOptions maps the shared surface flags onto context options.
func contextOptions(ctx *cli.Context) ([]playground.ContextBuilderOption, error) {
	backend, err := renderer.ParseBackendType(ctx.String("backend"))
	if err != nil {
		return nil, err
	}
	opts := []playground.ContextBuilderOption{
		playground.WithSize(ctx.Int("width"), ctx.Int("height")),
		playground.WithBackend(backend),
		playground.WithForceSoftwareRenderer(ctx.Bool("fallback-adapter")),
	}
	if ctx.Bool("msaa") {
		opts = append(opts, playground.WithMSAA(renderer.MSAA4x))
	}
	return opts, nil
}

// parseOp splits Name:arg,arg into the op name and its string arguments.
func parseOp(spec string) (string, []any, error) {
	name, rest, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("empty op in %q", spec)
	}
	var args []any
	if rest = strings.TrimSpace(rest); rest != "" {
		for _, a := range strings.Split(rest, ",") {
			args = append(args, a)
		}
	}
	return name, args, nil
}
