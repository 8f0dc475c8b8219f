//go:build !js

package main

import (
	"bytes"
	"fmt"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/playground"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListOps prints every op a host can call.
func ListOps(ctx *cli.Context) error {
	setupLogging(ctx)

	pg := playground.NewContext(playground.WithSize(1, 1), playground.WithRenderLoop(false), playground.WithHeapSize(1024))
	if err := pg.Init(); err != nil {
		return err
	}
	defer pg.Close()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Op", "Signature", "Description"})
	for _, op := range pg.Registry().Ops() {
		table.Append([]string{op.Name, op.Signature(), op.Doc})
	}
	table.Render()
	fmt.Print(buf.String())
	return nil
}
