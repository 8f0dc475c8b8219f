//go:build !js

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/bridge"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/playground"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Capture renders headless, transfers the last frame and writes it to an image file.
func Capture(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := contextOptions(ctx)
	if err != nil {
		return err
	}
	opts = append(opts, playground.WithRenderLoop(false))

	width, height := ctx.Int("width"), ctx.Int("height")
	size := renderer.FrameSize(width, height)

	var mapped *bridge.MappedMemory
	if path := ctx.String("shm"); path != "" {
		mapped, err = bridge.OpenMappedMemory(path, size)
		if err != nil {
			return err
		}
		defer mapped.Close()
		opts = append(opts, playground.WithMemory(mapped))
	}

	pg := playground.NewContext(opts...)
	if err := pg.Init(); err != nil {
		return err
	}
	defer pg.Close()

	for _, spec := range ctx.StringSlice("op") {
		name, args, err := parseOp(spec)
		if err != nil {
			return err
		}
		if _, err := pg.Call(name, args...); err != nil {
			return fmt.Errorf("op %s: %w", spec, err)
		}
	}

	frames := max(ctx.Int("frames"), 1)
	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := pg.RenderFrame(); err != nil {
			return fmt.Errorf("render frame %d: %w", i, err)
		}
	}
	renderTime := time.Since(start)

	location := 0
	if mapped == nil {
		if location, err = pg.Memory().(*bridge.Heap).Alloc(size); err != nil {
			return err
		}
	}
	if err := pg.Transfer(location, size); err != nil {
		return err
	}
	if mapped != nil {
		if err := mapped.Sync(); err != nil {
			return err
		}
	}

	pixels := make([]byte, size)
	if _, err := pg.Memory().ReadAt(pixels, int64(location)); err != nil {
		return err
	}

	out := ctx.String("out")
	img := frameImage(pixels, width, height, pg.Renderer().Origin())
	if scale := ctx.Float64("scale"); scale > 0 && scale != 1 {
		img = scaleImage(img, scale)
	}
	if err := writeImage(out, img); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Backend", "Surface", "Frames", "Render time", "Transfer", "Bytes", "Output"})
	st := pg.Bridge().Stats()
	table.Append([]string{
		pg.Renderer().Backend().String(),
		fmt.Sprintf("%dx%d %s", width, height, pg.Renderer().Origin()),
		fmt.Sprintf("%d", frames),
		renderTime.String(),
		st.LastDuration.String(),
		fmt.Sprintf("%d", st.Bytes),
		fmt.Sprintf("%s (%dx%d)", out, img.Bounds().Dx(), img.Bounds().Dy()),
	})
	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
	return nil
}

// frameImage wraps an RGBA8 straight-alpha frame as an upright image.
func frameImage(pixels []byte, width, height int, origin renderer.Origin) *image.NRGBA {
	if origin == renderer.OriginBottomLeft {
		renderer.FlipRows(pixels, width, height)
	}
	return &image.NRGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func scaleImage(src *image.NRGBA, scale float64) *image.NRGBA {
	w := max(int(float64(src.Rect.Dx())*scale), 1)
	h := max(int(float64(src.Rect.Dy())*scale), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeImage(f, filepath.Ext(path), img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unsupported image format %q", ext)
}
