//go:build !js

package main

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		spec     string
		wantName string
		wantArgs int
		wantErr  bool
	}{
		{spec: "MoveUp", wantName: "MoveUp"},
		{spec: "ChangeBallSize:2", wantName: "ChangeBallSize", wantArgs: 1},
		{spec: " ChangeBallColor: 1,0,0,1 ", wantName: "ChangeBallColor", wantArgs: 4},
		{spec: ":1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			name, args, err := parseOp(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOp() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.wantName || len(args) != tt.wantArgs {
				t.Errorf("parseOp() = %q, %d args, want %q, %d", name, len(args), tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestFrameImageFlipsBottomLeft(t *testing.T) {
	// Two rows: bottom row red, top row blue, stored bottom row first.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img := frameImage(pixels, 2, 2, renderer.OriginBottomLeft)
	if c := img.NRGBAAt(0, 0); c.B != 255 || c.R != 0 {
		t.Errorf("top-left pixel = %v, want blue", c)
	}
	if c := img.NRGBAAt(1, 1); c.R != 255 || c.B != 0 {
		t.Errorf("bottom-right pixel = %v, want red", c)
	}

	scaled := scaleImage(img, 2)
	if b := scaled.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("scaled bounds = %v, want 4x4", b)
	}
}

func TestEncodeImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	tests := []struct {
		ext    string
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{ext: ".png", decode: func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{ext: ".BMP", decode: func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) }},
		{ext: ".tiff", decode: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) }},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encodeImage(&buf, tt.ext, img); err != nil {
				t.Fatalf("encodeImage: %v", err)
			}
			got, err := tt.decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
			}
		})
	}

	if err := encodeImage(&bytes.Buffer{}, ".gif", img); err == nil {
		t.Error("expected an error for .gif")
	}
}
